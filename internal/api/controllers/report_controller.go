package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"goforms/internal/models/request_models"
	"goforms/internal/models/response_models"
	"goforms/internal/services"
	"goforms/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
}

func NewReportController(reportService services.ReportServiceInterface) *ReportController {
	return &ReportController{reportService: reportService}
}

// DownloadReport godoc
// @Summary Download a quiz results report
// @Description Renders the PDF report for a stored response and returns it as a file attachment
// @Tags Reports
// @Produce application/pdf
// @Param responseId path string true "Response ID"
// @Success 200 {file} binary
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /reports/{responseId}/download [post]
func (r *ReportController) DownloadReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("responseId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid response ID")
		return
	}

	path, filename, err := r.reportService.GenerateFile(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.FileAttachment(path, filename)
}

// EmailReport godoc
// @Summary Email a quiz results report
// @Description Renders the PDF report in memory and mails it as an attachment to the respondent
// @Tags Reports
// @Accept json
// @Produce json
// @Param responseId path string true "Response ID"
// @Param request body request_models.EmailReportRequest false "Optional override recipient"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /reports/{responseId}/email [post]
func (r *ReportController) EmailReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("responseId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid response ID")
		return
	}

	var req request_models.EmailReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
			return
		}
	}

	filename, to, err := r.reportService.EmailReport(c.Request.Context(), id, req.To)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.ReportEmailedResponse{Filename: filename, To: to},
		"Report emailed successfully")
}

// PreviewReport godoc
// @Summary Render a report preview
// @Description Renders a PDF for a response record supplied in the body; sample responses render without any store access
// @Tags Reports
// @Accept json
// @Produce application/pdf
// @Param request body request_models.PreviewReportRequest true "Response record"
// @Success 200 {file} binary
// @Failure 400 {object} utils.APIResponse
// @Router /reports/preview [post]
func (r *ReportController) PreviewReport(c *gin.Context) {
	var req request_models.PreviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	buf, err := r.reportService.GeneratePreview(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", buf)
}
