package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrResponseNotFound):
		RespondError(c, http.StatusNotFound, "Response not found")
	case errors.Is(err, ErrInvalidResponseID):
		RespondError(c, http.StatusBadRequest, "Invalid response id")
	case errors.Is(err, ErrNoRecipient):
		RespondError(c, http.StatusBadRequest, "No recipient address for this response")
	case errors.Is(err, ErrMailDelivery):
		log.Printf("Mail delivery error: %v", err)
		RespondError(c, http.StatusBadGateway, "Could not deliver report email")
	case errors.Is(err, ErrReportGeneration):
		log.Printf("Report generation error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Report generation failed")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
