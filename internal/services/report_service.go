package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"goforms/internal/models/db_models"
	"goforms/internal/models/request_models"
	"goforms/internal/report"
	"goforms/internal/repositories"
	"goforms/pkg/utils"
)

type ReportServiceInterface interface {
	// GenerateFile renders the report for a stored response and writes it under
	// the output directory. Returns the full path and the bare filename.
	GenerateFile(ctx context.Context, responseID uuid.UUID) (string, string, error)
	// EmailReport renders to memory and sends the document as an attachment to
	// the respondent (or overrideTo when given). Returns filename and address.
	EmailReport(ctx context.Context, responseID uuid.UUID, overrideTo string) (string, string, error)
	// GeneratePreview renders a report for a response record that may not be
	// persisted at all. Sample-mode records perform no store lookups.
	GeneratePreview(ctx context.Context, req request_models.PreviewReportRequest) ([]byte, error)
}

type ReportService struct {
	responses repositories.ResponseRepositoryInterface
	forms     repositories.FormRepositoryInterface
	questions repositories.QuestionRepositoryInterface
	resolver  TemplateResolverInterface
	mail      MailServiceInterface
	feedback  AIFeedbackServiceInterface
	outputDir string
}

func NewReportService(
	responses repositories.ResponseRepositoryInterface,
	forms repositories.FormRepositoryInterface,
	questions repositories.QuestionRepositoryInterface,
	resolver TemplateResolverInterface,
	mail MailServiceInterface,
	feedback AIFeedbackServiceInterface,
	outputDir string,
) ReportServiceInterface {
	if outputDir == "" {
		outputDir = "reports"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Printf("could not create report output dir %s: %v", outputDir, err)
	}
	return &ReportService{
		responses: responses,
		forms:     forms,
		questions: questions,
		resolver:  resolver,
		mail:      mail,
		feedback:  feedback,
		outputDir: outputDir,
	}
}

func (s *ReportService) GenerateFile(ctx context.Context, responseID uuid.UUID) (string, string, error) {
	data, err := s.buildReportData(ctx, responseID)
	if err != nil {
		return "", "", err
	}
	filename := reportFilename(data.Response.ID)
	path := filepath.Join(s.outputDir, filename)
	if _, err := report.Generate(data, report.Options{OutputPath: path}); err != nil {
		return "", "", fmt.Errorf("%w: %v", utils.ErrReportGeneration, err)
	}
	return path, filename, nil
}

func (s *ReportService) EmailReport(ctx context.Context, responseID uuid.UUID, overrideTo string) (string, string, error) {
	data, err := s.buildReportData(ctx, responseID)
	if err != nil {
		return "", "", err
	}
	to := overrideTo
	if to == "" {
		to = data.Response.Email
	}
	if to == "" {
		return "", "", utils.ErrNoRecipient
	}

	buf, err := report.Generate(data, report.Options{})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", utils.ErrReportGeneration, err)
	}

	filename := reportFilename(data.Response.ID)
	subject := "Your Quiz Results"
	intro := fmt.Sprintf("Hi %s, your results for %q are attached. You scored %.0f/100 (%s).",
		data.Response.Name, data.QuizTitle, data.Response.Score,
		report.PerformanceCategory(data.Response.Score))
	if err := s.mail.SendReport(to, subject, intro, filename, buf); err != nil {
		return "", "", fmt.Errorf("%w: %v", utils.ErrMailDelivery, err)
	}
	return filename, to, nil
}

func (s *ReportService) GeneratePreview(ctx context.Context, req request_models.PreviewReportRequest) ([]byte, error) {
	rec := report.Response{
		Name:                  req.Name,
		Email:                 req.Email,
		Phone:                 req.Phone,
		FormID:                req.FormID,
		Score:                 req.Score,
		CompletionTimeSeconds: req.CompletionTimeSeconds,
		CustomFeedbackHTML:    req.CustomFeedbackHTML,
		Answers:               map[string]report.Answer{},
	}
	for id, a := range req.Answers {
		rec.Answers[id] = report.Answer{
			Value:              a.Value,
			SelectedOptionID:   a.SelectedOptionID,
			ImpactAnalysisHTML: a.ImpactAnalysisHTML,
		}
	}

	data := report.ReportData{Response: rec, QuizTitle: req.QuizTitle}
	if !rec.IsSample() {
		if fid, err := uuid.Parse(req.FormID); err == nil {
			data.Questions, data.QuizTitle = s.loadFormDetails(ctx, fid, req.QuizTitle)
		}
	}

	if req.GenerateFeedback && rec.CustomFeedbackHTML == "" && s.feedback != nil {
		html, err := s.feedback.GenerateImpactAnalysis(ctx, data.QuizTitle, rec, data.Questions)
		if err != nil {
			log.Printf("AI feedback generation failed, rendering without it: %v", err)
		} else {
			rec.CustomFeedbackHTML = html
			data.Response = rec
		}
	}

	if rec.CustomFeedbackHTML == "" {
		data.Template = s.resolver.Resolve(ctx, req.FormID)
	}

	buf, err := report.Generate(data, report.Options{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrReportGeneration, err)
	}
	return buf, nil
}

func (s *ReportService) buildReportData(ctx context.Context, responseID uuid.UUID) (report.ReportData, error) {
	row, err := s.responses.GetByID(ctx, responseID)
	if err != nil {
		if err == utils.ErrResponseNotFound {
			return report.ReportData{}, err
		}
		return report.ReportData{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	answers, err := report.DecodeAnswers(row.Answers)
	if err != nil {
		log.Printf("response %s has undecodable answers, rendering without breakdown: %v", row.ID, err)
		answers = map[string]report.Answer{}
	}

	rec := report.Response{
		ID:                    row.ID.String(),
		Name:                  row.Name,
		Email:                 row.Email,
		Phone:                 row.Phone,
		Answers:               answers,
		Score:                 row.Score,
		CompletionTimeSeconds: row.CompletionTimeSeconds,
		SubmittedAt:           row.SubmittedAt,
		CustomFeedbackHTML:    row.CustomFeedbackHTML,
	}

	data := report.ReportData{Response: rec}
	if row.FormID != uuid.Nil {
		rec.FormID = row.FormID.String()
		data.Response = rec
		data.Questions, data.QuizTitle = s.loadFormDetails(ctx, row.FormID, "")
	}

	if rec.CustomFeedbackHTML == "" {
		data.Template = s.resolver.Resolve(ctx, rec.FormID)
	}
	return data, nil
}

// loadFormDetails fetches questions and the form title. Lookups are
// best-effort: a failure logs and the report renders without that piece.
func (s *ReportService) loadFormDetails(ctx context.Context, formID uuid.UUID, fallbackTitle string) ([]report.Question, string) {
	title := fallbackTitle

	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		log.Printf("form %s lookup failed: %v", formID, err)
	} else if form != nil {
		title = form.Title
	}

	rows, err := s.questions.ListByForm(ctx, formID)
	if err != nil {
		log.Printf("question lookup failed for form %s: %v", formID, err)
		return nil, title
	}
	return mapQuestions(rows), title
}

func mapQuestions(rows []db_models.Question) []report.Question {
	questions := make([]report.Question, 0, len(rows))
	for _, q := range rows {
		mapped := report.Question{
			ID:     q.ID.String(),
			Text:   q.Text,
			Type:   q.Type,
			Points: q.Points,
		}
		for _, o := range q.Options {
			mapped.Options = append(mapped.Options, report.Option{
				ID:           o.ID.String(),
				Text:         o.Text,
				Score:        o.Score,
				FeedbackHTML: o.FeedbackHTML,
			})
		}
		questions = append(questions, mapped)
	}
	return questions
}

func reportFilename(responseID string) string {
	if responseID == "" {
		responseID = strconv.FormatInt(utils.NowUnixMillis(), 10)
	}
	return "quiz-results-" + responseID + ".pdf"
}
