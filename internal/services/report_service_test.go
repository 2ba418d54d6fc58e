package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"goforms/internal/models/db_models"
	"goforms/internal/models/request_models"
	"goforms/internal/report"
	"goforms/pkg/utils"
)

type fakeResponseRepo struct {
	rows  map[uuid.UUID]*db_models.Response
	calls int
}

func (f *fakeResponseRepo) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Response, error) {
	f.calls++
	if row, ok := f.rows[id]; ok {
		return row, nil
	}
	return nil, utils.ErrResponseNotFound
}

type fakeFormRepo struct {
	form  *db_models.Form
	calls int
}

func (f *fakeFormRepo) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Form, error) {
	f.calls++
	return f.form, nil
}

type fakeQuestionRepo struct {
	questions []db_models.Question
	calls     int
}

func (f *fakeQuestionRepo) ListByForm(ctx context.Context, formID uuid.UUID) ([]db_models.Question, error) {
	f.calls++
	return f.questions, nil
}

type fakeResolver struct {
	template *report.ResolvedTemplate
	calls    int
	lastForm string
}

func (f *fakeResolver) Resolve(ctx context.Context, formID string) *report.ResolvedTemplate {
	f.calls++
	f.lastForm = formID
	return f.template
}

type sentMail struct {
	to, subject, intro, filename string
	attachment                   []byte
}

type fakeMailService struct {
	sent []sentMail
	err  error
}

func (f *fakeMailService) SendReport(to, subject, intro, filename string, attachment []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, intro, filename, attachment})
	return nil
}

type fakeFeedbackService struct {
	html  string
	err   error
	calls int
}

func (f *fakeFeedbackService) GenerateImpactAnalysis(ctx context.Context, quizTitle string, rec report.Response, questions []report.Question) (string, error) {
	f.calls++
	return f.html, f.err
}

type serviceFixture struct {
	responses *fakeResponseRepo
	forms     *fakeFormRepo
	questions *fakeQuestionRepo
	resolver  *fakeResolver
	mail      *fakeMailService
	feedback  *fakeFeedbackService
	svc       ReportServiceInterface
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		responses: &fakeResponseRepo{rows: map[uuid.UUID]*db_models.Response{}},
		forms:     &fakeFormRepo{},
		questions: &fakeQuestionRepo{},
		resolver:  &fakeResolver{},
		mail:      &fakeMailService{},
		feedback:  &fakeFeedbackService{err: ErrFeedbackUnavailable},
	}
	f.svc = NewReportService(f.responses, f.forms, f.questions, f.resolver, f.mail,
		f.feedback, t.TempDir())
	return f
}

func (f *serviceFixture) addResponse(t *testing.T) *db_models.Response {
	t.Helper()
	row := &db_models.Response{
		ID:                    uuid.New(),
		FormID:                uuid.New(),
		Name:                  "Linh Tran",
		Email:                 "linh@example.com",
		Answers:               []byte(`{"q1": 10}`),
		Score:                 82,
		CompletionTimeSeconds: 120,
		SubmittedAt:           time.Date(2025, time.March, 14, 15, 4, 0, 0, time.UTC),
	}
	f.responses.rows[row.ID] = row
	return row
}

func TestGenerateFileWritesReport(t *testing.T) {
	f := newFixture(t)
	row := f.addResponse(t)
	f.forms.form = &db_models.Form{Title: "Go Basics", IsQuiz: true}

	path, filename, err := f.svc.GenerateFile(context.Background(), row.ID)
	if err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	if want := "quiz-results-" + row.ID.String() + ".pdf"; filename != want {
		t.Errorf("filename = %q, want %q", filename, want)
	}
	if filepath.Base(path) != filename {
		t.Errorf("path %q does not end in filename %q", path, filename)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("generated file is not a PDF")
	}
	if f.resolver.calls != 1 || f.resolver.lastForm != row.FormID.String() {
		t.Errorf("resolver calls = %d (form %q), want one call for the response's form",
			f.resolver.calls, f.resolver.lastForm)
	}
}

func TestGenerateFileNotFound(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.svc.GenerateFile(context.Background(), uuid.New())
	if !errors.Is(err, utils.ErrResponseNotFound) {
		t.Errorf("err = %v, want ErrResponseNotFound", err)
	}
}

func TestGenerateFileToleratesBadAnswers(t *testing.T) {
	f := newFixture(t)
	row := f.addResponse(t)
	row.Answers = []byte(`{"q1": "not a score"}`)

	if _, _, err := f.svc.GenerateFile(context.Background(), row.ID); err != nil {
		t.Fatalf("GenerateFile with undecodable answers: %v", err)
	}
}

func TestEmailReportSendsAttachment(t *testing.T) {
	f := newFixture(t)
	row := f.addResponse(t)

	filename, to, err := f.svc.EmailReport(context.Background(), row.ID, "")
	if err != nil {
		t.Fatalf("EmailReport: %v", err)
	}
	if to != row.Email {
		t.Errorf("to = %q, want respondent address %q", to, row.Email)
	}
	if len(f.mail.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(f.mail.sent))
	}
	sent := f.mail.sent[0]
	if sent.filename != filename {
		t.Errorf("attachment filename = %q, want %q", sent.filename, filename)
	}
	if !bytes.HasPrefix(sent.attachment, []byte("%PDF-")) {
		t.Error("attachment is not a PDF")
	}
}

func TestEmailReportOverrideRecipient(t *testing.T) {
	f := newFixture(t)
	row := f.addResponse(t)

	_, to, err := f.svc.EmailReport(context.Background(), row.ID, "teacher@example.com")
	if err != nil {
		t.Fatalf("EmailReport: %v", err)
	}
	if to != "teacher@example.com" {
		t.Errorf("to = %q, want the override address", to)
	}
}

func TestEmailReportNoRecipient(t *testing.T) {
	f := newFixture(t)
	row := f.addResponse(t)
	row.Email = ""

	_, _, err := f.svc.EmailReport(context.Background(), row.ID, "")
	if !errors.Is(err, utils.ErrNoRecipient) {
		t.Errorf("err = %v, want ErrNoRecipient", err)
	}
	if len(f.mail.sent) != 0 {
		t.Error("mail sent despite missing recipient")
	}
}

func TestEmailReportDeliveryFailure(t *testing.T) {
	f := newFixture(t)
	row := f.addResponse(t)
	f.mail.err = errors.New("smtp unreachable")

	_, _, err := f.svc.EmailReport(context.Background(), row.ID, "")
	if !errors.Is(err, utils.ErrMailDelivery) {
		t.Errorf("err = %v, want ErrMailDelivery", err)
	}
}

func TestPreviewSampleSkipsStore(t *testing.T) {
	f := newFixture(t)

	buf, err := f.svc.GeneratePreview(context.Background(), request_models.PreviewReportRequest{
		FormID:    report.SampleFormID,
		Name:      "Sample Person",
		Score:     50,
		QuizTitle: "Sample Quiz",
		Answers: map[string]request_models.PreviewAnswer{
			"q1": {Value: 5, ImpactAnalysisHTML: "<p>ok</p>"},
		},
	})
	if err != nil {
		t.Fatalf("GeneratePreview: %v", err)
	}
	if !bytes.HasPrefix(buf, []byte("%PDF-")) {
		t.Error("preview is not a PDF")
	}
	if f.responses.calls != 0 || f.forms.calls != 0 || f.questions.calls != 0 {
		t.Errorf("store queried for a sample preview (%d/%d/%d calls)",
			f.responses.calls, f.forms.calls, f.questions.calls)
	}
	// The resolver sees the sentinel and short-circuits internally.
	if f.resolver.lastForm != report.SampleFormID {
		t.Errorf("resolver received form %q, want the sample sentinel", f.resolver.lastForm)
	}
}

func TestPreviewLoadsFormDetails(t *testing.T) {
	f := newFixture(t)
	formID := uuid.New()
	f.forms.form = &db_models.Form{Title: "Stored Title"}
	f.questions.questions = []db_models.Question{
		{BaseModel: db_models.BaseModel{ID: uuid.New()}, Text: "Q one?", Points: 10},
	}

	if _, err := f.svc.GeneratePreview(context.Background(), request_models.PreviewReportRequest{
		FormID: formID.String(),
		Name:   "Linh Tran",
		Score:  70,
	}); err != nil {
		t.Fatalf("GeneratePreview: %v", err)
	}
	if f.forms.calls != 1 || f.questions.calls != 1 {
		t.Errorf("form/question lookups = %d/%d, want 1/1", f.forms.calls, f.questions.calls)
	}
}

func TestPreviewCustomFeedbackSkipsResolver(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.GeneratePreview(context.Background(), request_models.PreviewReportRequest{
		FormID:             uuid.NewString(),
		Name:               "Linh Tran",
		CustomFeedbackHTML: "<p>already written</p>",
	}); err != nil {
		t.Fatalf("GeneratePreview: %v", err)
	}
	if f.resolver.calls != 0 {
		t.Error("resolver queried although custom feedback was supplied")
	}
}

func TestPreviewGeneratedFeedback(t *testing.T) {
	f := newFixture(t)
	f.feedback.html = "<p>AI says well done</p>"
	f.feedback.err = nil

	if _, err := f.svc.GeneratePreview(context.Background(), request_models.PreviewReportRequest{
		FormID:           report.SampleFormID,
		Name:             "Linh Tran",
		Score:            90,
		GenerateFeedback: true,
	}); err != nil {
		t.Fatalf("GeneratePreview: %v", err)
	}
	if f.feedback.calls != 1 {
		t.Errorf("feedback calls = %d, want 1", f.feedback.calls)
	}
	if f.resolver.calls != 0 {
		t.Error("resolver queried although feedback was generated")
	}
}

func TestPreviewFeedbackFailureDegrades(t *testing.T) {
	f := newFixture(t)
	f.feedback.err = errors.New("provider down")

	buf, err := f.svc.GeneratePreview(context.Background(), request_models.PreviewReportRequest{
		FormID:           report.SampleFormID,
		Name:             "Linh Tran",
		GenerateFeedback: true,
	})
	if err != nil {
		t.Fatalf("GeneratePreview: %v", err)
	}
	if !bytes.HasPrefix(buf, []byte("%PDF-")) {
		t.Error("preview is not a PDF after feedback failure")
	}
	if f.resolver.calls != 1 {
		t.Error("resolver not consulted after feedback generation failed")
	}
}

func TestReportFilename(t *testing.T) {
	if got := reportFilename("abc-123"); got != "quiz-results-abc-123.pdf" {
		t.Errorf("reportFilename = %q", got)
	}
	got := reportFilename("")
	if got == "quiz-results-.pdf" || got == "" {
		t.Errorf("empty ID produced %q, want a timestamped name", got)
	}
}
