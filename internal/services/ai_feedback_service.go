package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"goforms/internal/report"
)

var ErrFeedbackUnavailable = errors.New("no AI feedback provider configured")

// AIFeedbackServiceInterface produces the rich-text feedback block a preview
// report can embed when the response has no stored feedback.
type AIFeedbackServiceInterface interface {
	GenerateImpactAnalysis(ctx context.Context, quizTitle string, rec report.Response, questions []report.Question) (string, error)
}

const feedbackSystemPrompt = "You are an assessment coach for an online quiz platform. " +
	"Given a respondent's quiz results, write a short, encouraging performance analysis. " +
	"Respond with simple HTML only (p, ul, li, strong tags), no markdown, no document wrapper."

func feedbackPrompt(quizTitle string, rec report.Response, questions []report.Question) string {
	var b strings.Builder
	if quizTitle == "" {
		quizTitle = "Quiz"
	}
	fmt.Fprintf(&b, "Quiz: %s\nRespondent: %s\nOverall score: %.0f/100 (%s)\n",
		quizTitle, rec.Name, rec.Score, report.PerformanceCategory(rec.Score))
	for i, q := range questions {
		a, ok := rec.Answers[q.ID]
		if !ok {
			continue
		}
		points := q.Points
		if points <= 0 {
			points = 10
		}
		fmt.Fprintf(&b, "Q%d: %s (scored %.0f/%.0f)\n", i+1, q.Text, a.Value, points)
	}
	b.WriteString("Write the performance analysis now.")
	return b.String()
}

// ---- OpenAI provider ----

type openAIFeedbackService struct {
	client *openai.Client
}

func NewOpenAIFeedbackService(apiKey string) AIFeedbackServiceInterface {
	return &openAIFeedbackService{client: openai.NewClient(apiKey)}
}

func (s *openAIFeedbackService) GenerateImpactAnalysis(ctx context.Context, quizTitle string, rec report.Response, questions []report.Question) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openai.GPT4oMini,
		Temperature: 0.7,
		MaxTokens:   600,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: feedbackSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: feedbackPrompt(quizTitle, rec, questions)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai feedback: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai feedback: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ---- Gemini provider (free-tier fallback) ----

type geminiFeedbackService struct {
	client *genai.Client
	model  string
}

func NewGeminiFeedbackService(apiKey, model string) (AIFeedbackServiceInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiFeedbackService{client: client, model: model}, nil
}

func (s *geminiFeedbackService) GenerateImpactAnalysis(ctx context.Context, quizTitle string, rec report.Response, questions []report.Question) (string, error) {
	model := s.client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx,
		genai.Text(feedbackSystemPrompt+"\n\n"+feedbackPrompt(quizTitle, rec, questions)))
	if err != nil {
		return "", fmt.Errorf("gemini feedback: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini feedback: empty response")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// ---- Disabled provider ----

type noFeedbackService struct{}

func NewNoFeedbackService() AIFeedbackServiceInterface { return noFeedbackService{} }

func (noFeedbackService) GenerateImpactAnalysis(context.Context, string, report.Response, []report.Question) (string, error) {
	return "", ErrFeedbackUnavailable
}
