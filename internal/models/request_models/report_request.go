package request_models

type EmailReportRequest struct {
	To string `json:"to,omitempty"`
}

type PreviewAnswer struct {
	Value              float64 `json:"value"`
	SelectedOptionID   string  `json:"selected_option_id,omitempty"`
	ImpactAnalysisHTML string  `json:"impact_analysis_html,omitempty"`
}

// PreviewReportRequest carries a full response record so previews render with
// zero backend lookups. FormID may be the "sample" sentinel (or empty), in
// which case no template or question data is fetched.
type PreviewReportRequest struct {
	FormID                string                   `json:"form_id,omitempty"`
	Name                  string                   `json:"name" binding:"required"`
	Email                 string                   `json:"email,omitempty"`
	Phone                 string                   `json:"phone,omitempty"`
	Score                 float64                  `json:"score"`
	CompletionTimeSeconds int                      `json:"completion_time_seconds,omitempty"`
	Answers               map[string]PreviewAnswer `json:"answers,omitempty"`
	CustomFeedbackHTML    string                   `json:"custom_feedback_html,omitempty"`
	GenerateFeedback      bool                     `json:"generate_feedback,omitempty"`
	QuizTitle             string                   `json:"quiz_title,omitempty"`
}
