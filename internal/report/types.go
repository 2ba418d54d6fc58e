package report

import (
	"encoding/json"
	"fmt"
	"time"
)

// SampleFormID marks a preview response that has no persisted form behind it.
// Resolvers and repositories must not be queried when a response carries it.
const SampleFormID = "sample"

// Response is the report engine's view of one submitted answer set. It is
// built by the caller right before rendering and never persisted here.
type Response struct {
	ID                    string
	Name                  string
	Email                 string
	Phone                 string
	FormID                string
	Answers               map[string]Answer
	Score                 float64 // aggregate, 0-100
	CompletionTimeSeconds int
	SubmittedAt           time.Time
	CustomFeedbackHTML    string
}

// IsSample reports whether the response belongs to no persisted form, either
// because the sentinel form ID is set or because there is no form ID at all.
func (r Response) IsSample() bool {
	return r.FormID == "" || r.FormID == SampleFormID
}

// Answer is the resolved form of one stored answer value. Stored answers are
// either a bare number or an object; DecodeAnswers settles the shape once so
// render sites never re-sniff it.
type Answer struct {
	Value              float64
	SelectedOptionID   string
	ImpactAnalysisHTML string
}

type storedAnswer struct {
	Value              float64 `json:"value"`
	SelectedOptionID   string  `json:"selected_option_id"`
	ImpactAnalysisHTML string  `json:"impact_analysis_html"`
}

// DecodeAnswers decodes the jsonb answers column. Each value may be a raw
// numeric score (legacy rows) or a structured object.
func DecodeAnswers(raw []byte) (map[string]Answer, error) {
	out := map[string]Answer{}
	if len(raw) == 0 {
		return out, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	for id, entry := range m {
		var num float64
		if err := json.Unmarshal(entry, &num); err == nil {
			out[id] = Answer{Value: num}
			continue
		}
		var obj storedAnswer
		if err := json.Unmarshal(entry, &obj); err != nil {
			return nil, fmt.Errorf("decode answer %s: %w", id, err)
		}
		out[id] = Answer{
			Value:              obj.Value,
			SelectedOptionID:   obj.SelectedOptionID,
			ImpactAnalysisHTML: obj.ImpactAnalysisHTML,
		}
	}
	return out, nil
}

// Question carries the form metadata the breakdown renderer needs.
type Question struct {
	ID      string
	Text    string
	Type    string
	Points  float64
	Options []Option
}

type Option struct {
	ID           string
	Text         string
	Score        float64
	FeedbackHTML string
}

// OptionText returns the display text of the option with the given ID.
func (q Question) OptionText(optionID string) string {
	for _, o := range q.Options {
		if o.ID == optionID {
			return o.Text
		}
	}
	return ""
}

// TemplateSection is one titled block of a structured report template.
type TemplateSection struct {
	Title       string `json:"title"`
	ContentHTML string `json:"content_html"`
}

// ResolvedTemplate is the outcome of template resolution: an ordered list of
// sections. Legacy raw-HTML templates resolve to a single untitled section.
type ResolvedTemplate struct {
	Sections []TemplateSection
}

// ReportData is everything the assembler needs to produce one document.
type ReportData struct {
	Response  Response
	Questions []Question
	Template  *ResolvedTemplate
	QuizTitle string
}
