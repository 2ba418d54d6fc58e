package report

import (
	"fmt"
	"strings"

	"goforms/pkg/utils"
)

// Interpolate replaces every {{key}} token with its value. Unknown tokens are
// left verbatim so that template typos degrade gracefully instead of erroring.
func Interpolate(s string, vars map[string]string) string {
	for key, val := range vars {
		s = strings.ReplaceAll(s, "{{"+key+"}}", val)
	}
	return s
}

// PerformanceCategory maps an aggregate score to its display tier. This is the
// single source of the banding; call sites must not re-derive it.
func PerformanceCategory(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Very Good"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Satisfactory"
	default:
		return "Needs Improvement"
	}
}

// Variables builds the token set recognized by report templates.
func Variables(data ReportData) map[string]string {
	r := data.Response
	title := data.QuizTitle
	if title == "" {
		title = "Quiz"
	}
	return map[string]string{
		"name":                 r.Name,
		"email":                r.Email,
		"score":                fmt.Sprintf("%.0f", r.Score),
		"date":                 utils.FormatReportDate(r.SubmittedAt),
		"time":                 utils.FormatReportTime(r.SubmittedAt),
		"quiz_title":           title,
		"performance_category": PerformanceCategory(r.Score),
	}
}
