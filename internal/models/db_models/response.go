package db_models

import (
	"time"

	"github.com/google/uuid"
)

// Response is one submitted answer set. Answers is a jsonb column keyed by
// question ID; values are either a bare number or an object with value,
// selected_option_id and impact_analysis_html (see report.DecodeAnswers).
type Response struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FormID                uuid.UUID `gorm:"type:uuid;index"`
	Name                  string    `gorm:"not null"`
	Email                 string    `gorm:"not null"`
	Phone                 string
	Answers               []byte  `gorm:"type:jsonb"`
	Score                 float64 `gorm:"default:0"`
	CompletionTimeSeconds int
	CustomFeedbackHTML    string    `gorm:"column:custom_feedback_html;type:text"`
	SubmittedAt           time.Time `gorm:"autoCreateTime"`
}
