package db_models

import "github.com/google/uuid"

type Question struct {
	BaseModel
	FormID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Text     string    `gorm:"type:text;not null"`
	Type     string    `gorm:"not null"` // "multiple_choice", "true_false", "short_answer"
	Points   float64   `gorm:"default:10"`
	Sequence int       `gorm:"not null"`
	Options  []QuestionOption `gorm:"foreignKey:QuestionID"`
}

type QuestionOption struct {
	BaseModel
	QuestionID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Text         string    `gorm:"type:text;not null"`
	Score        float64   `gorm:"default:0"`
	FeedbackHTML string    `gorm:"column:feedback_html;type:text"`
	Sequence     int       `gorm:"not null"`
}
