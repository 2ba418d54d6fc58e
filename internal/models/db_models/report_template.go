package db_models

import "github.com/google/uuid"

// ReportTemplate holds rich-text content spliced into generated reports.
// Content is either a JSON array of {title, content_html} sections or a raw
// HTML blob (legacy rows); the resolver handles both.
type ReportTemplate struct {
	BaseModel
	Name        string     `gorm:"not null"`
	Content     string     `gorm:"type:text;not null"`
	ScopeFormID *uuid.UUID `gorm:"type:uuid;index"` // nil = global default
	IsDefault   bool       `gorm:"default:false"`
}
