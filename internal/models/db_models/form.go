package db_models

import "github.com/lib/pq"

type Form struct {
	BaseModel
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	IsQuiz      bool   `gorm:"default:false"`
	Published   bool   `gorm:"default:false"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	Questions   []Question     `gorm:"foreignKey:FormID"`
}
