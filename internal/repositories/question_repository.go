package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goforms/internal/models/db_models"
)

type QuestionRepositoryInterface interface {
	ListByForm(ctx context.Context, formID uuid.UUID) ([]db_models.Question, error)
}

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) ListByForm(ctx context.Context, formID uuid.UUID) ([]db_models.Question, error) {
	var questions []db_models.Question
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Order("sequence ASC").
		Find(&questions).Error
	return questions, err
}
