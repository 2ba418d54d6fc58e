package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goforms/internal/models/db_models"
)

type FormRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Form, error)
}

type FormRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{db: db}
}

func (r *FormRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Form, error) {
	var form db_models.Form
	err := r.db.WithContext(ctx).First(&form, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}
