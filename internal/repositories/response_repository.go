package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goforms/internal/models/db_models"
	"goforms/pkg/utils"
)

type ResponseRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Response, error)
}

type ResponseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

func (r *ResponseRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Response, error) {
	var response db_models.Response
	err := r.db.WithContext(ctx).First(&response, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrResponseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}
