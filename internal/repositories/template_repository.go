package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goforms/internal/models/db_models"
)

type TemplateRepositoryInterface interface {
	FindDefaultForForm(ctx context.Context, formID uuid.UUID) (*db_models.ReportTemplate, error)
	FindGlobalDefault(ctx context.Context) (*db_models.ReportTemplate, error)
}

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) FindDefaultForForm(ctx context.Context, formID uuid.UUID) (*db_models.ReportTemplate, error) {
	var tmpl db_models.ReportTemplate
	err := r.db.WithContext(ctx).
		Where("scope_form_id = ? AND is_default = ?", formID, true).
		First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *TemplateRepository) FindGlobalDefault(ctx context.Context) (*db_models.ReportTemplate, error) {
	var tmpl db_models.ReportTemplate
	err := r.db.WithContext(ctx).
		Where("scope_form_id IS NULL AND is_default = ?", true).
		First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}
