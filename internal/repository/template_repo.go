package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecanturk/contact-relay/internal/domain"
	"gorm.io/gorm"
)

type TemplateRepository interface {
	Save(ctx context.Context, t *domain.EmailTemplate) error
	GetByID(ctx context.Context, id string) (*domain.EmailTemplate, error)
	GetActiveByType(ctx context.Context, templateType domain.TemplateType) (*domain.EmailTemplate, error)
	Activate(ctx context.Context, id string) (*domain.EmailTemplate, error)
	List(ctx context.Context) ([]domain.EmailTemplate, error)
}

type GormTemplateRepo struct {
	db *gorm.DB
}

func NewGormTemplateRepo(db *gorm.DB) *GormTemplateRepo {
	return &GormTemplateRepo{db: db}
}

// Save upserts a template. Saving with IsActive deactivates every other
// template of the same type inside one transaction, so at most one template
// per type is active at any point.
func (r *GormTemplateRepo) Save(ctx context.Context, t *domain.EmailTemplate) error {
	if t == nil {
		return fmt.Errorf("%w: template is required", domain.ErrValidation)
	}

	model := templateModelFromDomain(t)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if model.IsActive {
			err := tx.Model(&EmailTemplateModel{}).
				Where("type = ? AND id <> ?", model.Type, model.ID).
				Update("is_active", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Save(model).Error
	})
	if err != nil {
		return err
	}

	*t = *templateModelToDomain(model)
	return nil
}

func (r *GormTemplateRepo) GetByID(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	var model EmailTemplateModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: template %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return templateModelToDomain(&model), nil
}

func (r *GormTemplateRepo) GetActiveByType(ctx context.Context, templateType domain.TemplateType) (*domain.EmailTemplate, error) {
	var model EmailTemplateModel
	err := r.db.WithContext(ctx).
		First(&model, "type = ? AND is_active = ?", templateType, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no active template of type %s", domain.ErrNotFound, templateType)
		}
		return nil, err
	}
	return templateModelToDomain(&model), nil
}

func (r *GormTemplateRepo) Activate(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	var model EmailTemplateModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: template %s", domain.ErrNotFound, id)
			}
			return err
		}

		err := tx.Model(&EmailTemplateModel{}).
			Where("type = ? AND id <> ?", model.Type, model.ID).
			Update("is_active", false).Error
		if err != nil {
			return err
		}

		model.IsActive = true
		return tx.Model(&model).Update("is_active", true).Error
	})
	if err != nil {
		return nil, err
	}

	return templateModelToDomain(&model), nil
}

func (r *GormTemplateRepo) List(ctx context.Context) ([]domain.EmailTemplate, error) {
	var models []EmailTemplateModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	templates := make([]domain.EmailTemplate, 0, len(models))
	for i := range models {
		templates = append(templates, *templateModelToDomain(&models[i]))
	}
	return templates, nil
}
