package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecanturk/contact-relay/internal/domain"
	"gorm.io/gorm"
)

type ListParams struct {
	IsUrgent *bool
	IsRead   *bool
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

type SubmissionRepository interface {
	Create(ctx context.Context, s *domain.ContactSubmission) error
	GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error)
	MarkRead(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams) ([]domain.ContactSubmission, int64, error)
}

type GormSubmissionRepo struct {
	db *gorm.DB
}

func NewGormSubmissionRepo(db *gorm.DB) *GormSubmissionRepo {
	return &GormSubmissionRepo{db: db}
}

func (r *GormSubmissionRepo) Create(ctx context.Context, s *domain.ContactSubmission) error {
	model := submissionModelFromDomain(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if s != nil {
		*s = *submissionModelToDomain(model)
	}
	return nil
}

func (r *GormSubmissionRepo) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	var model SubmissionModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: submission %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return submissionModelToDomain(&model), nil
}

func (r *GormSubmissionRepo) MarkRead(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&SubmissionModel{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: submission %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *GormSubmissionRepo) List(ctx context.Context, params ListParams) ([]domain.ContactSubmission, int64, error) {
	query := r.db.WithContext(ctx).Model(&SubmissionModel{})

	if params.IsUrgent != nil {
		query = query.Where("is_urgent = ?", *params.IsUrgent)
	}
	if params.IsRead != nil {
		query = query.Where("is_read = ?", *params.IsRead)
	}
	if params.From != nil {
		query = query.Where("submitted_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("submitted_at <= ?", *params.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	var models []SubmissionModel
	err := query.
		Order("submitted_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	submissions := make([]domain.ContactSubmission, 0, len(models))
	for i := range models {
		submissions = append(submissions, *submissionModelToDomain(&models[i]))
	}

	return submissions, total, nil
}
