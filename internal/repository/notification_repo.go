package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecanturk/contact-relay/internal/domain"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, r *domain.NotificationRecord) error
	GetBySubmissionID(ctx context.Context, submissionID string) (*domain.NotificationRecord, error)
	Update(ctx context.Context, r *domain.NotificationRecord) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type GormNotificationRepo struct {
	db *gorm.DB
}

func NewGormNotificationRepo(db *gorm.DB) *GormNotificationRepo {
	return &GormNotificationRepo{db: db}
}

func (r *GormNotificationRepo) Create(ctx context.Context, record *domain.NotificationRecord) error {
	model := recordModelFromDomain(record)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolationError(err) {
			return fmt.Errorf("%w: notification record already exists for submission %s",
				domain.ErrConflict, record.SubmissionID)
		}
		return err
	}
	if record != nil {
		*record = *recordModelToDomain(model)
	}
	return nil
}

func (r *GormNotificationRepo) GetBySubmissionID(ctx context.Context, submissionID string) (*domain.NotificationRecord, error) {
	var model NotificationRecordModel
	err := r.db.WithContext(ctx).First(&model, "submission_id = ?", submissionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: notification record for submission %s", domain.ErrNotFound, submissionID)
		}
		return nil, err
	}
	return recordModelToDomain(&model), nil
}

func (r *GormNotificationRepo) Update(ctx context.Context, record *domain.NotificationRecord) error {
	if record == nil {
		return fmt.Errorf("%w: notification record is required", domain.ErrValidation)
	}

	model := recordModelFromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&NotificationRecordModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "submission_id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: notification record %s", domain.ErrNotFound, record.ID)
	}
	return nil
}

func (r *GormNotificationRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	result := r.db.WithContext(ctx).
		Model(&NotificationRecordModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": domain.StatusFailed,
			// Same guard as the domain MarkFailed: never clobber an error a
			// channel already recorded.
			"admin_email_error": gorm.Expr(
				"CASE WHEN admin_email_error IS NULL AND thankyou_email_error IS NULL THEN ? ELSE admin_email_error END",
				reason,
			),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: notification record %s", domain.ErrNotFound, id)
	}
	return nil
}

func isUniqueViolationError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
