package repository

import (
	"context"
	"errors"

	"github.com/ecanturk/contact-relay/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository guards the notification settings singleton. There is
// deliberately no bare Create: Get lazily seeds the row with defaults and
// Update always targets the same fixed id, so a second "creation" can only
// overwrite the first.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.NotificationSettings, error)
	Update(ctx context.Context, s *domain.NotificationSettings) (*domain.NotificationSettings, error)
}

type GormSettingsRepo struct {
	db *gorm.DB
}

func NewGormSettingsRepo(db *gorm.DB) *GormSettingsRepo {
	return &GormSettingsRepo{db: db}
}

func (r *GormSettingsRepo) Get(ctx context.Context) (*domain.NotificationSettings, error) {
	var model SettingsModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", domain.SettingsID).Error
	if err == nil {
		return settingsModelToDomain(&model), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := domain.DefaultSettings()
	seed := settingsModelFromDomain(&defaults)

	// DoNothing keeps a concurrent first access from clobbering the row.
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(seed).Error
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).First(&model, "id = ?", domain.SettingsID).Error; err != nil {
		return nil, err
	}
	return settingsModelToDomain(&model), nil
}

func (r *GormSettingsRepo) Update(ctx context.Context, s *domain.NotificationSettings) (*domain.NotificationSettings, error) {
	if s == nil {
		return nil, domain.ErrValidation
	}

	incoming := *s
	incoming.ID = domain.SettingsID
	model := settingsModelFromDomain(&incoming)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
	if err != nil {
		return nil, err
	}

	var stored SettingsModel
	if err := r.db.WithContext(ctx).First(&stored, "id = ?", domain.SettingsID).Error; err != nil {
		return nil, err
	}
	return settingsModelToDomain(&stored), nil
}
