package service

import (
	"context"
	"fmt"

	"github.com/ecanturk/contact-relay/internal/domain"
	"github.com/ecanturk/contact-relay/internal/repository"
	"go.uber.org/zap"
)

// SettingsService fronts the notification settings singleton. Every write
// goes through Update so storage can never hold more than one row.
type SettingsService struct {
	settings repository.SettingsRepository
	logger   *zap.Logger
}

func NewSettingsService(settings repository.SettingsRepository, logger *zap.Logger) (*SettingsService, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{settings: settings, logger: logger}, nil
}

func (s *SettingsService) Get(ctx context.Context) (*domain.NotificationSettings, error) {
	return s.settings.Get(ctx)
}

func (s *SettingsService) Update(ctx context.Context, updated *domain.NotificationSettings) (*domain.NotificationSettings, error) {
	if updated == nil {
		return nil, fmt.Errorf("%w: settings payload is required", domain.ErrValidation)
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.settings.Update(ctx, updated)
	if err != nil {
		return nil, err
	}

	s.logger.Info("notification settings updated",
		zap.Bool("adminEmailEnabled", stored.AdminEmailEnabled),
		zap.Bool("thankYouEmailEnabled", stored.ThankYouEmailEnabled),
		zap.Bool("pushEnabled", stored.PushEnabled),
	)
	return stored, nil
}
