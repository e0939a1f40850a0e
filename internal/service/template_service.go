package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecanturk/contact-relay/internal/domain"
	"github.com/ecanturk/contact-relay/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateService manages stored email template overrides.
type TemplateService struct {
	templates repository.TemplateRepository
	logger    *zap.Logger
}

func NewTemplateService(templates repository.TemplateRepository, logger *zap.Logger) (*TemplateService, error) {
	if templates == nil {
		return nil, fmt.Errorf("template repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{templates: templates, logger: logger}, nil
}

func (s *TemplateService) Create(ctx context.Context, t *domain.EmailTemplate) (*domain.EmailTemplate, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: template is required", domain.ErrValidation)
	}

	t.Name = strings.TrimSpace(t.Name)
	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.templates.Save(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("email template saved",
		zap.String("templateId", t.ID),
		zap.String("templateType", t.Type.String()),
		zap.Bool("active", t.IsActive),
	)
	return t, nil
}

func (s *TemplateService) Activate(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: template id is required", domain.ErrValidation)
	}
	return s.templates.Activate(ctx, strings.TrimSpace(id))
}

func (s *TemplateService) GetByID(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: template id is required", domain.ErrValidation)
	}
	return s.templates.GetByID(ctx, strings.TrimSpace(id))
}

func (s *TemplateService) List(ctx context.Context) ([]domain.EmailTemplate, error) {
	return s.templates.List(ctx)
}
