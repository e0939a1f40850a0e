package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecanturk/contact-relay/internal/domain"
	"github.com/ecanturk/contact-relay/internal/observability"
	"github.com/ecanturk/contact-relay/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier is the orchestrator port consumed by the submission flow.
type Notifier interface {
	Notify(ctx context.Context, submission *domain.ContactSubmission) *domain.NotificationRecord
}

// SubmissionService accepts contact submissions and triggers their
// notification run.
type SubmissionService struct {
	submissions repository.SubmissionRepository
	records     repository.NotificationRepository
	notifier    Notifier
	logger      *zap.Logger
	metrics     *observability.Metrics
	now         func() time.Time
}

func NewSubmissionService(
	submissions repository.SubmissionRepository,
	records repository.NotificationRepository,
	notifier Notifier,
	logger *zap.Logger,
) (*SubmissionService, error) {
	if submissions == nil {
		return nil, fmt.Errorf("submission repository is required")
	}
	if records == nil {
		return nil, fmt.Errorf("notification repository is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SubmissionService{
		submissions: submissions,
		records:     records,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}, nil
}

func (s *SubmissionService) SetMetrics(metrics *observability.Metrics) {
	if s == nil {
		return
	}
	s.metrics = metrics
}

// Accept persists a submission, creates its PENDING notification record and
// runs the notification channels synchronously. The submission is accepted
// even when every channel fails; only validation and persistence errors of
// the submission itself are returned.
func (s *SubmissionService) Accept(
	ctx context.Context,
	submission *domain.ContactSubmission,
) (*domain.ContactSubmission, *domain.NotificationRecord, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := s.prepareForCreate(submission); err != nil {
		return nil, nil, err
	}

	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, nil, err
	}

	record := &domain.NotificationRecord{
		ID:           uuid.NewString(),
		SubmissionID: submission.ID,
		Status:       domain.StatusPending,
	}
	if err := s.records.Create(ctx, record); err != nil {
		// The submission is already stored; losing the record means the
		// channels cannot run, but the acceptance itself stands.
		s.logger.Error("failed to create notification record",
			zap.String("submissionId", submission.ID),
			zap.Error(err),
		)
		return submission, nil, nil
	}

	if s.metrics != nil {
		s.metrics.IncSubmissionReceived(submission.IsUrgent)
	}

	final := s.notifier.Notify(ctx, submission)
	if final == nil {
		final = record
	}

	return submission, final, nil
}

func (s *SubmissionService) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: submission id is required", domain.ErrValidation)
	}
	return s.submissions.GetByID(ctx, strings.TrimSpace(id))
}

func (s *SubmissionService) GetNotification(ctx context.Context, submissionID string) (*domain.NotificationRecord, error) {
	if strings.TrimSpace(submissionID) == "" {
		return nil, fmt.Errorf("%w: submission id is required", domain.ErrValidation)
	}
	return s.records.GetBySubmissionID(ctx, strings.TrimSpace(submissionID))
}

func (s *SubmissionService) List(
	ctx context.Context,
	params repository.ListParams,
) ([]domain.ContactSubmission, int64, error) {
	return s.submissions.List(ctx, params)
}

func (s *SubmissionService) prepareForCreate(submission *domain.ContactSubmission) error {
	if submission == nil {
		return fmt.Errorf("%w: submission is required", domain.ErrValidation)
	}

	submission.Name = strings.TrimSpace(submission.Name)
	submission.Email = strings.TrimSpace(submission.Email)
	submission.Subject = strings.TrimSpace(submission.Subject)
	submission.Message = strings.TrimSpace(submission.Message)

	submission.ID = strings.TrimSpace(submission.ID)
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}

	submission.IsRead = false
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = s.now().UTC()
	}

	return submission.Validate()
}
