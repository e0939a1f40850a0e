package service

import (
	"context"
	"fmt"

	"github.com/ecanturk/contact-relay/internal/channel"
	"github.com/ecanturk/contact-relay/internal/domain"
	"github.com/ecanturk/contact-relay/internal/repository"
)

type fakeSubmissionRepo struct {
	createFn   func(ctx context.Context, s *domain.ContactSubmission) error
	getByIDFn  func(ctx context.Context, id string) (*domain.ContactSubmission, error)
	markReadFn func(ctx context.Context, id string) error
	listFn     func(ctx context.Context, params repository.ListParams) ([]domain.ContactSubmission, int64, error)

	created     []*domain.ContactSubmission
	markReadIDs []string
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, s *domain.ContactSubmission) error {
	f.created = append(f.created, s)
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	return nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("%w: submission %s", domain.ErrNotFound, id)
}

func (f *fakeSubmissionRepo) MarkRead(ctx context.Context, id string) error {
	f.markReadIDs = append(f.markReadIDs, id)
	if f.markReadFn != nil {
		return f.markReadFn(ctx, id)
	}
	return nil
}

func (f *fakeSubmissionRepo) List(ctx context.Context, params repository.ListParams) ([]domain.ContactSubmission, int64, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return nil, 0, nil
}

type fakeNotificationRepo struct {
	createFn            func(ctx context.Context, r *domain.NotificationRecord) error
	getBySubmissionIDFn func(ctx context.Context, submissionID string) (*domain.NotificationRecord, error)
	updateFn            func(ctx context.Context, r *domain.NotificationRecord) error
	markFailedFn        func(ctx context.Context, id string, reason string) error

	created           []*domain.NotificationRecord
	updated           []*domain.NotificationRecord
	markFailedReasons []string
}

func (f *fakeNotificationRepo) Create(ctx context.Context, r *domain.NotificationRecord) error {
	f.created = append(f.created, r)
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeNotificationRepo) GetBySubmissionID(ctx context.Context, submissionID string) (*domain.NotificationRecord, error) {
	if f.getBySubmissionIDFn != nil {
		return f.getBySubmissionIDFn(ctx, submissionID)
	}
	return nil, fmt.Errorf("%w: notification record for submission %s", domain.ErrNotFound, submissionID)
}

func (f *fakeNotificationRepo) Update(ctx context.Context, r *domain.NotificationRecord) error {
	f.updated = append(f.updated, r)
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

func (f *fakeNotificationRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	f.markFailedReasons = append(f.markFailedReasons, reason)
	if f.markFailedFn != nil {
		return f.markFailedFn(ctx, id, reason)
	}
	return nil
}

type fakeSettingsRepo struct {
	getFn    func(ctx context.Context) (*domain.NotificationSettings, error)
	updateFn func(ctx context.Context, s *domain.NotificationSettings) (*domain.NotificationSettings, error)
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*domain.NotificationSettings, error) {
	if f.getFn != nil {
		return f.getFn(ctx)
	}
	settings := domain.DefaultSettings()
	return &settings, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, s *domain.NotificationSettings) (*domain.NotificationSettings, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, s)
	}
	s.ID = domain.SettingsID
	return s, nil
}

type fakeTemplateRepo struct {
	saveFn            func(ctx context.Context, t *domain.EmailTemplate) error
	getByIDFn         func(ctx context.Context, id string) (*domain.EmailTemplate, error)
	getActiveByTypeFn func(ctx context.Context, templateType domain.TemplateType) (*domain.EmailTemplate, error)
	activateFn        func(ctx context.Context, id string) (*domain.EmailTemplate, error)
	listFn            func(ctx context.Context) ([]domain.EmailTemplate, error)

	saved []*domain.EmailTemplate
}

func (f *fakeTemplateRepo) Save(ctx context.Context, t *domain.EmailTemplate) error {
	f.saved = append(f.saved, t)
	if f.saveFn != nil {
		return f.saveFn(ctx, t)
	}
	return nil
}

func (f *fakeTemplateRepo) GetByID(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("%w: template %s", domain.ErrNotFound, id)
}

func (f *fakeTemplateRepo) GetActiveByType(ctx context.Context, templateType domain.TemplateType) (*domain.EmailTemplate, error) {
	if f.getActiveByTypeFn != nil {
		return f.getActiveByTypeFn(ctx, templateType)
	}
	return nil, fmt.Errorf("%w: no active template of type %s", domain.ErrNotFound, templateType)
}

func (f *fakeTemplateRepo) Activate(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	if f.activateFn != nil {
		return f.activateFn(ctx, id)
	}
	return nil, fmt.Errorf("%w: template %s", domain.ErrNotFound, id)
}

func (f *fakeTemplateRepo) List(ctx context.Context) ([]domain.EmailTemplate, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

type fakeEmailSender struct {
	sendFn func(msg channel.EmailMessage) error

	sent []channel.EmailMessage
}

func (f *fakeEmailSender) Send(ctx context.Context, msg channel.EmailMessage) error {
	f.sent = append(f.sent, msg)
	if f.sendFn != nil {
		return f.sendFn(msg)
	}
	return nil
}

type fakePushSender struct {
	sendFn func(req channel.PushRequest) (*channel.PushResponse, error)

	sent []channel.PushRequest
}

func (f *fakePushSender) Send(ctx context.Context, req channel.PushRequest) (*channel.PushResponse, error) {
	f.sent = append(f.sent, req)
	if f.sendFn != nil {
		return f.sendFn(req)
	}
	return &channel.PushResponse{StatusCode: 200, MessageID: "msg-1"}, nil
}

type fakeNotifier struct {
	notifyFn func(ctx context.Context, submission *domain.ContactSubmission) *domain.NotificationRecord

	calls []*domain.ContactSubmission
}

func (f *fakeNotifier) Notify(ctx context.Context, submission *domain.ContactSubmission) *domain.NotificationRecord {
	f.calls = append(f.calls, submission)
	if f.notifyFn != nil {
		return f.notifyFn(ctx, submission)
	}
	return nil
}
