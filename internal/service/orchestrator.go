package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecanturk/contact-relay/internal/channel"
	"github.com/ecanturk/contact-relay/internal/domain"
	"github.com/ecanturk/contact-relay/internal/observability"
	"github.com/ecanturk/contact-relay/internal/render"
	"github.com/ecanturk/contact-relay/internal/repository"
	"go.uber.org/zap"
)

const (
	defaultSendTimeout = 10 * time.Second
	pushTitle          = "Priority Message Received"
	pushSnippetRunes   = 100
	submittedAtLayout  = "Jan 2, 2006 15:04 MST"
)

// Channel labels used in logs and metrics.
const (
	channelAdminEmail    = "admin_email"
	channelThankYouEmail = "thankyou_email"
	channelPush          = "push"
)

// Orchestrator drives every delivery channel for one contact submission to
// completion: admin email first, thank-you email second, push last when the
// submission is urgent. Channel failures are captured on the notification
// record and never escape to the caller; accepting a submission must not
// depend on notification health.
type Orchestrator struct {
	records     repository.NotificationRepository
	submissions repository.SubmissionRepository
	settings    repository.SettingsRepository
	templates   repository.TemplateRepository
	email       channel.EmailSender
	push        channel.PushSender
	renderer    *render.Renderer
	logger      *zap.Logger
	metrics     *observability.Metrics
	siteName    string
	siteURL     string
	sendTimeout time.Duration
	now         func() time.Time
}

func NewOrchestrator(
	records repository.NotificationRepository,
	submissions repository.SubmissionRepository,
	settings repository.SettingsRepository,
	templates repository.TemplateRepository,
	email channel.EmailSender,
	push channel.PushSender,
	renderer *render.Renderer,
	siteName string,
	siteURL string,
	sendTimeout time.Duration,
	logger *zap.Logger,
) (*Orchestrator, error) {
	if records == nil || submissions == nil || settings == nil || templates == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if email == nil {
		return nil, fmt.Errorf("email sender is required")
	}
	if push == nil {
		return nil, fmt.Errorf("push sender is required")
	}
	if renderer == nil {
		renderer = render.NewRenderer()
	}
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{
		records:     records,
		submissions: submissions,
		settings:    settings,
		templates:   templates,
		email:       email,
		push:        push,
		renderer:    renderer,
		logger:      logger,
		siteName:    siteName,
		siteURL:     siteURL,
		sendTimeout: sendTimeout,
		now:         time.Now,
	}, nil
}

func (o *Orchestrator) SetMetrics(metrics *observability.Metrics) {
	if o == nil {
		return
	}
	o.metrics = metrics
}

// Notify runs the channel sequence for a freshly accepted submission. It is
// invoked exactly once per submission, synchronously, by the caller that
// persisted it. It always returns the record in its final state (nil only
// when the record cannot be loaded at all) and never returns an error.
func (o *Orchestrator) Notify(ctx context.Context, submission *domain.ContactSubmission) *domain.NotificationRecord {
	if ctx == nil {
		ctx = context.Background()
	}
	if submission == nil {
		o.logger.Error("notify called without a submission")
		return nil
	}

	log := observability.WithContextLogger(o.logger, ctx).With(
		zap.String("submissionId", submission.ID),
	)

	record, err := o.records.GetBySubmissionID(ctx, submission.ID)
	if err != nil {
		log.Error("failed to load notification record", zap.Error(err))
		return nil
	}

	settings, err := o.settings.Get(ctx)
	if err != nil {
		log.Error("failed to load notification settings", zap.Error(err))
		o.failBestEffort(ctx, record, fmt.Sprintf("settings unavailable: %v", err), log)
		return record
	}

	o.runAdminChannel(ctx, submission, settings, record, log)
	o.runThankYouChannel(ctx, submission, settings, record, log)
	o.runPushChannel(ctx, submission, settings, record, log)

	if err := o.records.Update(ctx, record); err != nil {
		log.Error("failed to persist notification record", zap.Error(err))
		o.failBestEffort(ctx, record, fmt.Sprintf("persist failed: %v", err), log)
	}

	return record
}

func (o *Orchestrator) runAdminChannel(
	ctx context.Context,
	submission *domain.ContactSubmission,
	settings *domain.NotificationSettings,
	record *domain.NotificationRecord,
	log *zap.Logger,
) {
	if !settings.AdminEmailEnabled {
		log.Info("admin email channel disabled, skipping")
		return
	}

	rendered := o.renderFor(ctx, domain.TemplateAdminAlert, submission, settings, log)
	msg := channel.EmailMessage{
		From:     settings.FromEmail,
		To:       []string{settings.AdminEmail},
		ReplyTo:  submission.Email,
		Subject:  rendered.Subject,
		HTMLBody: rendered.HTMLBody,
		TextBody: rendered.TextBody,
	}

	sendErr := o.sendEmail(ctx, channelAdminEmail, msg)
	record.RecordAdminResult(sendErr, o.now())
	if sendErr != nil {
		log.Warn("admin email delivery failed", zap.Error(sendErr))
	}
}

func (o *Orchestrator) runThankYouChannel(
	ctx context.Context,
	submission *domain.ContactSubmission,
	settings *domain.NotificationSettings,
	record *domain.NotificationRecord,
	log *zap.Logger,
) {
	if !settings.ThankYouEmailEnabled {
		log.Info("thank-you email channel disabled, skipping")
		return
	}

	rendered := o.renderFor(ctx, domain.TemplateThankYou, submission, settings, log)
	msg := channel.EmailMessage{
		From:     settings.FromEmail,
		To:       []string{submission.Email},
		ReplyTo:  settings.ReplyToEmail,
		Subject:  rendered.Subject,
		HTMLBody: rendered.HTMLBody,
		TextBody: rendered.TextBody,
	}

	sendErr := o.sendEmail(ctx, channelThankYouEmail, msg)
	completed := record.RecordThankYouResult(sendErr, o.now())
	if sendErr != nil {
		log.Warn("thank-you email delivery failed", zap.Error(sendErr))
	}

	if completed {
		if err := o.submissions.MarkRead(ctx, submission.ID); err != nil {
			log.Error("failed to mark submission as read", zap.Error(err))
		} else {
			submission.IsRead = true
		}
	}
}

func (o *Orchestrator) runPushChannel(
	ctx context.Context,
	submission *domain.ContactSubmission,
	settings *domain.NotificationSettings,
	record *domain.NotificationRecord,
	log *zap.Logger,
) {
	// Push only fires for urgent submissions with a fully configured
	// gateway; everything else is a silent skip, not a failure.
	if !submission.IsUrgent || !settings.PushEnabled || !settings.PushConfigured() {
		return
	}

	req := channel.PushRequest{
		ServerKey:   settings.PushServerKey,
		DeviceToken: settings.PushDeviceToken,
		Title:       pushTitle,
		Body:        fmt.Sprintf("%s: %s", submission.Name, submission.Snippet(pushSnippetRunes)),
		Data: map[string]string{
			"contact_id":   submission.ID,
			"sender_name":  submission.Name,
			"sender_email": submission.Email,
			"is_urgent":    "true",
			"type":         "priority_contact",
		},
	}

	sendCtx, cancel := context.WithTimeout(ctx, o.sendTimeout)
	defer cancel()

	sendStart := o.now()
	_, sendErr := o.push.Send(sendCtx, req)
	o.observeSend(channelPush, o.now().Sub(sendStart), sendErr)

	record.RecordPushResult(sendErr, o.now())
	if sendErr != nil {
		log.Warn("push delivery failed", zap.Error(sendErr))
	}
}

func (o *Orchestrator) sendEmail(ctx context.Context, channelName string, msg channel.EmailMessage) error {
	sendCtx, cancel := context.WithTimeout(ctx, o.sendTimeout)
	defer cancel()

	sendStart := o.now()
	err := o.email.Send(sendCtx, msg)
	o.observeSend(channelName, o.now().Sub(sendStart), err)
	return err
}

// renderFor resolves the active stored template for the channel, falling
// back to the built-in one, and renders it. Rendering itself never fails.
func (o *Orchestrator) renderFor(
	ctx context.Context,
	templateType domain.TemplateType,
	submission *domain.ContactSubmission,
	settings *domain.NotificationSettings,
	log *zap.Logger,
) render.RenderedEmail {
	tmpl, err := o.templates.GetActiveByType(ctx, templateType)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn("template lookup failed, using built-in template",
				zap.String("templateType", templateType.String()),
				zap.Error(err),
			)
		}
		tmpl = defaultTemplateFor(templateType)
	}

	return o.renderer.RenderEmail(tmpl, o.templateContext(templateType, submission, settings))
}

func (o *Orchestrator) templateContext(
	templateType domain.TemplateType,
	submission *domain.ContactSubmission,
	settings *domain.NotificationSettings,
) map[string]string {
	subject := strings.TrimSpace(submission.Subject)
	if subject == "" {
		subject = "No subject"
	}

	data := map[string]string{
		"name":         submission.Name,
		"email":        submission.Email,
		"subject":      subject,
		"message":      submission.Message,
		"submitted_at": submission.SubmittedAt.UTC().Format(submittedAtLayout),
		"site_name":    o.siteName,
		"site_url":     o.siteURL,
	}

	if templateType == domain.TemplateThankYou {
		data["admin_name"] = settings.AdminName
		data["reply_to"] = settings.ReplyToEmail
	}

	return data
}

func (o *Orchestrator) observeSend(channelName string, duration time.Duration, sendErr error) {
	if o.metrics == nil {
		return
	}
	o.metrics.ObserveSendDuration(channelName, duration)
	if sendErr != nil {
		o.metrics.IncChannelFailed(channelName)
		return
	}
	o.metrics.IncChannelSent(channelName)
}

// failBestEffort marks the record FAILED both in memory and in storage.
// A storage failure here is logged and swallowed.
func (o *Orchestrator) failBestEffort(
	ctx context.Context,
	record *domain.NotificationRecord,
	reason string,
	log *zap.Logger,
) {
	record.MarkFailed(reason, o.now())
	if err := o.records.MarkFailed(ctx, record.ID, reason); err != nil {
		log.Error("failed to mark notification record as failed", zap.Error(err))
	}
}
