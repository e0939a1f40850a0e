package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of a notification record.
type Status string

const (
	StatusPending      Status = "PENDING"
	StatusSentToAdmin  Status = "SENT_TO_ADMIN"
	StatusThankYouSent Status = "THANKYOU_SENT"
	StatusCompleted    Status = "COMPLETED"
	StatusFailed       Status = "FAILED"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSentToAdmin, StatusThankYouSent, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further email channel outcome can change the status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func ParseStatusFromString(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: invalid status %q", ErrValidation, s)
	}
	return st, nil
}

// ChannelDelivery tracks a single channel's outcome on a notification record.
type ChannelDelivery struct {
	Attempted bool       `gorm:"not null;default:false"`
	SentAt    *time.Time `gorm:"type:timestamptz"`
	Error     *string    `gorm:"type:text"`
}

func (d ChannelDelivery) Sent() bool { return d.SentAt != nil }

// NotificationRecord tracks the delivery of every channel for one contact
// submission. Exactly one record exists per submission; status is only
// mutated through the Record* transition methods below.
type NotificationRecord struct {
	ID            string          `gorm:"type:uuid;primaryKey"`
	SubmissionID  string          `gorm:"type:uuid;not null;uniqueIndex"`
	Status        Status          `gorm:"type:varchar(20);not null"`
	AdminEmail    ChannelDelivery `gorm:"embedded;embeddedPrefix:admin_email_"`
	ThankYouEmail ChannelDelivery `gorm:"embedded;embeddedPrefix:thankyou_email_"`
	PushAttempted bool            `gorm:"not null;default:false"`
	PushSent      bool            `gorm:"not null;default:false"`
	PushSentAt    *time.Time      `gorm:"type:timestamptz"`
	PushError     *string         `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *NotificationRecord) Validate() error {
	if strings.TrimSpace(r.SubmissionID) == "" {
		return fmt.Errorf("%w: submission id is required", ErrValidation)
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, r.Status)
	}
	return nil
}

// RecordAdminResult folds the admin email outcome into the record. The admin
// channel is the required-success channel: its failure forces FAILED no
// matter what the thank-you channel does later.
func (r *NotificationRecord) RecordAdminResult(sendErr error, now time.Time) {
	r.AdminEmail.Attempted = true

	if sendErr != nil {
		msg := sendErr.Error()
		r.AdminEmail.Error = &msg
		r.Status = StatusFailed
		return
	}

	sentAt := now.UTC()
	r.AdminEmail.SentAt = &sentAt
	if r.Status == StatusPending {
		r.Status = StatusSentToAdmin
	}
}

// RecordThankYouResult folds the thank-you email outcome into the record and
// reports whether the pair completed. COMPLETED requires both email channels
// to have succeeded; a prior FAILED status is sticky.
func (r *NotificationRecord) RecordThankYouResult(sendErr error, now time.Time) (completed bool) {
	r.ThankYouEmail.Attempted = true

	if sendErr != nil {
		msg := sendErr.Error()
		r.ThankYouEmail.Error = &msg
		if r.Status != StatusFailed {
			r.Status = StatusFailed
		}
		return false
	}

	sentAt := now.UTC()
	r.ThankYouEmail.SentAt = &sentAt

	if r.Status == StatusFailed {
		return false
	}
	if r.AdminEmail.Sent() {
		r.Status = StatusCompleted
		return true
	}
	r.Status = StatusThankYouSent
	return false
}

// RecordPushResult folds the push outcome into the record. Push is
// independent: it never changes Status.
func (r *NotificationRecord) RecordPushResult(sendErr error, now time.Time) {
	r.PushAttempted = true

	if sendErr != nil {
		msg := sendErr.Error()
		r.PushError = &msg
		return
	}

	sentAt := now.UTC()
	r.PushSent = true
	r.PushSentAt = &sentAt
}

// MarkFailed is the best-effort terminal mark for unexpected orchestrator
// failures. It never overwrites an existing channel error.
func (r *NotificationRecord) MarkFailed(reason string, now time.Time) {
	r.Status = StatusFailed
	if r.AdminEmail.Error == nil && r.ThankYouEmail.Error == nil {
		trimmed := strings.TrimSpace(reason)
		if trimmed != "" {
			r.AdminEmail.Error = &trimmed
		}
	}
	r.UpdatedAt = now.UTC()
}
