package repository

import (
	"time"

	"github.com/ecanturk/contact-relay/internal/domain"
)

// SubmissionModel is the persistence model for the contact_submissions table.
type SubmissionModel struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	Name        string `gorm:"type:varchar(255);not null"`
	Email       string `gorm:"type:varchar(255);not null"`
	Subject     string `gorm:"type:varchar(255)"`
	Message     string `gorm:"type:text;not null"`
	IsUrgent    bool   `gorm:"not null;default:false"`
	IsRead      bool   `gorm:"not null;default:false"`
	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (SubmissionModel) TableName() string {
	return "contact_submissions"
}

// NotificationRecordModel is the persistence model for notification_records.
// The submission FK cascades so record and submission live and die together.
type NotificationRecordModel struct {
	ID           string        `gorm:"type:uuid;primaryKey"`
	SubmissionID string        `gorm:"type:uuid;not null;uniqueIndex"`
	Submission   *SubmissionModel `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
	Status       domain.Status `gorm:"type:varchar(20);not null"`

	AdminEmailAttempted bool       `gorm:"not null;default:false"`
	AdminEmailSentAt    *time.Time `gorm:"type:timestamptz"`
	AdminEmailError     *string    `gorm:"type:text"`

	ThankyouEmailAttempted bool       `gorm:"not null;default:false"`
	ThankyouEmailSentAt    *time.Time `gorm:"type:timestamptz"`
	ThankyouEmailError     *string    `gorm:"type:text"`

	PushAttempted bool       `gorm:"not null;default:false"`
	PushSent      bool       `gorm:"not null;default:false"`
	PushSentAt    *time.Time `gorm:"type:timestamptz"`
	PushError     *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NotificationRecordModel) TableName() string {
	return "notification_records"
}

// SettingsModel is the persistence model for the notification_settings
// singleton row.
type SettingsModel struct {
	ID           int64  `gorm:"primaryKey"`
	AdminEmail   string `gorm:"type:varchar(255);not null"`
	FromEmail    string `gorm:"type:varchar(255);not null"`
	ReplyToEmail string `gorm:"type:varchar(255);not null"`
	AdminName    string `gorm:"type:varchar(255);not null"`

	AdminEmailEnabled    bool `gorm:"not null;default:true"`
	ThankYouEmailEnabled bool `gorm:"not null;default:true"`
	PushEnabled          bool `gorm:"not null;default:false"`

	PushServerKey   string `gorm:"type:varchar(512)"`
	PushDeviceToken string `gorm:"type:varchar(512)"`

	AdminEmailDelaySec    int `gorm:"not null;default:0"`
	ThankYouEmailDelaySec int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SettingsModel) TableName() string {
	return "notification_settings"
}

// EmailTemplateModel is the persistence model for email_templates.
type EmailTemplateModel struct {
	ID        string              `gorm:"type:uuid;primaryKey"`
	Name      string              `gorm:"type:varchar(255);not null"`
	Type      domain.TemplateType `gorm:"type:varchar(20);not null"`
	Subject   string              `gorm:"type:varchar(255);not null"`
	HTMLBody  string              `gorm:"type:text;not null"`
	TextBody  string              `gorm:"type:text;not null"`
	IsActive  bool                `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmailTemplateModel) TableName() string {
	return "email_templates"
}

func submissionModelFromDomain(s *domain.ContactSubmission) *SubmissionModel {
	if s == nil {
		return nil
	}

	return &SubmissionModel{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		Subject:     s.Subject,
		Message:     s.Message,
		IsUrgent:    s.IsUrgent,
		IsRead:      s.IsRead,
		SubmittedAt: s.SubmittedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func submissionModelToDomain(m *SubmissionModel) *domain.ContactSubmission {
	if m == nil {
		return nil
	}

	return &domain.ContactSubmission{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Subject:     m.Subject,
		Message:     m.Message,
		IsUrgent:    m.IsUrgent,
		IsRead:      m.IsRead,
		SubmittedAt: m.SubmittedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func recordModelFromDomain(r *domain.NotificationRecord) *NotificationRecordModel {
	if r == nil {
		return nil
	}

	return &NotificationRecordModel{
		ID:                     r.ID,
		SubmissionID:           r.SubmissionID,
		Status:                 r.Status,
		AdminEmailAttempted:    r.AdminEmail.Attempted,
		AdminEmailSentAt:       r.AdminEmail.SentAt,
		AdminEmailError:        r.AdminEmail.Error,
		ThankyouEmailAttempted: r.ThankYouEmail.Attempted,
		ThankyouEmailSentAt:    r.ThankYouEmail.SentAt,
		ThankyouEmailError:     r.ThankYouEmail.Error,
		PushAttempted:          r.PushAttempted,
		PushSent:               r.PushSent,
		PushSentAt:             r.PushSentAt,
		PushError:              r.PushError,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}

func recordModelToDomain(m *NotificationRecordModel) *domain.NotificationRecord {
	if m == nil {
		return nil
	}

	return &domain.NotificationRecord{
		ID:           m.ID,
		SubmissionID: m.SubmissionID,
		Status:       m.Status,
		AdminEmail: domain.ChannelDelivery{
			Attempted: m.AdminEmailAttempted,
			SentAt:    m.AdminEmailSentAt,
			Error:     m.AdminEmailError,
		},
		ThankYouEmail: domain.ChannelDelivery{
			Attempted: m.ThankyouEmailAttempted,
			SentAt:    m.ThankyouEmailSentAt,
			Error:     m.ThankyouEmailError,
		},
		PushAttempted: m.PushAttempted,
		PushSent:      m.PushSent,
		PushSentAt:    m.PushSentAt,
		PushError:     m.PushError,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func settingsModelFromDomain(s *domain.NotificationSettings) *SettingsModel {
	if s == nil {
		return nil
	}

	return &SettingsModel{
		ID:                    s.ID,
		AdminEmail:            s.AdminEmail,
		FromEmail:             s.FromEmail,
		ReplyToEmail:          s.ReplyToEmail,
		AdminName:             s.AdminName,
		AdminEmailEnabled:     s.AdminEmailEnabled,
		ThankYouEmailEnabled:  s.ThankYouEmailEnabled,
		PushEnabled:           s.PushEnabled,
		PushServerKey:         s.PushServerKey,
		PushDeviceToken:       s.PushDeviceToken,
		AdminEmailDelaySec:    s.AdminEmailDelaySec,
		ThankYouEmailDelaySec: s.ThankYouEmailDelaySec,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func settingsModelToDomain(m *SettingsModel) *domain.NotificationSettings {
	if m == nil {
		return nil
	}

	return &domain.NotificationSettings{
		ID:                    m.ID,
		AdminEmail:            m.AdminEmail,
		FromEmail:             m.FromEmail,
		ReplyToEmail:          m.ReplyToEmail,
		AdminName:             m.AdminName,
		AdminEmailEnabled:     m.AdminEmailEnabled,
		ThankYouEmailEnabled:  m.ThankYouEmailEnabled,
		PushEnabled:           m.PushEnabled,
		PushServerKey:         m.PushServerKey,
		PushDeviceToken:       m.PushDeviceToken,
		AdminEmailDelaySec:    m.AdminEmailDelaySec,
		ThankYouEmailDelaySec: m.ThankYouEmailDelaySec,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func templateModelFromDomain(t *domain.EmailTemplate) *EmailTemplateModel {
	if t == nil {
		return nil
	}

	return &EmailTemplateModel{
		ID:        t.ID,
		Name:      t.Name,
		Type:      t.Type,
		Subject:   t.Subject,
		HTMLBody:  t.HTMLBody,
		TextBody:  t.TextBody,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func templateModelToDomain(m *EmailTemplateModel) *domain.EmailTemplate {
	if m == nil {
		return nil
	}

	return &domain.EmailTemplate{
		ID:        m.ID,
		Name:      m.Name,
		Type:      m.Type,
		Subject:   m.Subject,
		HTMLBody:  m.HTMLBody,
		TextBody:  m.TextBody,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
