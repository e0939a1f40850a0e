package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// SettingsID is the fixed primary key of the notification settings row.
// The settings table is a singleton: every write targets this row.
const SettingsID int64 = 1

// Default addresses used when the settings row is created lazily.
const (
	DefaultAdminEmail   = "admin@ecanturk.dev"
	DefaultFromEmail    = "noreply@ecanturk.dev"
	DefaultReplyToEmail = "contact@ecanturk.dev"
	DefaultAdminName    = "Emre Canturk"
)

// NotificationSettings is the process-wide notification configuration.
// Exactly one row exists; Get creates it with defaults on first access and
// Update overwrites it in place.
type NotificationSettings struct {
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

	// Delay values are stored for operators but not consulted at send time.
	AdminEmailDelaySec    int `gorm:"not null;default:0"`
	ThankYouEmailDelaySec int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultSettings returns the singleton row content used on first access:
// all email channels enabled, push disabled until credentials are supplied.
func DefaultSettings() NotificationSettings {
	return NotificationSettings{
		ID:                   SettingsID,
		AdminEmail:           DefaultAdminEmail,
		FromEmail:            DefaultFromEmail,
		ReplyToEmail:         DefaultReplyToEmail,
		AdminName:            DefaultAdminName,
		AdminEmailEnabled:    true,
		ThankYouEmailEnabled: true,
		PushEnabled:          false,
	}
}

func (s *NotificationSettings) Validate() error {
	for _, addr := range []struct {
		field string
		value string
	}{
		{"admin email", s.AdminEmail},
		{"from email", s.FromEmail},
		{"reply-to email", s.ReplyToEmail},
	} {
		if strings.TrimSpace(addr.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, addr.field)
		}
		if _, err := mail.ParseAddress(addr.value); err != nil {
			return fmt.Errorf("%w: invalid %s %q", ErrValidation, addr.field, addr.value)
		}
	}
	return nil
}

// PushConfigured reports whether the push gateway credentials are present.
// Push is silently skipped when they are not, even if the flag is on.
func (s *NotificationSettings) PushConfigured() bool {
	return strings.TrimSpace(s.PushServerKey) != "" && strings.TrimSpace(s.PushDeviceToken) != ""
}
