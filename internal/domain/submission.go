package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Field limits for contact submissions (in characters).
const (
	MaxNameLen    = 255
	MaxEmailLen   = 255
	MaxSubjectLen = 255
	MaxMessageLen = 10000
)

// ContactSubmission is a message submitted through the public contact form.
// It is created once and never mutated afterwards, except for the IsRead
// flag which flips to true when every notification channel completed.
type ContactSubmission struct {
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

func (s *ContactSubmission) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(s.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if strings.TrimSpace(s.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrValidation)
	}

	if _, err := mail.ParseAddress(s.Email); err != nil {
		return fmt.Errorf("%w: invalid email address %q", ErrValidation, s.Email)
	}

	if nameLen := len([]rune(s.Name)); nameLen > MaxNameLen {
		return fmt.Errorf("%w: name exceeds %d characters (got %d)", ErrValidation, MaxNameLen, nameLen)
	}
	if emailLen := len([]rune(s.Email)); emailLen > MaxEmailLen {
		return fmt.Errorf("%w: email exceeds %d characters (got %d)", ErrValidation, MaxEmailLen, emailLen)
	}
	if subjectLen := len([]rune(s.Subject)); subjectLen > MaxSubjectLen {
		return fmt.Errorf("%w: subject exceeds %d characters (got %d)", ErrValidation, MaxSubjectLen, subjectLen)
	}
	if messageLen := len([]rune(s.Message)); messageLen > MaxMessageLen {
		return fmt.Errorf("%w: message exceeds %d characters (got %d)", ErrValidation, MaxMessageLen, messageLen)
	}

	return nil
}

// Snippet returns the first limit runes of the message for push previews.
func (s *ContactSubmission) Snippet(limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s.Message)
	if len(runes) <= limit {
		return s.Message
	}
	return string(runes[:limit]) + "..."
}
