package domain

import (
	"fmt"
	"strings"
	"time"
)

// TemplateType identifies which notification email a template renders.
type TemplateType string

const (
	TemplateAdminAlert TemplateType = "ADMIN_ALERT"
	TemplateThankYou   TemplateType = "THANK_YOU"
)

func (t TemplateType) String() string { return string(t) }

func (t TemplateType) IsValid() bool {
	switch t {
	case TemplateAdminAlert, TemplateThankYou:
		return true
	}
	return false
}

func ParseTemplateTypeFromString(s string) (TemplateType, error) {
	t := TemplateType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: invalid template type %q", ErrValidation, s)
	}
	return t, nil
}

// EmailTemplate is an operator-provided override for a notification email.
// Bodies use {{ variable }} placeholders. At most one template per type is
// active at a time; activating one deactivates its siblings.
type EmailTemplate struct {
	ID        string       `gorm:"type:uuid;primaryKey"`
	Name      string       `gorm:"type:varchar(255);not null"`
	Type      TemplateType `gorm:"type:varchar(20);not null"`
	Subject   string       `gorm:"type:varchar(255);not null"`
	HTMLBody  string       `gorm:"type:text;not null"`
	TextBody  string       `gorm:"type:text;not null"`
	IsActive  bool         `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *EmailTemplate) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: template name is required", ErrValidation)
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: invalid template type %q", ErrValidation, t.Type)
	}
	if strings.TrimSpace(t.Subject) == "" {
		return fmt.Errorf("%w: template subject is required", ErrValidation)
	}
	if strings.TrimSpace(t.HTMLBody) == "" && strings.TrimSpace(t.TextBody) == "" {
		return fmt.Errorf("%w: template requires an html or text body", ErrValidation)
	}
	return nil
}
