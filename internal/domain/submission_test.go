package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestContactSubmissionValidate(t *testing.T) {
	t.Parallel()

	base := ContactSubmission{
		Name:    "Ada Lovelace",
		Email:   "ada@x.com",
		Subject: "Collaboration",
		Message: "I have a project idea.",
	}

	tests := []struct {
		name    string
		mutate  func(*ContactSubmission)
		wantErr bool
	}{
		{
			name: "valid submission",
			mutate: func(s *ContactSubmission) {
				// keep base
			},
		},
		{
			name: "empty subject allowed",
			mutate: func(s *ContactSubmission) {
				s.Subject = ""
			},
		},
		{
			name: "missing name",
			mutate: func(s *ContactSubmission) {
				s.Name = "  "
			},
			wantErr: true,
		},
		{
			name: "missing email",
			mutate: func(s *ContactSubmission) {
				s.Email = ""
			},
			wantErr: true,
		},
		{
			name: "malformed email",
			mutate: func(s *ContactSubmission) {
				s.Email = "not-an-address"
			},
			wantErr: true,
		},
		{
			name: "missing message",
			mutate: func(s *ContactSubmission) {
				s.Message = ""
			},
			wantErr: true,
		},
		{
			name: "message over limit",
			mutate: func(s *ContactSubmission) {
				s.Message = strings.Repeat("a", MaxMessageLen+1)
			},
			wantErr: true,
		},
		{
			name: "subject over limit",
			mutate: func(s *ContactSubmission) {
				s.Subject = strings.Repeat("a", MaxSubjectLen+1)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			current := base
			tt.mutate(&current)

			err := current.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("Validate() error = %v, want ErrValidation", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestContactSubmissionSnippet(t *testing.T) {
	t.Parallel()

	s := ContactSubmission{Message: "héllo wörld, this is a long message"}

	if got := s.Snippet(5); got != "héllo..." {
		t.Fatalf("Snippet(5) = %q, want rune-aware prefix", got)
	}
	if got := s.Snippet(1000); got != s.Message {
		t.Fatalf("Snippet(1000) = %q, want full message", got)
	}
	if got := s.Snippet(0); got != "" {
		t.Fatalf("Snippet(0) = %q, want empty", got)
	}
}

func TestParseTemplateTypeFromString(t *testing.T) {
	t.Parallel()

	got, err := ParseTemplateTypeFromString(" thank_you ")
	if err != nil {
		t.Fatalf("ParseTemplateTypeFromString() unexpected error = %v", err)
	}
	if got != TemplateThankYou {
		t.Fatalf("ParseTemplateTypeFromString() = %s, want %s", got, TemplateThankYou)
	}

	_, err = ParseTemplateTypeFromString("newsletter")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ParseTemplateTypeFromString() error = %v, want ErrValidation", err)
	}
}

func TestNotificationSettingsPushConfigured(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	if s.PushEnabled {
		t.Fatal("push should be disabled by default")
	}
	if s.PushConfigured() {
		t.Fatal("push should not be configured without credentials")
	}

	s.PushServerKey = "key-123"
	if s.PushConfigured() {
		t.Fatal("push needs both server key and device token")
	}

	s.PushDeviceToken = "device-abc"
	if !s.PushConfigured() {
		t.Fatal("push should be configured with both credentials")
	}
}
