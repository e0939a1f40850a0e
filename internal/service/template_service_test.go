package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ecanturk/contact-relay/internal/domain"
	"go.uber.org/zap"
)

func TestTemplateCreateAssignsID(t *testing.T) {
	t.Parallel()

	repo := &fakeTemplateRepo{}
	svc, err := NewTemplateService(repo, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTemplateService: %v", err)
	}

	created, err := svc.Create(context.Background(), &domain.EmailTemplate{
		Name:     "  spring-admin  ",
		Type:     domain.TemplateAdminAlert,
		Subject:  "New message from {{ name }}",
		HTMLBody: "<p>{{ message }}</p>",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("template id should be assigned")
	}
	if created.Name != "spring-admin" {
		t.Fatalf("name = %q, want trimmed", created.Name)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saves = %d, want 1", len(repo.saved))
	}
}

func TestTemplateCreateRejectsInvalid(t *testing.T) {
	t.Parallel()

	repo := &fakeTemplateRepo{}
	svc, err := NewTemplateService(repo, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTemplateService: %v", err)
	}

	tests := []struct {
		name string
		tmpl *domain.EmailTemplate
	}{
		{"nil template", nil},
		{"missing body", &domain.EmailTemplate{
			Name:    "empty",
			Type:    domain.TemplateThankYou,
			Subject: "Thanks",
		}},
		{"unknown type", &domain.EmailTemplate{
			Name:     "odd",
			Type:     domain.TemplateType("NEWSLETTER"),
			Subject:  "Hi",
			TextBody: "body",
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := svc.Create(context.Background(), tt.tmpl); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}

	if len(repo.saved) != 0 {
		t.Fatal("invalid templates must not be saved")
	}
}

func TestTemplateActivateRequiresID(t *testing.T) {
	t.Parallel()

	svc, err := NewTemplateService(&fakeTemplateRepo{}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTemplateService: %v", err)
	}

	if _, err := svc.Activate(context.Background(), "  "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}
