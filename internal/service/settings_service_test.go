package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ecanturk/contact-relay/internal/domain"
	"go.uber.org/zap"
)

func TestSettingsUpdateValidates(t *testing.T) {
	t.Parallel()

	repo := &fakeSettingsRepo{}
	repoCalled := false
	repo.updateFn = func(_ context.Context, s *domain.NotificationSettings) (*domain.NotificationSettings, error) {
		repoCalled = true
		return s, nil
	}

	svc, err := NewSettingsService(repo, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSettingsService: %v", err)
	}

	bad := domain.DefaultSettings()
	bad.AdminEmail = "not-an-address"
	if _, err := svc.Update(context.Background(), &bad); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if repoCalled {
		t.Fatal("invalid settings must not reach storage")
	}
}

func TestSettingsUpdateOverwritesSingleton(t *testing.T) {
	t.Parallel()

	repo := &fakeSettingsRepo{}
	var received *domain.NotificationSettings
	repo.updateFn = func(_ context.Context, s *domain.NotificationSettings) (*domain.NotificationSettings, error) {
		received = s
		s.ID = domain.SettingsID
		return s, nil
	}

	svc, err := NewSettingsService(repo, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSettingsService: %v", err)
	}

	incoming := domain.DefaultSettings()
	incoming.ID = 42
	incoming.PushEnabled = true
	incoming.PushServerKey = "server-key"
	incoming.PushDeviceToken = "device-token"

	stored, err := svc.Update(context.Background(), &incoming)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if received == nil {
		t.Fatal("repository was not called")
	}
	if stored.ID != domain.SettingsID {
		t.Fatalf("stored id = %d, want the singleton row", stored.ID)
	}
	if !stored.PushEnabled || !stored.PushConfigured() {
		t.Fatal("push configuration should survive the round trip")
	}
}

func TestSettingsGetPassesThrough(t *testing.T) {
	t.Parallel()

	repo := &fakeSettingsRepo{}
	svc, err := NewSettingsService(repo, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSettingsService: %v", err)
	}

	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if settings.ID != domain.SettingsID {
		t.Fatalf("id = %d, want %d", settings.ID, domain.SettingsID)
	}
	if !settings.AdminEmailEnabled || !settings.ThankYouEmailEnabled || settings.PushEnabled {
		t.Fatal("defaults should enable email channels and disable push")
	}
}
