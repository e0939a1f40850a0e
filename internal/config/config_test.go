package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "host=localhost user=test password=test dbname=test port=5432 sslmode=disable")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SMTP_HOST", "smtp.example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", cfg.APIPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want 587", cfg.SMTPPort)
	}
	if cfg.ContactRateLimitPerMin != 5 {
		t.Errorf("ContactRateLimitPerMin = %d, want 5", cfg.ContactRateLimitPerMin)
	}
	if cfg.PushGatewayURL != "https://fcm.googleapis.com/fcm/send" {
		t.Errorf("PushGatewayURL = %s, want fcm legacy endpoint", cfg.PushGatewayURL)
	}
	if cfg.SendTimeout() != 10*time.Second {
		t.Errorf("SendTimeout = %s, want 10s", cfg.SendTimeout())
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CONTACT_RATE_LIMIT_PER_MIN", "20")
	t.Setenv("SEND_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", cfg.APIPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.ContactRateLimitPerMin != 20 {
		t.Errorf("ContactRateLimitPerMin = %d, want 20", cfg.ContactRateLimitPerMin)
	}
	if cfg.SendTimeout() != 3*time.Second {
		t.Errorf("SendTimeout = %s, want 3s", cfg.SendTimeout())
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_DSN", "host=localhost")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required env vars, got nil")
	}
}

func TestSendTimeout_NonPositiveFallsBack(t *testing.T) {
	cfg := Config{SendTimeoutSeconds: 0}
	if cfg.SendTimeout() != 10*time.Second {
		t.Fatalf("SendTimeout = %s, want 10s fallback", cfg.SendTimeout())
	}
}
