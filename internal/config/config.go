package config

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
)

type Config struct {
	DatabaseDSN string `env:"DATABASE_DSN,required=true"`
	RedisURL    string `env:"REDIS_URL,required=true"`

	SMTPHost     string `env:"SMTP_HOST,required=true"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	PushGatewayURL string `env:"PUSH_GATEWAY_URL,default=https://fcm.googleapis.com/fcm/send"`

	SiteName string `env:"SITE_NAME,default=ecanturk.dev"`
	SiteURL  string `env:"SITE_URL,default=https://ecanturk.dev"`

	ContactRateLimitPerMin int `env:"CONTACT_RATE_LIMIT_PER_MIN,default=5"`
	SendTimeoutSeconds     int `env:"SEND_TIMEOUT_SECONDS,default=10"`

	APIPort  int    `env:"API_PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// SendTimeout bounds every outbound delivery call (SMTP, push gateway).
func (c *Config) SendTimeout() time.Duration {
	if c.SendTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.SendTimeoutSeconds) * time.Second
}
