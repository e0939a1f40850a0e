package channel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

const defaultSMTPTimeout = 10 * time.Second

// SMTPSender delivers email through a single SMTP relay.
type SMTPSender struct {
	client *mail.Client
}

func NewSMTPSender(host string, port int, username, password string, timeout time.Duration) (*SMTPSender, error) {
	trimmedHost := strings.TrimSpace(host)
	if trimmedHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if timeout <= 0 {
		timeout = defaultSMTPTimeout
	}

	opts := []mail.Option{
		mail.WithTimeout(timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if port > 0 {
		opts = append(opts, mail.WithPort(port))
	}
	if strings.TrimSpace(username) != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(trimmedHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPSender{client: client}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("smtp sender is not initialized")
	}
	if err := validateEmailMessage(msg); err != nil {
		return err
	}

	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return &SendError{Message: fmt.Sprintf("invalid from address %q", msg.From), Cause: err}
	}
	if err := m.To(msg.To...); err != nil {
		return &SendError{Message: "invalid recipient address", Cause: err}
	}
	if strings.TrimSpace(msg.ReplyTo) != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return &SendError{Message: fmt.Sprintf("invalid reply-to address %q", msg.ReplyTo), Cause: err}
		}
	}

	m.Subject(msg.Subject)

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	default:
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return &SendError{Message: "smtp delivery failed", Cause: err}
	}

	return nil
}

func validateEmailMessage(msg EmailMessage) error {
	if strings.TrimSpace(msg.From) == "" {
		return fmt.Errorf("from address is required")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("subject is required")
	}
	if msg.TextBody == "" && msg.HTMLBody == "" {
		return fmt.Errorf("email body is required")
	}
	return nil
}
