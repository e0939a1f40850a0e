// Package channel holds the outbound delivery ports and their adapters:
// SMTP for the two email channels and the push gateway for urgent contacts.
package channel

import "context"

// EmailMessage is a fully rendered email ready for transport.
type EmailMessage struct {
	From     string
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// EmailSender delivers rendered emails.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// PushRequest is a push delivery addressed to a single device.
type PushRequest struct {
	ServerKey   string
	DeviceToken string
	Title       string
	Body        string
	Data        map[string]string
}

// PushResponse stores gateway call metadata for audit and persistence.
type PushResponse struct {
	StatusCode int
	MessageID  string
}

// PushSender delivers push notifications through the gateway.
type PushSender interface {
	Send(ctx context.Context, req PushRequest) (*PushResponse, error)
}
