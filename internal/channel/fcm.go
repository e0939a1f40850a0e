package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultGatewayTimeout = 10 * time.Second

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

type fcmRequest struct {
	To           string            `json:"to"`
	Priority     string            `json:"priority"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data"`
}

type fcmResult struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

type fcmResponse struct {
	Success int         `json:"success"`
	Failure int         `json:"failure"`
	Results []fcmResult `json:"results"`
}

// FCMSender sends priority pushes through the FCM legacy HTTP gateway.
type FCMSender struct {
	client   *resty.Client
	endpoint string
}

func NewFCMSender(endpoint string) (*FCMSender, error) {
	client := resty.New()
	client.SetTimeout(defaultGatewayTimeout)
	client.SetRetryCount(0)

	return NewFCMSenderWithClient(endpoint, client)
}

func NewFCMSenderWithClient(endpoint string, client *resty.Client) (*FCMSender, error) {
	trimmedEndpoint := strings.TrimSpace(endpoint)
	if trimmedEndpoint == "" {
		return nil, fmt.Errorf("push gateway endpoint is required")
	}
	if _, err := url.ParseRequestURI(trimmedEndpoint); err != nil {
		return nil, fmt.Errorf("invalid push gateway endpoint: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultGatewayTimeout)
	}
	client.SetRetryCount(0)

	return &FCMSender{
		client:   client,
		endpoint: trimmedEndpoint,
	}, nil
}

// Send posts the push payload and interprets the gateway response: HTTP 200
// with success >= 1 is delivered, anything else fails with the provider's
// reason kept verbatim.
func (s *FCMSender) Send(ctx context.Context, req PushRequest) (*PushResponse, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("push sender is not initialized")
	}
	if strings.TrimSpace(req.ServerKey) == "" {
		return nil, fmt.Errorf("push server key is required")
	}
	if strings.TrimSpace(req.DeviceToken) == "" {
		return nil, fmt.Errorf("push device token is required")
	}

	body := fcmRequest{
		To:       req.DeviceToken,
		Priority: "high",
		Notification: fcmNotification{
			Title: req.Title,
			Body:  req.Body,
			Sound: "default",
		},
		Data: req.Data,
	}

	response, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "key="+req.ServerKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(s.endpoint)
	if err != nil {
		return nil, &SendError{Message: "push gateway request failed", Cause: err}
	}
	if response == nil {
		return nil, &SendError{Message: "push gateway returned empty response"}
	}

	statusCode := response.StatusCode()
	if statusCode != http.StatusOK {
		return nil, &SendError{
			StatusCode: statusCode,
			Message:    gatewayErrorMessage(statusCode, strings.TrimSpace(response.String())),
		}
	}

	var parsed fcmResponse
	if err := json.Unmarshal(response.Body(), &parsed); err != nil {
		return nil, &SendError{
			StatusCode: statusCode,
			Message:    "push gateway returned unparseable body",
			Cause:      err,
		}
	}

	if parsed.Success < 1 {
		return nil, &SendError{
			StatusCode: statusCode,
			Message:    gatewayFailureReason(parsed),
		}
	}

	resp := &PushResponse{StatusCode: statusCode}
	if len(parsed.Results) > 0 {
		resp.MessageID = parsed.Results[0].MessageID
	}
	return resp, nil
}

func gatewayErrorMessage(statusCode int, body string) string {
	base := fmt.Sprintf("push gateway returned status %d", statusCode)
	if body == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, body)
}

func gatewayFailureReason(parsed fcmResponse) string {
	for _, result := range parsed.Results {
		if strings.TrimSpace(result.Error) != "" {
			return result.Error
		}
	}
	return fmt.Sprintf("push gateway reported %d failed deliveries", parsed.Failure)
}
