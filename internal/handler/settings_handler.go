package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecanturk/contact-relay/internal/domain"
	"github.com/gofiber/fiber/v2"
)

type SettingsService interface {
	Get(ctx context.Context) (*domain.NotificationSettings, error)
	Update(ctx context.Context, updated *domain.NotificationSettings) (*domain.NotificationSettings, error)
}

type SettingsHandler struct {
	service SettingsService
}

func NewSettingsHandler(service SettingsService) (*SettingsHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("settings service is required")
	}
	return &SettingsHandler{service: service}, nil
}

func RegisterSettingsRoutes(router fiber.Router, service SettingsService) error {
	h, err := NewSettingsHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Get("/settings", h.GetSettings)
	v1.Put("/settings", h.UpdateSettings)

	return nil
}

type updateSettingsRequest struct {
	AdminEmail   string `json:"adminEmail"`
	FromEmail    string `json:"fromEmail"`
	ReplyToEmail string `json:"replyToEmail"`
	AdminName    string `json:"adminName"`

	AdminEmailEnabled    bool `json:"adminEmailEnabled"`
	ThankYouEmailEnabled bool `json:"thankYouEmailEnabled"`
	PushEnabled          bool `json:"pushEnabled"`

	PushServerKey   string `json:"pushServerKey"`
	PushDeviceToken string `json:"pushDeviceToken"`

	AdminEmailDelaySec    int `json:"adminEmailDelaySec"`
	ThankYouEmailDelaySec int `json:"thankYouEmailDelaySec"`
}

// settingsResponse never echoes the push credentials back; pushConfigured
// tells callers whether they are set.
type settingsResponse struct {
	AdminEmail   string `json:"adminEmail"`
	FromEmail    string `json:"fromEmail"`
	ReplyToEmail string `json:"replyToEmail"`
	AdminName    string `json:"adminName"`

	AdminEmailEnabled    bool `json:"adminEmailEnabled"`
	ThankYouEmailEnabled bool `json:"thankYouEmailEnabled"`
	PushEnabled          bool `json:"pushEnabled"`
	PushConfigured       bool `json:"pushConfigured"`

	AdminEmailDelaySec    int `json:"adminEmailDelaySec"`
	ThankYouEmailDelaySec int `json:"thankYouEmailDelaySec"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.service.Get(c.UserContext())
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toSettingsResponse(settings))
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updated := domain.NotificationSettings{
		AdminEmail:            strings.TrimSpace(req.AdminEmail),
		FromEmail:             strings.TrimSpace(req.FromEmail),
		ReplyToEmail:          strings.TrimSpace(req.ReplyToEmail),
		AdminName:             strings.TrimSpace(req.AdminName),
		AdminEmailEnabled:     req.AdminEmailEnabled,
		ThankYouEmailEnabled:  req.ThankYouEmailEnabled,
		PushEnabled:           req.PushEnabled,
		PushServerKey:         strings.TrimSpace(req.PushServerKey),
		PushDeviceToken:       strings.TrimSpace(req.PushDeviceToken),
		AdminEmailDelaySec:    req.AdminEmailDelaySec,
		ThankYouEmailDelaySec: req.ThankYouEmailDelaySec,
	}

	stored, err := h.service.Update(c.UserContext(), &updated)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toSettingsResponse(stored))
}

func toSettingsResponse(s *domain.NotificationSettings) settingsResponse {
	if s == nil {
		return settingsResponse{}
	}

	return settingsResponse{
		AdminEmail:            s.AdminEmail,
		FromEmail:             s.FromEmail,
		ReplyToEmail:          s.ReplyToEmail,
		AdminName:             s.AdminName,
		AdminEmailEnabled:     s.AdminEmailEnabled,
		ThankYouEmailEnabled:  s.ThankYouEmailEnabled,
		PushEnabled:           s.PushEnabled,
		PushConfigured:        s.PushConfigured(),
		AdminEmailDelaySec:    s.AdminEmailDelaySec,
		ThankYouEmailDelaySec: s.ThankYouEmailDelaySec,
		UpdatedAt:             s.UpdatedAt,
	}
}
