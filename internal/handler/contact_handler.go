package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ecanturk/contact-relay/internal/domain"
	"github.com/ecanturk/contact-relay/internal/observability"
	"github.com/ecanturk/contact-relay/internal/ratelimit"
	"github.com/ecanturk/contact-relay/internal/repository"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage     = 1
	defaultPageSize = 50
	maxPageSize     = 100
)

type ContactService interface {
	Accept(ctx context.Context, submission *domain.ContactSubmission) (*domain.ContactSubmission, *domain.NotificationRecord, error)
	GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error)
	GetNotification(ctx context.Context, submissionID string) (*domain.NotificationRecord, error)
	List(ctx context.Context, params repository.ListParams) ([]domain.ContactSubmission, int64, error)
}

type ContactHandler struct {
	service ContactService
	limiter ratelimit.RateLimiter
	metrics *observability.Metrics
}

func NewContactHandler(service ContactService, limiter ratelimit.RateLimiter, metrics *observability.Metrics) (*ContactHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("contact service is required")
	}
	return &ContactHandler{service: service, limiter: limiter, metrics: metrics}, nil
}

func RegisterContactRoutes(router fiber.Router, service ContactService, limiter ratelimit.RateLimiter, metrics *observability.Metrics) error {
	h, err := NewContactHandler(service, limiter, metrics)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/contact", h.CreateSubmission)
	v1.Get("/contact", h.ListSubmissions)
	v1.Get("/contact/:id", h.GetSubmission)
	v1.Get("/contact/:id/notification", h.GetNotification)

	return nil
}

type createContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	IsUrgent bool   `json:"isUrgent"`
}

type contactResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Subject      string                `json:"subject,omitempty"`
	Message      string                `json:"message"`
	IsUrgent     bool                  `json:"isUrgent"`
	IsRead       bool                  `json:"isRead"`
	SubmittedAt  time.Time             `json:"submittedAt"`
	Notification *notificationResponse `json:"notification,omitempty"`
}

type notificationResponse struct {
	ID            string          `json:"id"`
	SubmissionID  string          `json:"submissionId"`
	Status        string          `json:"status"`
	AdminEmail    channelResponse `json:"adminEmail"`
	ThankYouEmail channelResponse `json:"thankYouEmail"`
	Push          pushResponse    `json:"push"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type channelResponse struct {
	Attempted bool       `json:"attempted"`
	SentAt    *time.Time `json:"sentAt,omitempty"`
	Error     *string    `json:"error,omitempty"`
}

type pushResponse struct {
	Attempted bool       `json:"attempted"`
	Sent      bool       `json:"sent"`
	SentAt    *time.Time `json:"sentAt,omitempty"`
	Error     *string    `json:"error,omitempty"`
}

type listContactsResponse struct {
	Data []contactResponse `json:"data"`
	Meta listMeta          `json:"meta"`
}

type listMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

func (h *ContactHandler) CreateSubmission(c *fiber.Ctx) error {
	if h.limiter != nil {
		// Limiter outages fail open: a broken Redis must not take the
		// contact form down with it.
		allowed, err := h.limiter.Allow(c.UserContext(), c.IP())
		if err == nil && !allowed {
			if h.metrics != nil {
				h.metrics.IncRateLimited()
			}
			return fiber.NewError(fiber.StatusTooManyRequests, "too many submissions, try again later")
		}
	}

	var req createContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	submission := domain.ContactSubmission{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Subject:  strings.TrimSpace(req.Subject),
		Message:  strings.TrimSpace(req.Message),
		IsUrgent: req.IsUrgent,
	}

	stored, record, err := h.service.Accept(c.UserContext(), &submission)
	if err != nil {
		return toHTTPError(err)
	}

	resp := toContactResponse(stored)
	if record != nil {
		notification := toNotificationResponse(record)
		resp.Notification = &notification
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ContactHandler) GetSubmission(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	submission, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toContactResponse(submission))
}

func (h *ContactHandler) GetNotification(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	record, err := h.service.GetNotification(c.UserContext(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toNotificationResponse(record))
}

func (h *ContactHandler) ListSubmissions(c *fiber.Ctx) error {
	params, err := parseListParams(c)
	if err != nil {
		return toHTTPError(err)
	}

	submissions, total, err := h.service.List(c.UserContext(), params)
	if err != nil {
		return toHTTPError(err)
	}

	data := make([]contactResponse, 0, len(submissions))
	for _, submission := range submissions {
		s := submission
		data = append(data, toContactResponse(&s))
	}

	return c.Status(fiber.StatusOK).JSON(listContactsResponse{
		Data: data,
		Meta: listMeta{
			Page:     params.Page,
			PageSize: params.PageSize,
			Total:    total,
		},
	})
}

func parseListParams(c *fiber.Ctx) (repository.ListParams, error) {
	params := repository.ListParams{
		Page:     c.QueryInt("page", defaultPage),
		PageSize: c.QueryInt("pageSize", defaultPageSize),
	}

	if params.Page < 1 {
		return repository.ListParams{}, fmt.Errorf("%w: page must be >= 1", domain.ErrValidation)
	}
	if params.PageSize < 1 || params.PageSize > maxPageSize {
		return repository.ListParams{}, fmt.Errorf("%w: pageSize must be between 1 and %d", domain.ErrValidation, maxPageSize)
	}

	isUrgent, err := parseBoolQuery(c.Query("isUrgent"), "isUrgent")
	if err != nil {
		return repository.ListParams{}, err
	}
	isRead, err := parseBoolQuery(c.Query("isRead"), "isRead")
	if err != nil {
		return repository.ListParams{}, err
	}
	params.IsUrgent = isUrgent
	params.IsRead = isRead

	from, err := parseRFC3339Query(c.Query("from"), "from")
	if err != nil {
		return repository.ListParams{}, err
	}
	to, err := parseRFC3339Query(c.Query("to"), "to")
	if err != nil {
		return repository.ListParams{}, err
	}
	params.From = from
	params.To = to

	return params, nil
}

func parseBoolQuery(value string, field string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean", domain.ErrValidation, field)
	}
	return &parsed, nil
}

func parseRFC3339Query(value string, field string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be RFC3339", domain.ErrValidation, field)
	}
	return &t, nil
}

func toContactResponse(s *domain.ContactSubmission) contactResponse {
	if s == nil {
		return contactResponse{}
	}

	return contactResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		Subject:     s.Subject,
		Message:     s.Message,
		IsUrgent:    s.IsUrgent,
		IsRead:      s.IsRead,
		SubmittedAt: s.SubmittedAt,
	}
}

func toNotificationResponse(r *domain.NotificationRecord) notificationResponse {
	if r == nil {
		return notificationResponse{}
	}

	return notificationResponse{
		ID:           r.ID,
		SubmissionID: r.SubmissionID,
		Status:       r.Status.String(),
		AdminEmail: channelResponse{
			Attempted: r.AdminEmail.Attempted,
			SentAt:    r.AdminEmail.SentAt,
			Error:     r.AdminEmail.Error,
		},
		ThankYouEmail: channelResponse{
			Attempted: r.ThankYouEmail.Attempted,
			SentAt:    r.ThankYouEmail.SentAt,
			Error:     r.ThankYouEmail.Error,
		},
		Push: pushResponse{
			Attempted: r.PushAttempted,
			Sent:      r.PushSent,
			SentAt:    r.PushSentAt,
			Error:     r.PushError,
		},
		UpdatedAt: r.UpdatedAt,
	}
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}
