package observability

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsDeliveryCollectors(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()

	metrics.IncSubmissionReceived(true)
	metrics.IncChannelSent("Admin_Email")
	metrics.IncChannelFailed("push")
	metrics.ObserveSendDuration("admin_email", 120*time.Millisecond)
	metrics.IncRateLimited()

	if got := testutil.ToFloat64(metrics.submissionsReceivedTotal.WithLabelValues("true")); got != 1 {
		t.Fatalf("submissions_received_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.channelSentTotal.WithLabelValues("admin_email")); got != 1 {
		t.Fatalf("channel_sent_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.channelFailedTotal.WithLabelValues("push")); got != 1 {
		t.Fatalf("channel_failed_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.rateLimitedTotal); got != 1 {
		t.Fatalf("contact_rate_limited_total = %v, want 1", got)
	}
}

func TestMetricsHTTPMiddlewareRecordsRequest(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()
	app := fiber.New()
	app.Use(metrics.HTTPMiddleware())
	app.Get("/livez", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/livez", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if got := testutil.ToFloat64(metrics.httpRequestsTotal.WithLabelValues("GET", "/livez", "200")); got != 1 {
		t.Fatalf("http_requests_total = %v, want 1", got)
	}
}

func TestMetricsHTTPMiddlewareRecordsErrorStatus(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()
	app := fiber.New()
	app.Use(metrics.HTTPMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	req := httptest.NewRequest("GET", "/boom", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	if got := testutil.ToFloat64(metrics.httpRequestsTotal.WithLabelValues("GET", "/boom", "500")); got != 1 {
		t.Fatalf("http_requests_total = %v, want 1", got)
	}
}
