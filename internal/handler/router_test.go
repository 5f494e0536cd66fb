package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/homelist/marketplace/internal/metrics"
	"github.com/homelist/marketplace/internal/service"
	"github.com/homelist/marketplace/internal/testutil"
)

func TestRouter_MetricsAndHealth(t *testing.T) {
	logger := discardLogger()
	recorder := metrics.NewPrometheus("user_service")
	svc := service.NewUserService(testutil.NewMemoryUsers(), recorder)

	router := NewUserServiceRouter(RouterConfig{
		Service:        "user-service",
		Logger:         logger,
		Metrics:        recorder,
		MetricsHandler: recorder.Handler(),
		Health: NewHealthHandler(Dependency{
			Name:    "postgres",
			Checker: failing("connection refused"),
		}),
	}, NewUserHandler(svc, logger))

	if rec := postForm(t, router, "/users", url.Values{"name": {"Bob"}}); rec.Code != http.StatusOK {
		t.Fatalf("create: status %d", rec.Code)
	}
	get(t, router, "/users/1")
	get(t, router, "/users/2")

	if rec := get(t, router, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("healthz: status %d", rec.Code)
	}
	if rec := get(t, router, "/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz: status %d, want 503", rec.Code)
	}

	rec := get(t, router, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, line := range []string{
		`user_service_users_created_total 1`,
		`user_service_http_requests_total{method="GET",route="/users/{id}",status="200"} 1`,
		`user_service_http_requests_total{method="GET",route="/users/{id}",status="404"} 1`,
	} {
		if !strings.Contains(body, line) {
			t.Errorf("metrics missing %q", line)
		}
	}
}

func TestRouter_SecurityHeadersAndRequestID(t *testing.T) {
	router := newUserRouter(t, testutil.NewMemoryUsers())

	rec := get(t, router, "/users")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers not applied")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("request id not set on response")
	}
}
