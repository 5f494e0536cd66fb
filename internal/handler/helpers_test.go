package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/homelist/marketplace/internal/metrics"
	"github.com/homelist/marketplace/internal/service"
	"github.com/homelist/marketplace/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUserRouter(t *testing.T, store *testutil.MemoryUsers) http.Handler {
	t.Helper()
	logger := discardLogger()
	svc := service.NewUserService(store, metrics.NewNoop())
	return NewUserServiceRouter(RouterConfig{
		Service:     "user-service",
		Logger:      logger,
		MaxBodySize: 1 << 20,
	}, NewUserHandler(svc, logger))
}

func newListingRouter(t *testing.T, store *testutil.MemoryListings) http.Handler {
	t.Helper()
	logger := discardLogger()
	svc := service.NewListingService(store, metrics.NewNoop())
	return NewListingServiceRouter(RouterConfig{
		Service:     "listing-service",
		Logger:      logger,
		MaxBodySize: 1 << 20,
	}, NewListingHandler(svc, logger))
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}
