package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/homelist/marketplace/internal/handler/dto"
	"github.com/homelist/marketplace/internal/model"
	"github.com/homelist/marketplace/internal/service"
)

func TestHandler_Hello(t *testing.T) {
	h := New("user-service")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.Hello(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response infoResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !response.Result || response.Service != "user-service" || response.Version != Version {
		t.Errorf("unexpected response: %+v", response)
	}
}

func TestHandler_Ping(t *testing.T) {
	h := New("listing-service")

	rec := httptest.NewRecorder()
	h.Ping(rec, httptest.NewRequest(http.MethodGet, "/listings/ping", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "pong!" {
		t.Errorf("body = %q, want pong!", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	h := New("gateway")

	tests := []struct {
		name       string
		serve      http.HandlerFunc
		wantStatus int
		wantError  string
	}{
		{"not_found", h.NotFound, http.StatusNotFound, "resource not found"},
		{"method_not_allowed", h.MethodNotAllowed, http.StatusMethodNotAllowed, "method not allowed"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.serve(rec, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			var response dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Result || len(response.Errors) != 1 || response.Errors[0] != tt.wantError {
				t.Errorf("unexpected envelope: %+v", response)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  model.Page
	}{
		{"", model.Page{Num: 1, Size: 10}},
		{"page_num=3&page_size=5", model.Page{Num: 3, Size: 5}},
		{"page_num=abc&page_size=xyz", model.Page{Num: 1, Size: 10}},
		{"page_num=0&page_size=-2", model.Page{Num: 0, Size: -2}},
		{"page_size=1", model.Page{Num: 1, Size: 1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/users?"+tt.query, nil)
			if got := parsePage(r); got != tt.want {
				t.Errorf("parsePage(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestHandleServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"validation", &service.ValidationError{Message: "name is required"}, http.StatusBadRequest, "name is required"},
		{"not_unique", service.ErrNameNotUnique, http.StatusBadRequest, "name must be unique"},
		{"user_not_found", service.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"listing_not_found", service.ErrListingNotFound, http.StatusNotFound, "listing not found"},
		{"unavailable", &service.UnavailableError{Service: "listing"}, http.StatusServiceUnavailable, "listing service unavailable"},
		{"internal", errors.New("pq: connection reset"), http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), logger, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var response dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Result || len(response.Errors) != 1 || response.Errors[0] != tt.wantError {
				t.Errorf("unexpected envelope: %+v", response)
			}
		})
	}
}
