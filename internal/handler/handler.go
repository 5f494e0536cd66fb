// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/homelist/marketplace/internal/handler/dto"
	"github.com/homelist/marketplace/internal/middleware"
	"github.com/homelist/marketplace/internal/model"
	"github.com/homelist/marketplace/internal/service"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Handler serves the endpoints every service exposes.
type Handler struct {
	service string
}

// New creates a new Handler for the named service.
func New(service string) *Handler {
	return &Handler{service: service}
}

type infoResponse struct {
	Result  bool   `json:"result"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Hello reports the service name and version.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse{Result: true, Service: h.service, Version: Version})
}

// Ping is the plain-text liveness route.
// GET /users/ping, GET /listings/ping
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong!"))
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeRaw relays an already encoded JSON body.
func writeRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.NewErrorResponse(message))
}

// handleServiceError maps service errors onto the failure envelope.
// Unknown errors are logged and reported without their detail.
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		verr *service.ValidationError
		uerr *service.UnavailableError
	)
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNameNotUnique):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrListingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &uerr):
		writeError(w, http.StatusServiceUnavailable, uerr.Error())
	default:
		logger.ErrorContext(r.Context(), "internal_error",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parsePage reads page_num and page_size from the query string.
// Missing or non-integer values fall back to the defaults.
func parsePage(r *http.Request) model.Page {
	page := model.DefaultPage()
	q := r.URL.Query()
	if n, err := strconv.Atoi(q.Get("page_num")); err == nil {
		page.Num = n
	}
	if n, err := strconv.Atoi(q.Get("page_size")); err == nil {
		page.Size = n
	}
	return page
}

// formFields collects the first value of each form-encoded body field.
func formFields(r *http.Request) (service.Fields, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	fields := make(service.Fields, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields, nil
}

// writeBodyError reports an unreadable request body.
func writeBodyError(w http.ResponseWriter, err error, message string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, message)
}
