package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homelist/marketplace/internal/handler/dto"
	"github.com/homelist/marketplace/internal/service"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context(), parsePage(r))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserListResponse{Result: true, Users: users})
}

// Create handles POST /users with a form-encoded body.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := formFields(r)
	if err != nil {
		writeBodyError(w, err, "invalid form body")
		return
	}

	user, err := h.svc.CreateUser(r.Context(), fields)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("user_created",
		"user_id", user.ID,
		"request_id", requestID(r),
	)

	writeJSON(w, http.StatusOK, dto.UserResponse{Result: true, User: user})
}

// Get handles GET /users/{id}.
// A malformed id is reported as 404, the same class as a missing user.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := service.ParseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "invalid user_id")
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserResponse{Result: true, User: user})
}
