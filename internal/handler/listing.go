package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homelist/marketplace/internal/handler/dto"
	"github.com/homelist/marketplace/internal/middleware"
	"github.com/homelist/marketplace/internal/model"
	"github.com/homelist/marketplace/internal/service"
)

// ListingHandler handles HTTP requests for listing operations.
type ListingHandler struct {
	svc    *service.ListingService
	logger *slog.Logger
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(svc *service.ListingService, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /listings.
// An optional user_id narrows the page to one owner. A value that is not a
// valid id matches no owner, so the page is empty.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	input := service.ListListingsInput{Page: parsePage(r)}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, ok := service.ParseID(raw)
		if !ok {
			writeJSON(w, http.StatusOK, dto.ListingListResponse{Result: true, Listings: []*model.Listing{}})
			return
		}
		input.UserID = &id
	}

	listings, err := h.svc.ListListings(r.Context(), input)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListingListResponse{Result: true, Listings: listings})
}

// Create handles POST /listings with a form-encoded body.
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := formFields(r)
	if err != nil {
		writeBodyError(w, err, "invalid form body")
		return
	}

	listing, err := h.svc.CreateListing(r.Context(), fields)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("listing_created",
		"listing_id", listing.ID,
		"user_id", listing.UserID,
		"request_id", requestID(r),
	)

	writeJSON(w, http.StatusOK, dto.ListingResponse{Result: true, Listing: listing})
}

// Get handles GET /listings/{id}.
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := service.ParseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "invalid listing_id")
		return
	}

	listing, err := h.svc.GetListing(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListingResponse{Result: true, Listing: listing})
}

func requestID(r *http.Request) string {
	return middleware.GetRequestID(r.Context())
}
