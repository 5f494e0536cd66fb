package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/homelist/marketplace/internal/handler/dto"
	"github.com/homelist/marketplace/internal/service"
)

// GatewayHandler serves the public API composed from the backend services.
type GatewayHandler struct {
	agg    *service.Aggregator
	logger *slog.Logger
}

// NewGatewayHandler creates a new GatewayHandler.
func NewGatewayHandler(agg *service.Aggregator, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{
		agg:    agg,
		logger: logger,
	}
}

// ListListings handles GET /public-api/listings.
func (h *GatewayHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	out, err := h.agg.ListEnriched(r.Context(), service.ListEnrichedInput{
		Page:   parsePage(r),
		UserID: r.URL.Query().Get("user_id"),
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EnrichedListingListResponse{
		Result:       true,
		Listings:     out.Listings,
		PageNum:      out.Page.Num,
		PageSize:     out.Page.Size,
		TotalRecords: len(out.Listings),
	})
}

// CreateListing handles POST /public-api/listings/create with a JSON body.
func (h *GatewayHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBodyError(w, err, "invalid JSON")
		return
	}

	resp, err := h.agg.CreateListing(r.Context(), body)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeRaw(w, resp.StatusCode, resp.Body)
}

// CreateUser handles POST /public-api/users with a JSON body.
func (h *GatewayHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBodyError(w, err, "invalid JSON")
		return
	}

	resp, err := h.agg.CreateUser(r.Context(), body)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeRaw(w, resp.StatusCode, resp.Body)
}
