package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/homelist/marketplace/internal/metrics"
	"github.com/homelist/marketplace/internal/model"
	"github.com/homelist/marketplace/internal/repository"
)

// ListingStore is the persistence surface the listing service needs.
type ListingStore interface {
	CreateListing(ctx context.Context, listing *model.Listing) error
	GetListingByID(ctx context.Context, id int64) (*model.Listing, error)
	ListListings(ctx context.Context, filter repository.ListingFilter, page model.Page) ([]*model.Listing, error)
}

var listingRequiredFields = []string{"user_id", "listing_type", "price"}

// ListingService handles listing business logic.
type ListingService struct {
	store   ListingStore
	metrics metrics.Recorder
	now     func() time.Time
}

// NewListingService creates a new ListingService.
func NewListingService(store ListingStore, recorder metrics.Recorder) *ListingService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ListingService{
		store:   store,
		metrics: recorder,
		now:     time.Now,
	}
}

// ListListingsInput defines input for listing listings.
type ListListingsInput struct {
	Page model.Page
	// UserID restricts results to one owner when set.
	UserID *int64
}

// ListListings returns one page of listings, newest first.
func (s *ListingService) ListListings(ctx context.Context, input ListListingsInput) ([]*model.Listing, error) {
	filter := repository.ListingFilter{UserID: input.UserID}
	listings, err := s.store.ListListings(ctx, filter, input.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

// CreateListing validates and persists a new listing.
func (s *ListingService) CreateListing(ctx context.Context, fields Fields) (*model.Listing, error) {
	if err := firstMissing(fields, listingRequiredFields...); err != nil {
		return nil, err
	}

	userID, ok := ParseID(fields["user_id"])
	if !ok {
		return nil, &ValidationError{Message: ErrInvalidUserID.Error()}
	}

	price, err := parsePrice(fields["price"])
	if err != nil {
		return nil, err
	}

	listing := model.NewListing(userID, fields["listing_type"], price, s.now())
	if err := s.store.CreateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	s.metrics.IncListingCreated()

	return listing, nil
}

// GetListing retrieves a listing by ID.
func (s *ListingService) GetListing(ctx context.Context, id int64) (*model.Listing, error) {
	listing, err := s.store.GetListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}

// ParseID parses a non-negative integer identifier.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, invalidPriceError(raw)
	}
	return price, nil
}
