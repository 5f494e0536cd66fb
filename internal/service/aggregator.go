package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/homelist/marketplace/internal/metrics"
	"github.com/homelist/marketplace/internal/model"
	"github.com/homelist/marketplace/internal/upstream"
)

// Backend service names used in UnavailableError.
const (
	listingServiceName = "listing"
	userServiceName    = "user"
)

// Enrichment defaults.
const (
	DefaultEnrichConcurrency = 8
	DefaultEnrichTimeout     = 3 * time.Second
)

// AggregatorOptions tunes owner enrichment.
type AggregatorOptions struct {
	// Concurrency caps in-flight owner lookups per request.
	Concurrency int
	// EnrichTimeout bounds the whole enrichment phase of one request.
	// Lookups still pending when it expires leave their user nil.
	EnrichTimeout time.Duration
}

// ListingBackend is the Listing Service surface the gateway depends on.
type ListingBackend interface {
	List(ctx context.Context, q upstream.ListQuery) ([]model.Listing, error)
	Create(ctx context.Context, form url.Values) (*upstream.Response, error)
}

// UserBackend is the User Service surface the gateway depends on.
type UserBackend interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, form url.Values) (*upstream.Response, error)
}

// Aggregator composes the backend services into the public API.
// The Listing Service is a hard dependency; owner lookups are best-effort.
type Aggregator struct {
	listings      ListingBackend
	users         UserBackend
	concurrency   int
	enrichTimeout time.Duration
	logger        *slog.Logger
	metrics       metrics.Recorder
}

// NewAggregator creates a new Aggregator.
func NewAggregator(listings ListingBackend, users UserBackend, opts AggregatorOptions, logger *slog.Logger, recorder metrics.Recorder) *Aggregator {
	if opts.Concurrency < 1 {
		opts.Concurrency = DefaultEnrichConcurrency
	}
	if opts.EnrichTimeout <= 0 {
		opts.EnrichTimeout = DefaultEnrichTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Aggregator{
		listings:      listings,
		users:         users,
		concurrency:   opts.Concurrency,
		enrichTimeout: opts.EnrichTimeout,
		logger:        logger,
		metrics:       recorder,
	}
}

// ListEnrichedInput defines input for the public listing page.
type ListEnrichedInput struct {
	Page   model.Page
	UserID string
}

// ListEnrichedOutput is one enriched page in upstream order.
type ListEnrichedOutput struct {
	Listings []model.EnrichedListing
	Page     model.Page
}

// ListEnriched fetches a page from the Listing Service and attaches each
// listing's owner. A failed owner lookup leaves that listing's user nil.
func (a *Aggregator) ListEnriched(ctx context.Context, input ListEnrichedInput) (*ListEnrichedOutput, error) {
	listings, err := a.listings.List(ctx, upstream.ListQuery{Page: input.Page, UserID: input.UserID})
	if err != nil {
		a.logger.WarnContext(ctx, "listing service call failed", slog.String("error", err.Error()))
		return nil, &UnavailableError{Service: listingServiceName, Err: err}
	}

	enriched := make([]model.EnrichedListing, len(listings))

	enrichCtx, cancel := context.WithTimeout(ctx, a.enrichTimeout)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, listing := range listings {
		i, listing := i, listing
		g.Go(func() error {
			user, err := a.users.Get(enrichCtx, listing.UserID)
			if err != nil {
				a.metrics.IncEnrichmentMiss()
				a.logger.DebugContext(ctx, "owner lookup failed",
					slog.Int64("listing_id", listing.ID),
					slog.Int64("user_id", listing.UserID),
					slog.String("error", err.Error()),
				)
				user = nil
			}
			enriched[i] = listing.Enrich(user)
			return nil
		})
	}
	_ = g.Wait()

	return &ListEnrichedOutput{Listings: enriched, Page: input.Page}, nil
}

// CreateListing validates a JSON listing and forwards it to the Listing
// Service as a form. The backend reply is returned unchanged.
func (a *Aggregator) CreateListing(ctx context.Context, body []byte) (*upstream.Response, error) {
	form, err := jsonToForm(body, listingRequiredFields)
	if err != nil {
		return nil, err
	}

	resp, err := a.listings.Create(ctx, form)
	if err != nil {
		a.logger.WarnContext(ctx, "listing service create failed", slog.String("error", err.Error()))
		return nil, &UnavailableError{Service: listingServiceName, Err: err}
	}
	return resp, nil
}

// CreateUser validates a JSON user and forwards it to the User Service.
func (a *Aggregator) CreateUser(ctx context.Context, body []byte) (*upstream.Response, error) {
	form, err := jsonToForm(body, userRequiredFields)
	if err != nil {
		return nil, err
	}

	resp, err := a.users.Create(ctx, form)
	if err != nil {
		a.logger.WarnContext(ctx, "user service create failed", slog.String("error", err.Error()))
		return nil, &UnavailableError{Service: userServiceName, Err: err}
	}
	return resp, nil
}

// jsonToForm decodes a JSON object and re-encodes its required members as
// form values. Absent or null required keys are reported in declared order
// before any malformed value; other keys are dropped.
func jsonToForm(body []byte, required []string) (url.Values, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return nil, &ValidationError{Message: ErrInvalidJSON.Error()}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ValidationError{Message: ErrInvalidJSON.Error()}
	}

	for _, name := range required {
		if payload[name] == nil {
			return nil, requiredError(name)
		}
	}

	form := url.Values{}
	for _, name := range required {
		switch v := payload[name].(type) {
		case string:
			form.Set(name, v)
		case json.Number:
			form.Set(name, v.String())
		case bool:
			form.Set(name, strconv.FormatBool(v))
		default:
			return nil, invalidFieldError(name)
		}
	}
	return form, nil
}
