package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/homelist/marketplace/internal/metrics"
	"github.com/homelist/marketplace/internal/model"
)

// ListingClient calls the Listing Service.
type ListingClient struct {
	c *client
}

// NewListingClient creates a client for the Listing Service at baseURL.
func NewListingClient(baseURL string, httpClient *http.Client, recorder metrics.Recorder) *ListingClient {
	return &ListingClient{c: newClient("listing", baseURL, httpClient, recorder)}
}

// ListQuery selects one page of listings.
type ListQuery struct {
	Page model.Page
	// UserID is passed through unvalidated when non-empty.
	UserID string
}

type listEnvelope struct {
	Result   bool             `json:"result"`
	Listings *[]model.Listing `json:"listings"`
}

// List fetches one page of listings in the order the service returns them.
func (l *ListingClient) List(ctx context.Context, q ListQuery) ([]model.Listing, error) {
	query := url.Values{}
	query.Set("page_num", strconv.Itoa(q.Page.Num))
	query.Set("page_size", strconv.Itoa(q.Page.Size))
	if q.UserID != "" {
		query.Set("user_id", q.UserID)
	}

	var env listEnvelope
	if err := l.c.getJSON(ctx, "/listings", query, &env); err != nil {
		return nil, err
	}
	if !env.Result || env.Listings == nil {
		return nil, fmt.Errorf("listing list envelope rejected: %w", ErrMalformedBody)
	}

	return *env.Listings, nil
}

// Create forwards a form-encoded listing to the Listing Service.
func (l *ListingClient) Create(ctx context.Context, form url.Values) (*Response, error) {
	return l.c.relay(ctx, "/listings", form)
}

// Ping checks the Listing Service liveness route.
func (l *ListingClient) Ping(ctx context.Context) error {
	return l.c.ping(ctx, "/listings/ping")
}
