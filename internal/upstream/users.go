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

// UserClient calls the User Service.
type UserClient struct {
	c *client
}

// NewUserClient creates a client for the User Service at baseURL.
func NewUserClient(baseURL string, httpClient *http.Client, recorder metrics.Recorder) *UserClient {
	return &UserClient{c: newClient("user", baseURL, httpClient, recorder)}
}

type userEnvelope struct {
	Result bool        `json:"result"`
	User   *model.User `json:"user"`
}

// Get fetches one user. Any non-2xx reply, including 404, is an error.
func (u *UserClient) Get(ctx context.Context, id int64) (*model.User, error) {
	var env userEnvelope
	path := "/users/" + strconv.FormatInt(id, 10)
	if err := u.c.getJSON(ctx, path, nil, &env); err != nil {
		return nil, err
	}
	if !env.Result || env.User == nil {
		return nil, fmt.Errorf("user envelope rejected: %w", ErrMalformedBody)
	}
	return env.User, nil
}

// Create forwards a form-encoded user to the User Service.
func (u *UserClient) Create(ctx context.Context, form url.Values) (*Response, error) {
	return u.c.relay(ctx, "/users", form)
}

// Ping checks the User Service liveness route.
func (u *UserClient) Ping(ctx context.Context) error {
	return u.c.ping(ctx, "/users/ping")
}
