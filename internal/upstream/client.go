// Package upstream provides HTTP clients for the backend resource services.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/homelist/marketplace/internal/metrics"
	"github.com/homelist/marketplace/internal/middleware"
)

const (
	// DefaultTimeout is the total per-call timeout when none is configured.
	DefaultTimeout = 5 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 2 * time.Second
	// maxResponseBytes caps how much of a backend reply is read.
	maxResponseBytes = 1 << 20

	userAgent = "homelist-gateway/1.0"
)

// Upstream errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
	ErrMalformedBody    = errors.New("malformed upstream body")
)

// NewHTTPClient creates an HTTP client for calls to the backend services.
// The timeout bounds each call end to end; redirects are not followed.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ResponseHeaderTimeout: timeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   32,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Response is a backend reply relayed to the gateway caller unchanged.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// client issues requests to one backend service.
type client struct {
	name    string
	baseURL string
	http    *http.Client
	metrics metrics.Recorder
}

func newClient(name, baseURL string, httpClient *http.Client, recorder metrics.Recorder) *client {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &client{
		name:    name,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
		metrics: recorder,
	}
}

// do sends one request and returns the status and body. Transport errors and
// oversized bodies are returned as errors; any status is returned as-is.
func (c *client) do(ctx context.Context, method, path string, query, form url.Values) (int, []byte, error) {
	start := time.Now()
	status, body, err := c.send(ctx, method, path, query, form)

	outcome := metrics.OutcomeSuccess
	if err != nil || status < 200 || status > 299 {
		outcome = metrics.OutcomeFailure
	}
	c.metrics.ObserveUpstreamRequest(c.name, outcome, time.Since(start))

	return status, body, err
}

func (c *client) send(ctx context.Context, method, path string, query, form url.Values) (int, []byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s request: %w", c.name, err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s request: %w", c.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return 0, nil, fmt.Errorf("read %s response: %w", c.name, err)
	}
	if len(body) > maxResponseBytes {
		return 0, nil, fmt.Errorf("%s response exceeds %d bytes: %w", c.name, maxResponseBytes, ErrMalformedBody)
	}

	return resp.StatusCode, body, nil
}

// relay forwards a create request and returns the backend reply verbatim.
// Only a body that is valid JSON is relayed.
func (c *client) relay(ctx context.Context, path string, form url.Values) (*Response, error) {
	status, body, err := c.do(ctx, http.MethodPost, path, nil, form)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s create returned status %d: %w", c.name, status, ErrMalformedBody)
	}
	return &Response{StatusCode: status, Body: body}, nil
}

// ping checks that the backend answers its liveness route.
func (c *client) ping(ctx context.Context, path string) error {
	status, _, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%s ping returned %d: %w", c.name, status, ErrUnexpectedStatus)
	}
	return nil
}

// getJSON fetches path and decodes a 2xx reply into dst.
func (c *client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	status, body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%s %s returned %d: %w", c.name, path, status, ErrUnexpectedStatus)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s response: %v: %w", c.name, err, ErrMalformedBody)
	}
	return nil
}
