package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/homelist/marketplace/internal/metrics"
	"github.com/homelist/marketplace/internal/middleware"
)

// RouterConfig carries the settings shared by every service's router.
type RouterConfig struct {
	Service        string
	Logger         *slog.Logger
	Metrics        metrics.Recorder
	MetricsHandler http.Handler
	Health         *HealthHandler
	IsDevelopment  bool
	MaxBodySize    int64
	// CORS, when non-nil, enables cross-origin handling.
	CORS *middleware.CORSConfig
}

// newRouter builds a chi router with the global middleware chain and the
// routes common to every service.
func newRouter(cfg RouterConfig) (*chi.Mux, *Handler) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	if cfg.Health == nil {
		cfg.Health = NewHealthHandler()
	}

	h := New(cfg.Service)
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	if cfg.MaxBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxBodySize))
	}

	r.Get("/", h.Hello)
	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r, h
}

// NewUserServiceRouter routes the User Service API.
func NewUserServiceRouter(cfg RouterConfig, users *UserHandler) http.Handler {
	r, h := newRouter(cfg)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", users.List)
		r.Post("/", users.Create)
		r.Get("/ping", h.Ping)
		r.Get("/{id}", users.Get)
	})

	return r
}

// NewListingServiceRouter routes the Listing Service API.
func NewListingServiceRouter(cfg RouterConfig, listings *ListingHandler) http.Handler {
	r, h := newRouter(cfg)

	r.Route("/listings", func(r chi.Router) {
		r.Get("/", listings.List)
		r.Post("/", listings.Create)
		r.Get("/ping", h.Ping)
		r.Get("/{id}", listings.Get)
	})

	return r
}

// NewGatewayRouter routes the public API.
func NewGatewayRouter(cfg RouterConfig, gateway *GatewayHandler) http.Handler {
	r, _ := newRouter(cfg)

	r.Route("/public-api", func(r chi.Router) {
		r.Get("/listings", gateway.ListListings)
		r.Post("/listings/create", gateway.CreateListing)
		r.Post("/users", gateway.CreateUser)
	})

	return r
}
