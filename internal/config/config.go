// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Default ports for each deployable.
const (
	DefaultListingServicePort = 6000
	DefaultUserServicePort    = 6001
	DefaultGatewayPort        = 6002
)

// Base holds settings shared by every service.
type Base struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Base) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Base) IsProduction() bool {
	return c.AppEnv == "production"
}

// ResourceConfig configures a backend resource service (users or listings).
type ResourceConfig struct {
	Base

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"4"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"1"`
}

// GatewayConfig configures the public aggregation gateway.
type GatewayConfig struct {
	Base

	ListingServiceURL string `env:"LISTING_SERVICE_URL" envDefault:"http://localhost:6000"`
	UserServiceURL    string `env:"USER_SERVICE_URL" envDefault:"http://localhost:6001"`

	// UpstreamTimeout bounds every call to a backend service.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"5s"`

	// EnrichConcurrency caps in-flight user lookups per list request.
	EnrichConcurrency int `env:"ENRICH_CONCURRENCY" envDefault:"8"`

	// EnrichTimeout bounds all user lookups of one list request together.
	// UpstreamTimeout plus EnrichTimeout must stay below WriteTimeout.
	EnrichTimeout time.Duration `env:"ENRICH_TIMEOUT" envDefault:"3s"`

	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *GatewayConfig) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// LoadResource parses environment variables for a resource service.
// defaultPort is used when APP_PORT is unset.
func LoadResource(defaultPort int) (*ResourceConfig, error) {
	cfg := &ResourceConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.AppPort == 0 {
		cfg.AppPort = defaultPort
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		cfg.DBMinConns = cfg.DBMaxConns
	}
	return cfg, nil
}

// LoadGateway parses environment variables for the gateway.
func LoadGateway() (*GatewayConfig, error) {
	cfg := &GatewayConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.AppPort == 0 {
		cfg.AppPort = DefaultGatewayPort
	}
	if cfg.EnrichConcurrency < 1 {
		cfg.EnrichConcurrency = 1
	}
	if cfg.EnrichTimeout <= 0 {
		return nil, fmt.Errorf("ENRICH_TIMEOUT must be positive, got %s", cfg.EnrichTimeout)
	}
	if budget := cfg.UpstreamTimeout + cfg.EnrichTimeout; cfg.WriteTimeout > 0 && budget >= cfg.WriteTimeout {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT + ENRICH_TIMEOUT (%s) must be below WRITE_TIMEOUT (%s)", budget, cfg.WriteTimeout)
	}
	cfg.ListingServiceURL = strings.TrimSuffix(cfg.ListingServiceURL, "/")
	cfg.UserServiceURL = strings.TrimSuffix(cfg.UserServiceURL, "/")
	return cfg, nil
}
