// Package main is the entrypoint for the public aggregation gateway.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/homelist/marketplace/internal/config"
	"github.com/homelist/marketplace/internal/handler"
	"github.com/homelist/marketplace/internal/logging"
	"github.com/homelist/marketplace/internal/metrics"
	"github.com/homelist/marketplace/internal/middleware"
	"github.com/homelist/marketplace/internal/server"
	"github.com/homelist/marketplace/internal/service"
	"github.com/homelist/marketplace/internal/upstream"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadGateway()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	recorder := metrics.NewPrometheus("gateway")

	// Upstream clients share one transport.
	httpClient := upstream.NewHTTPClient(cfg.UpstreamTimeout)
	listingClient := upstream.NewListingClient(cfg.ListingServiceURL, httpClient, recorder)
	userClient := upstream.NewUserClient(cfg.UserServiceURL, httpClient, recorder)

	aggregator := service.NewAggregator(listingClient, userClient, service.AggregatorOptions{
		Concurrency:   cfg.EnrichConcurrency,
		EnrichTimeout: cfg.EnrichTimeout,
	}, logger, recorder)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	router := handler.NewGatewayRouter(handler.RouterConfig{
		Service:        "gateway",
		Logger:         logger,
		Metrics:        recorder,
		MetricsHandler: recorder.Handler(),
		Health: handler.NewHealthHandler(
			handler.Dependency{Name: "listing_service", Checker: listingClient},
			handler.Dependency{Name: "user_service", Checker: userClient},
		),
		IsDevelopment: cfg.IsDevelopment(),
		MaxBodySize:   cfg.MaxRequestBodySize,
		CORS:          &cors,
	}, handler.NewGatewayHandler(aggregator, logger))

	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	srv.OnShutdown("upstream connections", func(ctx context.Context) error {
		httpClient.CloseIdleConnections()
		return nil
	})

	logger.Info("starting gateway",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"listing_service_url", logging.RedactURL(cfg.ListingServiceURL),
		"user_service_url", logging.RedactURL(cfg.UserServiceURL),
		"enrich_concurrency", cfg.EnrichConcurrency,
		"enrich_timeout", cfg.EnrichTimeout,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
