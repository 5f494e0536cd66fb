// Package main is the entrypoint for the User Service.
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
	"github.com/homelist/marketplace/internal/repository"
	"github.com/homelist/marketplace/internal/server"
	"github.com/homelist/marketplace/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadResource(config.DefaultUserServicePort)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL, repository.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", logging.SanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", logging.RedactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	if err := repo.EnsureUsersSchema(ctx); err != nil {
		logger.Error("failed to ensure schema", "error", logging.SanitizeError(err, cfg.DatabaseURL))
		repo.Close()
		os.Exit(1)
	}

	// Initialize services
	recorder := metrics.NewPrometheus("user_service")
	userService := service.NewUserService(repo, recorder)

	// Setup router
	router := handler.NewUserServiceRouter(handler.RouterConfig{
		Service:        "user-service",
		Logger:         logger,
		Metrics:        recorder,
		MetricsHandler: recorder.Handler(),
		Health:         handler.NewHealthHandler(handler.Dependency{Name: "postgres", Checker: repo}),
		IsDevelopment:  cfg.IsDevelopment(),
		MaxBodySize:    cfg.MaxRequestBodySize,
	}, handler.NewUserHandler(userService, logger))

	// Create and run server
	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		repo.Close()
		return nil
	})

	logger.Info("starting user service",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
