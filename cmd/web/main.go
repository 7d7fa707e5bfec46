package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/i18n"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/server"
	"sales-dashboard/internal/services"
)

const csvLoadTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"config", cfg,
	)

	loader := services.NewLoader()
	ctx, cancel := context.WithTimeout(context.Background(), csvLoadTimeout)
	defer cancel()

	// The sales extract is a fixed bundled asset: a missing or malformed
	// file is fatal, there is nothing to recover to.
	data, err := loader.Load(ctx, cfg.Data.CSVFile)
	if err != nil {
		logger.Error("failed to load sales data", "error", err, "path", cfg.Data.CSVFile)
		os.Exit(1)
	}

	translator := i18n.New(cfg.Data.Language)

	srv := server.NewServer(data, translator, logger)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down dashboard")
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
