// Package main provides the entrypoint for the DisasterWatch API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/disasterwatch/disasterwatch/internal/api"
	"github.com/disasterwatch/disasterwatch/internal/api/middleware"
	"github.com/disasterwatch/disasterwatch/internal/config"
	"github.com/disasterwatch/disasterwatch/internal/disaster"
	"github.com/disasterwatch/disasterwatch/internal/disaster/staticfeed"
	"github.com/disasterwatch/disasterwatch/internal/disaster/usgs"
	"github.com/disasterwatch/disasterwatch/internal/observability"
	"github.com/disasterwatch/disasterwatch/internal/provider/resilience"
	"github.com/disasterwatch/disasterwatch/internal/telemetry"
	"github.com/disasterwatch/disasterwatch/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "disasterwatch-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting DisasterWatch API")

	cfg := config.FromEnv()
	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Dur("cache_ttl", cfg.CacheTTL).
		Bool("refresh_enabled", cfg.RefreshEnabled).
		Msg("configuration loaded")

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// HTTP-level metrics (OTel) and fetch metrics (Prometheus)
	httpMetrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}
	fetchMetrics := observability.NewMetrics()

	// Upstream feed client with circuit breaker and retry
	registry := resilience.NewRegistry()
	usgsClient := usgs.NewClient(usgs.ClientConfig{
		BaseURL: cfg.USGSBaseURL,
		HTTPClient: resilience.NewClient(resilience.ClientConfig{
			Name:    usgs.ProviderName,
			Timeout: cfg.UpstreamTimeout,
		}),
		Registry: registry,
		Logger:   log,
	})
	log.Info().Str("base_url", cfg.USGSBaseURL).Msg("USGS client initialized")

	// Aggregation service
	service := disaster.NewService(disaster.ServiceConfig{
		Seismic:  usgsClient,
		Fixtures: staticfeed.NewSource(),
		CacheTTL: cfg.CacheTTL,
		Metrics:  fetchMetrics,
		Logger:   log,
	})
	log.Info().Msg("disaster service initialized")

	// Optional background cache warmer
	warmCtx, stopWarmer := context.WithCancel(ctx)
	defer stopWarmer()
	if cfg.RefreshEnabled {
		runner := worker.NewRunner(worker.RunnerConfig{
			Job: worker.NewRefreshJob(worker.RefreshJobConfig{
				Logger:  log,
				Service: service,
			}),
			Interval: cfg.RefreshInterval,
			Logger:   log,
		})
		go runner.Start(warmCtx)
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:         Version,
		BuildTime:       BuildTime,
		Logger:          log,
		ServiceName:     serviceName,
		Metrics:         httpMetrics,
		DisasterService: service,
		FeedRegistry:    registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stopWarmer()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
