// Package api provides the HTTP API for DisasterWatch.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/disasterwatch/disasterwatch/internal/api/handler"
	"github.com/disasterwatch/disasterwatch/internal/api/middleware"
	"github.com/disasterwatch/disasterwatch/internal/disaster"
	"github.com/disasterwatch/disasterwatch/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version         string
	BuildTime       string
	Logger          zerolog.Logger
	ServiceName     string
	Metrics         *middleware.Metrics
	DisasterService *disaster.Service
	FeedRegistry    *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "disasterwatch-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.FeedRegistry, cfg.DisasterService)
	regionHandler := handler.NewRegionHandler()
	disasterHandler := handler.NewDisasterHandler(cfg.DisasterService)

	// Rate limits per endpoint cost
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// Prometheus scrape endpoint, outside /v1 and unthrottled
	r.Method("GET", "/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Region metadata - standard rate limiting
		r.Route("/regions", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", regionHandler.ListRegions)
			r.Get("/{region}/bounds", regionHandler.GetRegionBounds)
		})

		// Per-category feeds - standard rate limiting
		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/earthquakes", disasterHandler.ListEarthquakes)
			r.Get("/earthquakes/{eventId}", disasterHandler.GetEarthquake)
			r.Get("/wildfires", disasterHandler.ListWildfires)
			r.Get("/weather-alerts", disasterHandler.ListWeatherAlerts)
			r.Get("/relief-centers", disasterHandler.ListReliefCenters)
			r.Get("/statistics", disasterHandler.GetStatistics)
		})

		// Combined fetch fans out to every feed - strict rate limiting
		r.With(expensiveRateLimit).Get("/disasters", disasterHandler.GetCombined)
	})

	return r
}
