// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/disasterwatch/disasterwatch/internal/disaster"
	"github.com/disasterwatch/disasterwatch/internal/disaster/usgs"
)

// Config holds the runtime configuration for the API server.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// Environment is the deployment environment name.
	Environment string

	// USGSBaseURL overrides the USGS event query endpoint.
	USGSBaseURL string

	// UpstreamTimeout bounds a single upstream HTTP request.
	UpstreamTimeout time.Duration

	// CacheTTL bounds how long fetched collections are served.
	CacheTTL time.Duration

	// RefreshEnabled turns the background cache warmer on.
	RefreshEnabled bool

	// RefreshInterval is the delay between warmer passes.
	RefreshInterval time.Duration

	// OTLPEndpoint is the OpenTelemetry collector address.
	OTLPEndpoint string

	// TelemetryEnabled turns OTLP export on.
	TelemetryEnabled bool
}

// FromEnv creates a Config from environment variables, falling back to
// local-development defaults. Unparseable durations fall back silently;
// misconfiguration shows up in the effective-config log line at startup.
func FromEnv() Config {
	upstreamTimeout := durationOrDefault("UPSTREAM_TIMEOUT", 30*time.Second)
	cacheTTL := durationOrDefault("CACHE_TTL", disaster.DefaultCacheTTL)
	refreshInterval := durationOrDefault("REFRESH_INTERVAL", 4*time.Minute)
	refreshEnabled, _ := strconv.ParseBool(getEnvOrDefault("REFRESH_ENABLED", "false"))

	return Config{
		Port:             getEnvOrDefault("APP_PORT", "8080"),
		Environment:      getEnvOrDefault("APP_ENV", "development"),
		USGSBaseURL:      getEnvOrDefault("USGS_BASE_URL", usgs.DefaultBaseURL),
		UpstreamTimeout:  upstreamTimeout,
		CacheTTL:         cacheTTL,
		RefreshEnabled:   refreshEnabled,
		RefreshInterval:  refreshInterval,
		OTLPEndpoint:     getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled: os.Getenv("OTEL_ENABLED") == "true",
	}
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnvOrDefault(key, fallback.String()))
	if err != nil {
		return fallback
	}
	return d
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
