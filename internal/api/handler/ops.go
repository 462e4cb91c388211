// Package handler provides HTTP handlers for the DisasterWatch API.
package handler

import (
	"net/http"
	"time"

	"github.com/disasterwatch/disasterwatch/internal/api/models"
	"github.com/disasterwatch/disasterwatch/internal/api/response"
	"github.com/disasterwatch/disasterwatch/internal/provider/resilience"
)

// CacheReporter reports response-cache occupancy.
type CacheReporter interface {
	CacheEntries() int
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
	cache     CacheReporter
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry, cache CacheReporter) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
		cache:     cache,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// Data is fetched lazily with a fail-soft fallback, so the service is ready
// as soon as it can accept requests.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - feed and cache status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	feeds := []models.FeedStatus{}
	overall := models.HealthStatusOK

	if h.registry != nil {
		for _, fh := range h.registry.AllHealth() {
			status := feedStatus(fh)
			if status == models.HealthStatusFail {
				overall = models.HealthStatusFail
			} else if status == models.HealthStatusDegraded && overall == models.HealthStatusOK {
				overall = models.HealthStatusDegraded
			}

			fs := models.FeedStatus{
				Feed:   fh.Name,
				Status: status,
			}
			if fh.LastSuccessAt != nil {
				ts := models.Timestamp(*fh.LastSuccessAt)
				fs.LastSuccessAt = &ts
			}
			if fh.LastFailureAt != nil {
				ts := models.Timestamp(*fh.LastFailureAt)
				fs.LastFailureAt = &ts
			}
			if fh.LastError != "" {
				msg := fh.LastError
				fs.Message = &msg
			}
			feeds = append(feeds, fs)
		}
	}

	status := models.SystemStatus{
		Status: overall,
		Time:   models.Timestamp(time.Now()),
		Feeds:  feeds,
	}
	if h.cache != nil {
		status.Cache = models.CacheStatus{Entries: h.cache.CacheEntries()}
	}
	response.JSON(w, r, http.StatusOK, status)
}

func feedStatus(fh *resilience.FeedHealth) models.HealthStatus {
	switch {
	case fh.IsUnhealthy():
		return models.HealthStatusFail
	case fh.IsDegraded():
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}
