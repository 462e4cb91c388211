package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/disasterwatch/disasterwatch/internal/api/models"
	"github.com/disasterwatch/disasterwatch/internal/api/response"
	"github.com/disasterwatch/disasterwatch/internal/disaster"
	"github.com/disasterwatch/disasterwatch/internal/geo"
)

// Earthquake query parameter bounds.
const (
	maxEarthquakeLimit = 200
	maxMinMagnitude    = 10.0
)

// DisasterHandler handles the disaster data endpoints.
type DisasterHandler struct {
	service *disaster.Service
}

// NewDisasterHandler creates a new DisasterHandler.
func NewDisasterHandler(service *disaster.Service) *DisasterHandler {
	return &DisasterHandler{service: service}
}

// ListEarthquakes handles GET /v1/earthquakes.
func (h *DisasterHandler) ListEarthquakes(w http.ResponseWriter, r *http.Request) {
	region, fieldErrs := parseRegion(r)
	q, errs := parseEarthquakeQuery(r)
	fieldErrs = append(fieldErrs, errs...)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid query parameters", fieldErrs)
		return
	}

	fc := h.service.FetchEarthquakes(r.Context(), q, region)
	response.JSON(w, r, http.StatusOK, fc)
}

// GetEarthquake handles GET /v1/earthquakes/{eventId}.
// The event is looked up in the current global view, so an event outside the
// default magnitude/limit window reads as not found.
func (h *DisasterHandler) GetEarthquake(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	fc := h.service.FetchEarthquakes(r.Context(), disaster.DefaultEarthquakeQuery(), geo.RegionAll)
	for _, f := range fc.Features {
		if f.ID == eventID {
			response.JSON(w, r, http.StatusOK, f)
			return
		}
	}

	response.NotFound(w, r, "earthquake event not found: "+eventID)
}

// ListWildfires handles GET /v1/wildfires.
func (h *DisasterHandler) ListWildfires(w http.ResponseWriter, r *http.Request) {
	region, fieldErrs := parseRegion(r)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid query parameters", fieldErrs)
		return
	}

	response.JSON(w, r, http.StatusOK, h.service.FetchWildfires(r.Context(), region))
}

// ListWeatherAlerts handles GET /v1/weather-alerts.
func (h *DisasterHandler) ListWeatherAlerts(w http.ResponseWriter, r *http.Request) {
	region, fieldErrs := parseRegion(r)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid query parameters", fieldErrs)
		return
	}

	response.JSON(w, r, http.StatusOK, h.service.FetchWeatherAlerts(r.Context(), region))
}

// ListReliefCenters handles GET /v1/relief-centers.
func (h *DisasterHandler) ListReliefCenters(w http.ResponseWriter, r *http.Request) {
	region, fieldErrs := parseRegion(r)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid query parameters", fieldErrs)
		return
	}

	response.JSON(w, r, http.StatusOK, h.service.FetchReliefCenters(r.Context(), region))
}

// GetCombined handles GET /v1/disasters - all selected categories in one
// response, keyed by category name.
func (h *DisasterHandler) GetCombined(w http.ResponseWriter, r *http.Request) {
	region, fieldErrs := parseRegion(r)
	eq, errs := parseEarthquakeQuery(r)
	fieldErrs = append(fieldErrs, errs...)

	q, errs := parseCombinedTypes(r)
	fieldErrs = append(fieldErrs, errs...)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid query parameters", fieldErrs)
		return
	}
	q.Earthquake = eq

	response.JSON(w, r, http.StatusOK, h.service.FetchCombined(r.Context(), q, region))
}

// GetStatistics handles GET /v1/statistics.
func (h *DisasterHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	region, fieldErrs := parseRegion(r)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid query parameters", fieldErrs)
		return
	}

	response.JSON(w, r, http.StatusOK, h.service.Statistics(r.Context(), region))
}

// parseRegion reads the region query parameter, defaulting to "all".
func parseRegion(r *http.Request) (geo.Region, []models.FieldError) {
	raw := r.URL.Query().Get("region")
	if raw == "" {
		return geo.RegionAll, nil
	}

	region := geo.Region(strings.ToLower(raw))
	if !geo.Valid(region) {
		return "", []models.FieldError{
			{Field: "region", Message: "unknown region: " + raw, Code: "INVALID"},
		}
	}
	return region, nil
}

// parseEarthquakeQuery reads limit and min_magnitude, applying the dashboard
// defaults when absent.
func parseEarthquakeQuery(r *http.Request) (disaster.EarthquakeQuery, []models.FieldError) {
	q := disaster.DefaultEarthquakeQuery()
	var fieldErrs []models.FieldError

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fieldErrs = append(fieldErrs, models.FieldError{
				Field: "limit", Message: "must be an integer", Code: "INVALID",
			})
		case limit < 1 || limit > maxEarthquakeLimit:
			fieldErrs = append(fieldErrs, models.FieldError{
				Field: "limit", Message: "must be between 1 and 200", Code: "OUT_OF_RANGE",
			})
		default:
			q.Limit = limit
		}
	}

	if raw := r.URL.Query().Get("min_magnitude"); raw != "" {
		mag, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil:
			fieldErrs = append(fieldErrs, models.FieldError{
				Field: "min_magnitude", Message: "must be a number", Code: "INVALID",
			})
		case mag < 0 || mag > maxMinMagnitude:
			fieldErrs = append(fieldErrs, models.FieldError{
				Field: "min_magnitude", Message: "must be between 0 and 10", Code: "OUT_OF_RANGE",
			})
		default:
			q.MinMagnitude = mag
		}
	}

	return q, fieldErrs
}

// parseCombinedTypes reads the types parameter as a comma-separated category
// list. Absent means every category.
func parseCombinedTypes(r *http.Request) (disaster.CombinedQuery, []models.FieldError) {
	raw := r.URL.Query().Get("types")
	if raw == "" {
		return disaster.CombinedQuery{
			Earthquakes:   true,
			Wildfires:     true,
			WeatherAlerts: true,
			ReliefCenters: true,
		}, nil
	}

	var q disaster.CombinedQuery
	for _, name := range strings.Split(raw, ",") {
		switch strings.TrimSpace(name) {
		case "earthquake":
			q.Earthquakes = true
		case "wildfire":
			q.Wildfires = true
		case "weather_alert":
			q.WeatherAlerts = true
		case "relief_center":
			q.ReliefCenters = true
		default:
			return q, []models.FieldError{
				{Field: "types", Message: "unknown category: " + name, Code: "INVALID"},
			}
		}
	}
	return q, nil
}
