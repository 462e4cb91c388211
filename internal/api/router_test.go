package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disasterwatch/disasterwatch/internal/api"
	"github.com/disasterwatch/disasterwatch/internal/api/models"
	"github.com/disasterwatch/disasterwatch/internal/disaster"
	"github.com/disasterwatch/disasterwatch/internal/disaster/staticfeed"
	"github.com/disasterwatch/disasterwatch/internal/provider/resilience"
)

// scriptedSeismic returns a fixed event set for router tests.
type scriptedSeismic struct {
	features []disaster.Feature
	err      error
}

func (s *scriptedSeismic) QueryEvents(_ context.Context, _ disaster.SeismicQuery) (*disaster.FeatureCollection, error) {
	if s.err != nil {
		return nil, s.err
	}
	features := make([]disaster.Feature, len(s.features))
	copy(features, s.features)
	return disaster.NewFeatureCollection(features), nil
}

func (s *scriptedSeismic) Name() string { return "usgs" }

func testRouter(t *testing.T, seismic *scriptedSeismic) http.Handler {
	t.Helper()

	registry := resilience.NewRegistry()
	registry.Register("usgs", resilience.NewClient(resilience.DefaultClientConfig("usgs")))

	service := disaster.NewService(disaster.ServiceConfig{
		Seismic:  seismic,
		Fixtures: staticfeed.NewSource(),
		Logger:   zerolog.Nop(),
	})

	return api.NewRouter(api.RouterConfig{
		Version:         "test",
		BuildTime:       "now",
		Logger:          zerolog.Nop(),
		DisasterService: service,
		FeedRegistry:    registry,
	})
}

func defaultSeismic() *scriptedSeismic {
	return &scriptedSeismic{features: []disaster.Feature{
		disaster.NewFeature("us7000abcd", 55.0, 24.0, map[string]any{
			"mag":   6.2,
			"depth": 50.0,
			"place": "12 km NE of Khasab, Oman",
			"time":  float64(1716200000000),
		}),
		disaster.NewFeature("us7000wxyz", -123.0, 49.0, map[string]any{
			"mag":   4.1,
			"depth": 20.0,
			"place": "offshore British Columbia",
			"time":  float64(1716100000000),
		}),
	}}
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/ops/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var health models.Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "test", health.Details["version"])
}

func TestRouter_Ready(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/ops/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Status(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/ops/status")

	assert.Equal(t, http.StatusOK, rec.Code)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, models.HealthStatusOK, status.Status)
	require.Len(t, status.Feeds, 1)
	assert.Equal(t, "usgs", status.Feeds[0].Feed)
}

func TestRouter_ListRegions(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/regions")

	assert.Equal(t, http.StatusOK, rec.Code)

	var list models.RegionList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Regions, 2)
	assert.Equal(t, "uae", list.Regions[0].Code)
	assert.Equal(t, "United Arab Emirates", list.Regions[0].Name)
	assert.Equal(t, [2]float64{24.0, 54.0}, list.Regions[0].Center)
	assert.Equal(t, "canada", list.Regions[1].Code)
}

func TestRouter_RegionBounds(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/regions/canada/bounds")

	assert.Equal(t, http.StatusOK, rec.Code)

	var bounds models.RegionBounds
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bounds))
	assert.Equal(t, "canada", bounds.Region)
	assert.Equal(t, "CA", bounds.Code)
	assert.Equal(t, 41.0, bounds.MinLat)
	assert.Equal(t, -52.0, bounds.MaxLon)
}

func TestRouter_RegionBounds_Unknown(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/regions/atlantis/bounds")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestRouter_RegionBounds_AllHasNoBox(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/regions/all/bounds")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ListEarthquakes(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/earthquakes?region=uae")

	assert.Equal(t, http.StatusOK, rec.Code)

	var fc disaster.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "us7000abcd", fc.Features[0].ID)
	assert.Equal(t, "Severe", fc.Features[0].Properties["severity"])
	assert.Equal(t, "United Arab Emirates", fc.Features[0].Properties["region_name"])
}

func TestRouter_ListEarthquakes_InvalidParams(t *testing.T) {
	router := testRouter(t, defaultSeismic())

	for _, path := range []string{
		"/v1/earthquakes?limit=0",
		"/v1/earthquakes?limit=201",
		"/v1/earthquakes?limit=ten",
		"/v1/earthquakes?min_magnitude=11",
		"/v1/earthquakes?min_magnitude=loud",
		"/v1/earthquakes?region=atlantis",
	} {
		rec := doGet(t, router, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)

		var p models.Problem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, models.ProblemTypeValidation, p.Type, path)
		assert.NotEmpty(t, p.Errors, path)
	}
}

func TestRouter_GetEarthquake(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/earthquakes/us7000abcd")

	assert.Equal(t, http.StatusOK, rec.Code)

	var f disaster.Feature
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "us7000abcd", f.ID)
}

func TestRouter_GetEarthquake_NotFound(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/earthquakes/us000none")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ListWildfires(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/wildfires?region=canada")

	assert.Equal(t, http.StatusOK, rec.Code)

	var fc disaster.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Len(t, fc.Features, 4)
}

func TestRouter_ListWeatherAlerts(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/weather-alerts?region=uae")

	assert.Equal(t, http.StatusOK, rec.Code)

	var fc disaster.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Len(t, fc.Features, 2)
}

func TestRouter_ListReliefCenters(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/relief-centers")

	assert.Equal(t, http.StatusOK, rec.Code)

	var fc disaster.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Len(t, fc.Features, 6)
}

func TestRouter_GetCombined(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/disasters?region=uae")

	assert.Equal(t, http.StatusOK, rec.Code)

	var combined map[string]disaster.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &combined))
	require.Len(t, combined, 4)
	assert.Len(t, combined["earthquake"].Features, 1)
	assert.Len(t, combined["wildfire"].Features, 2)
	assert.Len(t, combined["weather_alert"].Features, 2)
	assert.Len(t, combined["relief_center"].Features, 3)
}

func TestRouter_GetCombined_TypeSelection(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/disasters?types=wildfire,relief_center")

	assert.Equal(t, http.StatusOK, rec.Code)

	var combined map[string]disaster.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &combined))
	require.Len(t, combined, 2)
	assert.Contains(t, combined, "wildfire")
	assert.Contains(t, combined, "relief_center")
}

func TestRouter_GetCombined_UnknownType(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/disasters?types=volcano")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_GetCombined_FailingFeed(t *testing.T) {
	rec := doGet(t, testRouter(t, &scriptedSeismic{err: assert.AnError}), "/v1/disasters?region=uae")

	assert.Equal(t, http.StatusOK, rec.Code, "degraded feeds never fail the combined response")

	var combined map[string]disaster.FeatureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &combined))
	assert.Empty(t, combined["earthquake"].Features)
	assert.Len(t, combined["wildfire"].Features, 2)
}

func TestRouter_GetStatistics(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/statistics?region=uae")

	assert.Equal(t, http.StatusOK, rec.Code)

	var stats disaster.Statistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, "uae", stats.Region)
	assert.Equal(t, 1, stats.TotalEarthquakes)
	assert.Equal(t, 1, stats.SevereEarthquakes)
	assert.Equal(t, 2, stats.TotalWildfires)
	assert.InDelta(t, 6.2, stats.AvgMagnitude, 0.0001)
}

func TestRouter_Metrics(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	rec := doGet(t, testRouter(t, defaultSeismic()), "/v1/regions")

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
