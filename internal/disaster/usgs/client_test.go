package usgs_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disasterwatch/disasterwatch/internal/disaster"
	"github.com/disasterwatch/disasterwatch/internal/disaster/usgs"
	"github.com/disasterwatch/disasterwatch/internal/geo"
	"github.com/disasterwatch/disasterwatch/internal/provider/resilience"
)

func testClient(baseURL string) *usgs.Client {
	return usgs.NewClient(usgs.ClientConfig{
		BaseURL: baseURL,
		HTTPClient: resilience.NewClient(resilience.ClientConfig{
			Name:       "usgs-test",
			MaxRetries: 1,
		}),
		Logger: zerolog.Nop(),
	})
}

func eventPayload() map[string]any {
	t1 := int64(1716200000000)
	return map[string]any{
		"type": "FeatureCollection",
		"features": []map[string]any{
			{
				"type": "Feature",
				"id":   "us7000abcd",
				"properties": map[string]any{
					"mag":   6.2,
					"place": "12 km NE of Khasab, Oman",
					"time":  t1,
					"title": "M 6.2 - 12 km NE of Khasab, Oman",
					"url":   "https://earthquake.usgs.gov/earthquakes/eventpage/us7000abcd",
				},
				"geometry": map[string]any{
					"type":        "Point",
					"coordinates": []float64{55.0, 24.0, 50.0},
				},
			},
			{
				"type": "Feature",
				"id":   "us7000badgeom",
				"properties": map[string]any{
					"mag": 4.1,
				},
				"geometry": map[string]any{
					"type":        "Point",
					"coordinates": []float64{55.0},
				},
			},
		},
	}
}

func TestClient_QueryEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "geojson", q.Get("format"))
		assert.Equal(t, "100", q.Get("limit"))
		assert.Equal(t, "2.5", q.Get("minmagnitude"))
		assert.Equal(t, "time", q.Get("orderby"))
		assert.Empty(t, q.Get("minlatitude"), "no bbox without bounds")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(eventPayload())
	}))
	defer server.Close()

	client := testClient(server.URL)

	fc, err := client.QueryEvents(context.Background(), disaster.SeismicQuery{Limit: 100, MinMagnitude: 2.5})
	require.NoError(t, err)
	require.Len(t, fc.Features, 1, "malformed-geometry event is skipped")

	f := fc.Features[0]
	assert.Equal(t, "us7000abcd", f.ID)
	assert.Equal(t, []float64{55.0, 24.0}, f.Geometry.Coordinates)
	assert.Equal(t, 6.2, f.Properties["mag"])
	assert.Equal(t, 50.0, f.Properties["depth"], "depth lifted from third coordinate")
	assert.Equal(t, float64(1716200000000), f.Properties["time"])
	assert.Equal(t, "earthquake", f.Properties["type"])
}

func TestClient_QueryEvents_WithBounds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "22.5", q.Get("minlatitude"))
		assert.Equal(t, "26.5", q.Get("maxlatitude"))
		assert.Equal(t, "51", q.Get("minlongitude"))
		assert.Equal(t, "56.5", q.Get("maxlongitude"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(eventPayload())
	}))
	defer server.Close()

	client := testClient(server.URL)
	bounds, ok := geo.BoundsFor(geo.RegionUAE)
	require.True(t, ok)

	_, err := client.QueryEvents(context.Background(), disaster.SeismicQuery{
		Limit:        50,
		MinMagnitude: 2.5,
		Bounds:       &bounds,
	})
	require.NoError(t, err)
}

func TestClient_QueryEvents_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.QueryEvents(context.Background(), disaster.SeismicQuery{Limit: 10, MinMagnitude: 2.5})
	assert.Error(t, err)
}

func TestClient_QueryEvents_RecordsOutcome(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(eventPayload())
	}))
	defer server.Close()

	registry := resilience.NewRegistry()
	client := usgs.NewClient(usgs.ClientConfig{
		BaseURL: server.URL,
		HTTPClient: resilience.NewClient(resilience.ClientConfig{
			Name:       "usgs-test",
			MaxRetries: 1,
		}),
		Registry: registry,
		Logger:   zerolog.Nop(),
	})

	_, err := client.QueryEvents(context.Background(), disaster.SeismicQuery{Limit: 10, MinMagnitude: 2.5})
	require.NoError(t, err)

	health := registry.Health(usgs.ProviderName)
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)
}
