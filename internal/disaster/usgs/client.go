// Package usgs provides a client for the USGS fdsnws earthquake event API.
package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/disasterwatch/disasterwatch/internal/disaster"
	"github.com/disasterwatch/disasterwatch/internal/provider/resilience"
)

const (
	// ProviderName identifies this seismic data provider.
	ProviderName = "usgs"

	// DefaultBaseURL is the USGS event query endpoint.
	DefaultBaseURL = "https://earthquake.usgs.gov/fdsnws/event/1/query"
)

// ClientConfig holds configuration for the USGS client.
type ClientConfig struct {
	// BaseURL is the event query URL (optional, defaults to the USGS API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Registry receives per-request success/failure outcomes (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a USGS fdsnws event API client.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	registry   *resilience.Registry
	logger     zerolog.Logger
}

// NewClient creates a new USGS client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	if cfg.Registry != nil {
		cfg.Registry.Register(ProviderName, httpClient)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		registry:   cfg.Registry,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// QueryEvents fetches recent earthquake events ordered by time, newest
// first. Bounds, when set, are passed upstream so the API pre-narrows the
// result geographically.
func (c *Client) QueryEvents(ctx context.Context, q disaster.SeismicQuery) (*disaster.FeatureCollection, error) {
	params := url.Values{}
	params.Set("format", "geojson")
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("minmagnitude", strconv.FormatFloat(q.MinMagnitude, 'f', -1, 64))
	params.Set("orderby", "time")

	if q.Bounds != nil {
		params.Set("minlatitude", strconv.FormatFloat(q.Bounds.MinLat, 'f', -1, 64))
		params.Set("maxlatitude", strconv.FormatFloat(q.Bounds.MaxLat, 'f', -1, 64))
		params.Set("minlongitude", strconv.FormatFloat(q.Bounds.MinLon, 'f', -1, 64))
		params.Set("maxlongitude", strconv.FormatFloat(q.Bounds.MaxLon, 'f', -1, 64))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		c.recordFailure(err)
		return nil, err
	}

	var usgsResp eventQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&usgsResp); err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if c.registry != nil {
		c.registry.RecordSuccess(ProviderName)
	}

	return c.toCollection(&usgsResp), nil
}

func (c *Client) recordFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(ProviderName, err)
	}
}

// toCollection converts a USGS response to the domain model. The event
// depth lives in the third geometry coordinate; it is copied into the
// property map so enrichment reads one place.
func (c *Client) toCollection(resp *eventQueryResponse) *disaster.FeatureCollection {
	features := make([]disaster.Feature, 0, len(resp.Features))
	for _, f := range resp.Features {
		if len(f.Geometry.Coordinates) < 2 {
			c.logger.Warn().Str("event_id", f.ID).Msg("skipping event with malformed geometry")
			continue
		}

		props := map[string]any{
			"mag":   f.Properties.Mag,
			"place": f.Properties.Place,
			"title": f.Properties.Title,
			"type":  disaster.CategoryEarthquake.String(),
		}
		if f.Properties.Time != nil {
			props["time"] = float64(*f.Properties.Time)
		}
		if len(f.Geometry.Coordinates) >= 3 {
			props["depth"] = f.Geometry.Coordinates[2]
		}
		if f.Properties.Tsunami != 0 {
			props["tsunami"] = f.Properties.Tsunami
		}
		if f.Properties.URL != "" {
			props["url"] = f.Properties.URL
		}

		features = append(features, disaster.Feature{
			Type: "Feature",
			ID:   f.ID,
			Geometry: disaster.Geometry{
				Type:        "Point",
				Coordinates: f.Geometry.Coordinates[:2],
			},
			Properties: props,
		})
	}

	return disaster.NewFeatureCollection(features)
}

// USGS API response structures.

type eventQueryResponse struct {
	Features []struct {
		ID         string `json:"id"`
		Properties struct {
			Mag     float64 `json:"mag"`
			Place   string  `json:"place"`
			Time    *int64  `json:"time"`
			Title   string  `json:"title"`
			Tsunami int     `json:"tsunami"`
			URL     string  `json:"url"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}
