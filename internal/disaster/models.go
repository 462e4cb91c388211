// Package disaster provides the data-aggregation core: fetching, enrichment,
// region filtering, caching and cross-source statistics for disaster data.
package disaster

import (
	"time"

	"github.com/disasterwatch/disasterwatch/internal/geo"
)

// Category identifies a disaster data source.
type Category int

// Supported categories. Dispatch is by explicit switch, never by
// comparing free-form strings from callers.
const (
	CategoryEarthquake Category = iota
	CategoryWildfire
	CategoryWeatherAlert
	CategoryReliefCenter
)

// String returns the wire name of the category, as used in feature
// properties and combined-response keys.
func (c Category) String() string {
	switch c {
	case CategoryEarthquake:
		return "earthquake"
	case CategoryWildfire:
		return "wildfire"
	case CategoryWeatherAlert:
		return "weather_alert"
	case CategoryReliefCenter:
		return "relief_center"
	default:
		return "unknown"
	}
}

// Geometry is a GeoJSON point geometry. Coordinates are [lon, lat] and may
// carry a third element (depth in km for seismic events).
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Feature is a point-located record with category-specific attributes.
type Feature struct {
	Type       string         `json:"type"`
	ID         string         `json:"id,omitempty"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// NewFeature constructs a point feature.
func NewFeature(id string, lon, lat float64, props map[string]any) Feature {
	return Feature{
		Type: "Feature",
		ID:   id,
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{lon, lat},
		},
		Properties: props,
	}
}

// CollectionMetadata describes how a collection was narrowed.
type CollectionMetadata struct {
	RegionName    string `json:"region_name"`
	RegionCode    string `json:"region_code"`
	TotalFiltered int    `json:"total_filtered"`
}

// FeatureCollection is an ordered set of features plus optional filter
// metadata. Collections are built fresh per fetch and replaced, not mutated.
type FeatureCollection struct {
	Type     string              `json:"type"`
	Features []Feature           `json:"features"`
	Metadata *CollectionMetadata `json:"metadata,omitempty"`
}

// NewFeatureCollection constructs a collection around the given features.
func NewFeatureCollection(features []Feature) *FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// EmptyCollection returns a collection with zero features. Fetchers degrade
// to this on upstream failure, so callers must read it as "no data available
// right now", not "confirmed zero events".
func EmptyCollection() *FeatureCollection {
	return NewFeatureCollection(nil)
}

// Statistics aggregates counters across sources for one region.
type Statistics struct {
	Region            string    `json:"region"`
	RegionName        string    `json:"region_name"`
	TotalEarthquakes  int       `json:"total_earthquakes"`
	SevereEarthquakes int       `json:"severe_earthquakes"`
	TotalWildfires    int       `json:"total_wildfires"`
	ActiveAlerts      int       `json:"active_weather_alerts"`
	AvgMagnitude      float64   `json:"avg_earthquake_magnitude"`
	LastUpdated       time.Time `json:"last_updated"`
}

// SeismicQuery is the raw upstream query a seismic provider executes.
// Bounds, when non-nil, are passed through so the provider can pre-narrow
// results geographically.
type SeismicQuery struct {
	Limit        int
	MinMagnitude float64
	Bounds       *geo.Bounds
}

// EarthquakeQuery holds the caller-tunable parameters of a seismic fetch.
// The boundary layer validates ranges; the core assumes valid input.
type EarthquakeQuery struct {
	// Limit is the maximum number of events to return, in [1, 200].
	Limit int

	// MinMagnitude filters events below this magnitude, in [0, 10].
	MinMagnitude float64
}

// DefaultEarthquakeQuery mirrors the dashboard's default view.
func DefaultEarthquakeQuery() EarthquakeQuery {
	return EarthquakeQuery{Limit: 50, MinMagnitude: 2.5}
}

// CombinedQuery selects which categories a combined fetch includes.
type CombinedQuery struct {
	Earthquakes   bool
	Wildfires     bool
	WeatherAlerts bool
	ReliefCenters bool
	Earthquake    EarthquakeQuery
}

// Categories returns the selected categories in a stable order.
func (q CombinedQuery) Categories() []Category {
	var cats []Category
	if q.Earthquakes {
		cats = append(cats, CategoryEarthquake)
	}
	if q.Wildfires {
		cats = append(cats, CategoryWildfire)
	}
	if q.WeatherAlerts {
		cats = append(cats, CategoryWeatherAlert)
	}
	if q.ReliefCenters {
		cats = append(cats, CategoryReliefCenter)
	}
	return cats
}

// pointCoords extracts the lon/lat pair from a feature. ok is false when the
// geometry carries fewer than two coordinate values.
func pointCoords(f Feature) (lon, lat float64, ok bool) {
	if len(f.Geometry.Coordinates) < 2 {
		return 0, 0, false
	}
	return f.Geometry.Coordinates[0], f.Geometry.Coordinates[1], true
}

// regionName resolves a display name for statistics; "all" reads as Global.
func regionName(region geo.Region) string {
	if b, ok := geo.BoundsFor(region); ok {
		return b.Name
	}
	return "Global"
}
