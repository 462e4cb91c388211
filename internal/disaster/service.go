package disaster

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/disasterwatch/disasterwatch/internal/geo"
	"github.com/disasterwatch/disasterwatch/internal/observability"
)

// SeismicProvider fetches raw earthquake events from an upstream API.
type SeismicProvider interface {
	// QueryEvents returns raw events, newest first.
	QueryEvents(ctx context.Context, q SeismicQuery) (*FeatureCollection, error)

	// Name identifies the provider in logs and health reporting.
	Name() string
}

// FixtureSource serves the static non-seismic datasets. Each call returns a
// fresh collection the caller may annotate freely.
type FixtureSource interface {
	Wildfires() *FeatureCollection
	WeatherAlerts() *FeatureCollection
	ReliefCenters() *FeatureCollection
}

// ServiceConfig wires the aggregation service.
type ServiceConfig struct {
	// Seismic is the earthquake provider (required).
	Seismic SeismicProvider

	// Fixtures serves the wildfire, weather-alert and relief-center sets
	// (required).
	Fixtures FixtureSource

	// CacheTTL bounds result freshness. Zero means DefaultCacheTTL.
	CacheTTL time.Duration

	// Clock drives cache expiry and statistics timestamps (optional,
	// defaults to the real clock).
	Clock clockwork.Clock

	// Metrics receives fetch instrumentation (optional).
	Metrics *observability.Metrics

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service aggregates disaster data across sources, applying enrichment,
// region filtering and response caching.
//
// Every fetch method degrades to an empty collection instead of returning
// an error: the dashboard keeps rendering whatever sources still work.
type Service struct {
	seismic  SeismicProvider
	fixtures FixtureSource
	cache    *timeboxCache
	clock    clockwork.Clock
	metrics  *observability.Metrics
	logger   zerolog.Logger
}

// NewService creates a Service from the given configuration.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewMetricsForTesting()
	}
	return &Service{
		seismic:  cfg.Seismic,
		fixtures: cfg.Fixtures,
		cache:    newTimeboxCache(cfg.CacheTTL, clock),
		clock:    clock,
		metrics:  metrics,
		logger:   cfg.Logger,
	}
}

// FetchEarthquakes returns recent earthquakes for the region, enriched and
// capped at q.Limit. The upstream request asks for twice the limit so that
// region filtering still leaves enough events to fill the page.
//
// Upstream failures yield an empty collection and are not cached, so the
// next request retries immediately.
func (s *Service) FetchEarthquakes(ctx context.Context, q EarthquakeQuery, region geo.Region) *FeatureCollection {
	defer s.observeFetch(CategoryEarthquake)()

	key := fmt.Sprintf("earthquakes_%d_%g_%s", q.Limit, q.MinMagnitude, region)
	if fc, ok := s.cached(CategoryEarthquake, key); ok {
		return fc
	}

	sq := SeismicQuery{
		Limit:        q.Limit * 2,
		MinMagnitude: q.MinMagnitude,
	}
	if bounds, ok := geo.BoundsFor(region); ok {
		sq.Bounds = &bounds
	}

	raw, err := s.seismic.QueryEvents(ctx, sq)
	if err != nil {
		s.logger.Error().Err(err).
			Str("provider", s.seismic.Name()).
			Str("region", string(region)).
			Msg("earthquake fetch failed, serving empty collection")
		s.metrics.UpstreamRequests.WithLabelValues(s.seismic.Name(), "error").Inc()
		return EmptyCollection()
	}
	s.metrics.UpstreamRequests.WithLabelValues(s.seismic.Name(), "success").Inc()

	fc := FilterByRegion(Enrich(raw), region)
	if len(fc.Features) > q.Limit {
		fc.Features = fc.Features[:q.Limit]
		if fc.Metadata != nil {
			fc.Metadata.TotalFiltered = len(fc.Features)
		}
	}

	s.store(CategoryEarthquake, key, fc)
	return fc
}

// FetchWildfires returns active wildfires for the region.
func (s *Service) FetchWildfires(ctx context.Context, region geo.Region) *FeatureCollection {
	return s.fetchFixture(ctx, CategoryWildfire, region, s.fixtures.Wildfires)
}

// FetchWeatherAlerts returns active weather alerts for the region.
func (s *Service) FetchWeatherAlerts(ctx context.Context, region geo.Region) *FeatureCollection {
	return s.fetchFixture(ctx, CategoryWeatherAlert, region, s.fixtures.WeatherAlerts)
}

// FetchReliefCenters returns relief centers for the region.
func (s *Service) FetchReliefCenters(ctx context.Context, region geo.Region) *FeatureCollection {
	return s.fetchFixture(ctx, CategoryReliefCenter, region, s.fixtures.ReliefCenters)
}

func (s *Service) fetchFixture(_ context.Context, cat Category, region geo.Region, load func() *FeatureCollection) *FeatureCollection {
	defer s.observeFetch(cat)()

	key := fmt.Sprintf("%ss_%s", cat, region)
	if fc, ok := s.cached(cat, key); ok {
		return fc
	}

	fc := FilterByRegion(load(), region)
	s.store(cat, key, fc)
	return fc
}

// FetchCombined fetches the selected categories concurrently and keys the
// result by category wire name. A category whose fetch panics contributes an
// empty collection; the others are unaffected.
func (s *Service) FetchCombined(ctx context.Context, q CombinedQuery, region geo.Region) map[string]*FeatureCollection {
	cats := q.Categories()
	results := make(map[string]*FeatureCollection, len(cats))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, cat := range cats {
		cat := cat
		g.Go(func() error {
			fc := s.fetchCategory(ctx, cat, q, region)
			mu.Lock()
			results[cat.String()] = fc
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// fetchCategory dispatches one category fetch. It never fails: a panic in a
// source is downgraded to an empty collection so one broken feed cannot take
// down a combined response.
func (s *Service) fetchCategory(ctx context.Context, cat Category, q CombinedQuery, region geo.Region) (fc *FeatureCollection) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("category", cat.String()).
				Interface("panic", r).
				Msg("category fetch panicked, serving empty collection")
			fc = EmptyCollection()
		}
	}()

	switch cat {
	case CategoryEarthquake:
		return s.FetchEarthquakes(ctx, q.Earthquake, region)
	case CategoryWildfire:
		return s.FetchWildfires(ctx, region)
	case CategoryWeatherAlert:
		return s.FetchWeatherAlerts(ctx, region)
	case CategoryReliefCenter:
		return s.FetchReliefCenters(ctx, region)
	default:
		return EmptyCollection()
	}
}

// Statistics summarizes earthquakes, wildfires and weather alerts for one
// region. Severe earthquakes are those at magnitude 6.0 or above; the average
// magnitude is 0 when no earthquakes are in view.
func (s *Service) Statistics(ctx context.Context, region geo.Region) (stats *Statistics) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("region", string(region)).
				Interface("panic", r).
				Msg("statistics computation panicked, serving zero values")
			stats = &Statistics{}
		}
	}()

	quakes := s.FetchEarthquakes(ctx, DefaultEarthquakeQuery(), region)
	fires := s.FetchWildfires(ctx, region)
	alerts := s.FetchWeatherAlerts(ctx, region)

	var magSum float64
	severe := 0
	for _, f := range quakes.Features {
		mag := floatProp(f.Properties, "mag")
		magSum += mag
		if mag >= 6.0 {
			severe++
		}
	}

	avg := 0.0
	if len(quakes.Features) > 0 {
		avg = magSum / float64(len(quakes.Features))
	}

	return &Statistics{
		Region:            string(region),
		RegionName:        regionName(region),
		TotalEarthquakes:  len(quakes.Features),
		SevereEarthquakes: severe,
		TotalWildfires:    len(fires.Features),
		ActiveAlerts:      len(alerts.Features),
		AvgMagnitude:      avg,
		LastUpdated:       s.clock.Now().UTC(),
	}
}

// CacheEntries reports the number of cache entries, expired ones included.
// Exposed for the readiness endpoint.
func (s *Service) CacheEntries() int {
	return s.cache.len()
}

// cached looks up a collection and records the hit or miss.
func (s *Service) cached(cat Category, key string) (*FeatureCollection, bool) {
	v, ok := s.cache.get(key)
	if !ok {
		s.metrics.CacheLookups.WithLabelValues(cat.String(), "miss").Inc()
		return nil, false
	}
	s.metrics.CacheLookups.WithLabelValues(cat.String(), "hit").Inc()
	fc, ok := v.(*FeatureCollection)
	return fc, ok
}

// store caches a collection and counts the features served.
func (s *Service) store(cat Category, key string, fc *FeatureCollection) {
	s.cache.put(key, fc)
	s.metrics.FeaturesServed.WithLabelValues(cat.String()).Add(float64(len(fc.Features)))
}

// observeFetch times one fetch end to end, cache hits included.
func (s *Service) observeFetch(cat Category) func() {
	start := time.Now()
	return func() {
		s.metrics.FetchDuration.WithLabelValues(cat.String()).Observe(time.Since(start).Seconds())
	}
}
