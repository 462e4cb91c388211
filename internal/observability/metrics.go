// Package observability holds the Prometheus instruments for the
// aggregation core.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for fetch operations.
type Metrics struct {
	CacheLookups     *prometheus.CounterVec // labels: category, result={hit,miss}
	UpstreamRequests *prometheus.CounterVec // labels: provider, outcome={success,error}
	FetchDuration    *prometheus.HistogramVec
	FeaturesServed   *prometheus.CounterVec // labels: category
}

// NewMetrics creates and registers all fetch metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.CacheLookups,
		m.UpstreamRequests,
		m.FetchDuration,
		m.FeaturesServed,
	)
	return m
}

// NewMetricsForTesting creates Metrics backed by unregistered collectors so
// parallel tests never hit "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disasterwatch",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by category and result.",
		}, []string{"category", "result"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disasterwatch",
			Name:      "upstream_requests_total",
			Help:      "Upstream feed requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "disasterwatch",
			Name:      "fetch_duration_seconds",
			Help:      "End-to-end duration of a category fetch, cache hits included.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"category"}),
		FeaturesServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disasterwatch",
			Name:      "features_served_total",
			Help:      "Features returned to callers by category.",
		}, []string{"category"}),
	}
}
