// Package worker provides background cache warming for DisasterWatch.
package worker

import (
	"time"

	"github.com/disasterwatch/disasterwatch/internal/disaster"
	"github.com/disasterwatch/disasterwatch/internal/geo"
)

// RefreshConfig holds configuration for the cache warming job.
type RefreshConfig struct {
	// Regions are the region scopes to warm. If empty, uses
	// DefaultRefreshRegions.
	Regions []geo.Region

	// Concurrency is the number of concurrent warm operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each warm operation.
	// Default: 30 seconds
	Timeout time.Duration

	// RefreshEarthquakes enables earthquake warming.
	// Default: true
	RefreshEarthquakes bool

	// RefreshWildfires enables wildfire warming.
	// Default: true
	RefreshWildfires bool

	// RefreshWeatherAlerts enables weather-alert warming.
	// Default: true
	RefreshWeatherAlerts bool

	// RefreshReliefCenters enables relief-center warming.
	// Default: true
	RefreshReliefCenters bool
}

// DefaultRefreshConfig returns the default warming configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Regions:              DefaultRefreshRegions(),
		Concurrency:          3,
		Timeout:              30 * time.Second,
		RefreshEarthquakes:   true,
		RefreshWildfires:     true,
		RefreshWeatherAlerts: true,
		RefreshReliefCenters: true,
	}
}

// DefaultRefreshRegions returns the region scopes the dashboard queries:
// every bounded region plus the unfiltered global view.
func DefaultRefreshRegions() []geo.Region {
	regions := []geo.Region{geo.RegionAll}
	for _, info := range geo.List() {
		regions = append(regions, geo.Region(info.Code))
	}
	return regions
}

// Categories returns the categories enabled for warming.
func (c RefreshConfig) Categories() []disaster.Category {
	var cats []disaster.Category
	if c.RefreshEarthquakes {
		cats = append(cats, disaster.CategoryEarthquake)
	}
	if c.RefreshWildfires {
		cats = append(cats, disaster.CategoryWildfire)
	}
	if c.RefreshWeatherAlerts {
		cats = append(cats, disaster.CategoryWeatherAlert)
	}
	if c.RefreshReliefCenters {
		cats = append(cats, disaster.CategoryReliefCenter)
	}
	return cats
}

// TotalTasks returns the number of region/category warm operations per run.
func (c RefreshConfig) TotalTasks() int {
	return len(c.Regions) * len(c.Categories())
}
