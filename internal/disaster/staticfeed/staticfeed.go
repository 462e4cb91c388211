// Package staticfeed serves the fixed wildfire, weather-alert and
// relief-center datasets. It stands in for live upstream feeds behind the
// same fetch path the seismic provider uses, so swapping in a real feed
// later only touches this package.
package staticfeed

import "github.com/disasterwatch/disasterwatch/internal/disaster"

// Source returns fixed feature sets per category.
type Source struct{}

// NewSource creates the fixture source.
func NewSource() *Source {
	return &Source{}
}

// Wildfires returns the active wildfire dataset. Collections are rebuilt per
// call so downstream annotation can never leak between requests.
func (s *Source) Wildfires() *disaster.FeatureCollection {
	return disaster.NewFeatureCollection([]disaster.Feature{
		disaster.NewFeature("wf-uae-hajar", 55.2708, 25.2048, map[string]any{
			"title":        "Al Hajar Mountains Brush Fire",
			"severity":     "Low",
			"acres_burned": 120,
			"containment":  85,
			"color":        "yellow",
			"type":         disaster.CategoryWildfire.String(),
		}),
		disaster.NewFeature("wf-uae-emptyquarter", 56.0833, 24.3667, map[string]any{
			"title":        "Empty Quarter Vegetation Fire",
			"severity":     "Low",
			"acres_burned": 85,
			"containment":  95,
			"color":        "green",
			"type":         disaster.CategoryWildfire.String(),
		}),
		disaster.NewFeature("wf-ca-alberta", -114.0719, 51.0447, map[string]any{
			"title":        "Alberta Forest Fire",
			"severity":     "High",
			"acres_burned": 45000,
			"containment":  15,
			"color":        "red",
			"type":         disaster.CategoryWildfire.String(),
		}),
		disaster.NewFeature("wf-ca-bc", -123.1207, 49.2827, map[string]any{
			"title":        "British Columbia Mountain Fire",
			"severity":     "Extreme",
			"acres_burned": 78000,
			"containment":  5,
			"color":        "darkred",
			"type":         disaster.CategoryWildfire.String(),
		}),
		disaster.NewFeature("wf-ca-sask", -106.3468, 52.1332, map[string]any{
			"title":        "Saskatchewan Prairie Fire",
			"severity":     "Medium",
			"acres_burned": 12000,
			"containment":  40,
			"color":        "orange",
			"type":         disaster.CategoryWildfire.String(),
		}),
		disaster.NewFeature("wf-ca-ontario", -79.3832, 43.6532, map[string]any{
			"title":        "Ontario Conservation Area Fire",
			"severity":     "Low",
			"acres_burned": 850,
			"containment":  75,
			"color":        "yellow",
			"type":         disaster.CategoryWildfire.String(),
		}),
	})
}

// WeatherAlerts returns the active weather-alert dataset.
func (s *Source) WeatherAlerts() *disaster.FeatureCollection {
	return disaster.NewFeatureCollection([]disaster.Feature{
		disaster.NewFeature("wa-uae-dubai", 55.2708, 25.2048, map[string]any{
			"title":      "Dust Storm Warning - Dubai",
			"severity":   "Medium",
			"alert_type": "Dust Storm",
			"color":      "orange",
			"type":       disaster.CategoryWeatherAlert.String(),
		}),
		disaster.NewFeature("wa-uae-abudhabi", 54.3773, 24.4539, map[string]any{
			"title":      "Extreme Heat Advisory - Abu Dhabi",
			"severity":   "High",
			"alert_type": "Extreme Heat",
			"color":      "red",
			"type":       disaster.CategoryWeatherAlert.String(),
		}),
		disaster.NewFeature("wa-ca-ottawa", -75.6972, 45.4215, map[string]any{
			"title":      "Severe Thunderstorm Watch - Ottawa",
			"severity":   "Medium",
			"alert_type": "Thunderstorm",
			"color":      "orange",
			"type":       disaster.CategoryWeatherAlert.String(),
		}),
		disaster.NewFeature("wa-ca-calgary", -114.0719, 51.0447, map[string]any{
			"title":      "Blizzard Warning - Calgary",
			"severity":   "Extreme",
			"alert_type": "Blizzard",
			"color":      "purple",
			"type":       disaster.CategoryWeatherAlert.String(),
		}),
	})
}

// ReliefCenters returns the relief-center dataset.
func (s *Source) ReliefCenters() *disaster.FeatureCollection {
	return disaster.NewFeatureCollection([]disaster.Feature{
		disaster.NewFeature("rc-uae-dubai", 55.2708, 25.2048, map[string]any{
			"name":              "Dubai Emergency Response Center",
			"capacity":          300,
			"current_occupancy": 45,
			"resources":         []string{"Medical", "Food", "Shelter", "Transportation"},
			"contact":           "+971-4-123-4567",
			"type":              disaster.CategoryReliefCenter.String(),
		}),
		disaster.NewFeature("rc-uae-abudhabi", 54.3773, 24.4539, map[string]any{
			"name":              "Abu Dhabi Crisis Management Center",
			"capacity":          500,
			"current_occupancy": 120,
			"resources":         []string{"Medical", "Food", "Shelter", "Communications"},
			"contact":           "+971-2-987-6543",
			"type":              disaster.CategoryReliefCenter.String(),
		}),
		disaster.NewFeature("rc-uae-sharjah", 56.3269, 25.3382, map[string]any{
			"name":              "Sharjah Emergency Services Hub",
			"capacity":          200,
			"current_occupancy": 30,
			"resources":         []string{"Medical", "Food", "Shelter"},
			"contact":           "+971-6-555-0123",
			"type":              disaster.CategoryReliefCenter.String(),
		}),
		disaster.NewFeature("rc-ca-ottawa", -75.6972, 45.4215, map[string]any{
			"name":              "Ottawa Emergency Management Center",
			"capacity":          800,
			"current_occupancy": 250,
			"resources":         []string{"Medical", "Food", "Shelter", "Mental Health"},
			"contact":           "+1-613-555-0100",
			"type":              disaster.CategoryReliefCenter.String(),
		}),
		disaster.NewFeature("rc-ca-calgary", -114.0719, 51.0447, map[string]any{
			"name":              "Calgary Disaster Relief Station",
			"capacity":          600,
			"current_occupancy": 180,
			"resources":         []string{"Medical", "Food", "Shelter", "Pet Care"},
			"contact":           "+1-403-555-0200",
			"type":              disaster.CategoryReliefCenter.String(),
		}),
		disaster.NewFeature("rc-ca-vancouver", -123.1207, 49.2827, map[string]any{
			"name":              "Vancouver Emergency Response Hub",
			"capacity":          1000,
			"current_occupancy": 420,
			"resources":         []string{"Medical", "Food", "Shelter", "Transportation", "Translation"},
			"contact":           "+1-604-555-0300",
			"type":              disaster.CategoryReliefCenter.String(),
		}),
	})
}
