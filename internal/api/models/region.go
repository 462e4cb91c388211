package models

// RegionList wraps the supported region listing.
type RegionList struct {
	Regions []RegionSummary `json:"regions"`
}

// RegionSummary describes one filterable region.
type RegionSummary struct {
	Code   string     `json:"code"`
	Name   string     `json:"name"`
	Center [2]float64 `json:"center"` // [lat, lon]
}

// RegionBounds describes a region's bounding box and center.
type RegionBounds struct {
	Region    string  `json:"region"`
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	MinLat    float64 `json:"minLat"`
	MaxLat    float64 `json:"maxLat"`
	MinLon    float64 `json:"minLon"`
	MaxLon    float64 `json:"maxLon"`
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
}
