// Package geo provides the static registry of filterable regions.
package geo

// Region identifies a geographic filter scope. RegionAll means no
// restriction; everything else maps to a bounding box in the registry.
type Region string

// Supported regions. The set is closed and defined at process start.
const (
	RegionUAE    Region = "uae"
	RegionCanada Region = "canada"
	RegionAll    Region = "all"
)

// Bounds describes a region's bounding rectangle and center point.
// MinLat <= MaxLat and MinLon <= MaxLon always hold.
type Bounds struct {
	Name      string
	Code      string
	MinLat    float64
	MaxLat    float64
	MinLon    float64
	MaxLon    float64
	CenterLat float64
	CenterLon float64
}

// Contains reports whether the point lies inside the bounds.
// Edges are inclusive on both axes.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// RegionInfo is the listing shape exposed to API callers.
type RegionInfo struct {
	Code   string     `json:"code"`
	Name   string     `json:"name"`
	Center [2]float64 `json:"center"` // [lat, lon]
}

// regionOrder fixes the listing order; maps do not iterate deterministically.
var regionOrder = []Region{RegionUAE, RegionCanada}

var regionBounds = map[Region]Bounds{
	RegionUAE: {
		Name:      "United Arab Emirates",
		Code:      "AE",
		MinLat:    22.5,
		MaxLat:    26.5,
		MinLon:    51.0,
		MaxLon:    56.5,
		CenterLat: 24.0,
		CenterLon: 54.0,
	},
	RegionCanada: {
		Name:      "Canada",
		Code:      "CA",
		MinLat:    41.0,
		MaxLat:    84.0,
		MinLon:    -141.0,
		MaxLon:    -52.0,
		CenterLat: 60.0,
		CenterLon: -95.0,
	},
}

// BoundsFor returns the bounds for a region. The second return value is
// false for RegionAll and for regions the registry does not know.
func BoundsFor(region Region) (Bounds, bool) {
	b, ok := regionBounds[region]
	return b, ok
}

// Valid reports whether region is a member of the closed region set.
func Valid(region Region) bool {
	if region == RegionAll {
		return true
	}
	_, ok := regionBounds[region]
	return ok
}

// List returns all bounded regions in a stable order.
func List() []RegionInfo {
	infos := make([]RegionInfo, 0, len(regionOrder))
	for _, r := range regionOrder {
		b := regionBounds[r]
		infos = append(infos, RegionInfo{
			Code:   string(r),
			Name:   b.Name,
			Center: [2]float64{b.CenterLat, b.CenterLon},
		})
	}
	return infos
}
