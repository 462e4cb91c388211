package disaster

import "github.com/disasterwatch/disasterwatch/internal/geo"

// FilterByRegion restricts a collection to features whose point lies inside
// the region's bounding box, inclusive on all edges.
//
// RegionAll returns the input unchanged. A region unknown to the registry
// yields an empty collection rather than an error. Retained features are
// stamped with region_name/region_code properties; the input collection and
// its property maps are left untouched. Feature order is preserved, so
// filtering the output by the same region again is a no-op.
func FilterByRegion(fc *FeatureCollection, region geo.Region) *FeatureCollection {
	if region == geo.RegionAll {
		return fc
	}

	bounds, ok := geo.BoundsFor(region)
	if !ok {
		return EmptyCollection()
	}

	filtered := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		lon, lat, ok := pointCoords(f)
		if !ok {
			// Malformed geometry is skipped, not an error.
			continue
		}
		if !bounds.Contains(lat, lon) {
			continue
		}
		filtered = append(filtered, stampRegion(f, bounds))
	}

	out := NewFeatureCollection(filtered)
	out.Metadata = &CollectionMetadata{
		RegionName:    bounds.Name,
		RegionCode:    bounds.Code,
		TotalFiltered: len(filtered),
	}
	return out
}

// stampRegion returns a copy of the feature whose properties carry the
// region identity. The property map is copied so the source collection
// stays immutable.
func stampRegion(f Feature, bounds geo.Bounds) Feature {
	props := make(map[string]any, len(f.Properties)+2)
	for k, v := range f.Properties {
		props[k] = v
	}
	props["region_name"] = bounds.Name
	props["region_code"] = bounds.Code
	f.Properties = props
	return f
}
