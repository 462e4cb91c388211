package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/disasterwatch/disasterwatch/internal/api/models"
	"github.com/disasterwatch/disasterwatch/internal/api/response"
	"github.com/disasterwatch/disasterwatch/internal/geo"
)

// RegionHandler handles region metadata endpoints.
type RegionHandler struct{}

// NewRegionHandler creates a new RegionHandler.
func NewRegionHandler() *RegionHandler {
	return &RegionHandler{}
}

// ListRegions handles GET /v1/regions - list the filterable regions.
func (h *RegionHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	infos := geo.List()
	regions := make([]models.RegionSummary, 0, len(infos))
	for _, info := range infos {
		regions = append(regions, models.RegionSummary{
			Code:   info.Code,
			Name:   info.Name,
			Center: info.Center,
		})
	}
	response.JSON(w, r, http.StatusOK, models.RegionList{Regions: regions})
}

// GetRegionBounds handles GET /v1/regions/{region}/bounds.
func (h *RegionHandler) GetRegionBounds(w http.ResponseWriter, r *http.Request) {
	region := geo.Region(chi.URLParam(r, "region"))

	bounds, ok := geo.BoundsFor(region)
	if !ok {
		response.NotFound(w, r, "unknown region: "+string(region))
		return
	}

	response.JSON(w, r, http.StatusOK, models.RegionBounds{
		Region:    string(region),
		Name:      bounds.Name,
		Code:      bounds.Code,
		MinLat:    bounds.MinLat,
		MaxLat:    bounds.MaxLat,
		MinLon:    bounds.MinLon,
		MaxLon:    bounds.MaxLon,
		CenterLat: bounds.CenterLat,
		CenterLon: bounds.CenterLon,
	})
}
