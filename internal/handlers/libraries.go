package handlers

import (
	"context"

	"github.com/hkmoon/bookcheck/internal/library"
)

// LibraryHandler serves the library classification listing.
type LibraryHandler struct {
	libraries library.Provider
}

// NewLibraryHandler creates a new library handler.
func NewLibraryHandler(libraries library.Provider) *LibraryHandler {
	return &LibraryHandler{libraries: libraries}
}

func (h *LibraryHandler) ListLibraries(_ context.Context, _ *struct{}) (*ListLibrariesResponse, error) {
	ix := h.libraries.Index()

	resp := &ListLibrariesResponse{}
	resp.Body = LibrariesBody{
		Regions:             ix.Regions(),
		DistrictsByRegion:   make(map[string][]string),
		LibrariesByDistrict: make(map[string][]LibrarySummary),
	}

	for _, region := range ix.Regions() {
		districts := ix.Districts(region)
		resp.Body.DistrictsByRegion[region] = districts

		for _, district := range districts {
			key := library.GroupKey(region, district)

			for _, rec := range ix.LibrariesIn(region, district) {
				resp.Body.LibrariesByDistrict[key] = append(resp.Body.LibrariesByDistrict[key], LibrarySummary{
					LibraryName: rec.Name,
					LibraryCode: rec.Code,
				})
			}
		}
	}

	return resp, nil
}
