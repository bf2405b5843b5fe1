package handlers

import (
	"github.com/hkmoon/bookcheck/internal/availability"
	"github.com/hkmoon/bookcheck/internal/search"
)

// SearchRequest is the request for a catalog keyword search.
type SearchRequest struct {
	Query string `doc:"Keyword to search the catalog for" example:"데미안" query:"query"`
}

// SearchResponse is the response for a catalog search.
type SearchResponse struct {
	Body SearchBody
}

// SearchBody carries the mapped catalog items.
type SearchBody struct {
	Item []search.Item `json:"item"`
}

// CheckLibraryRequest is the request for a single-library availability check.
type CheckLibraryRequest struct {
	ISBN        string `doc:"13-digit catalog identifier"             example:"9788936434120" query:"isbn"`
	LibraryCode string `doc:"Library code from the reference dataset" example:"111004"        query:"libraryCode"`
}

// CheckRegionRequest is the request for a region-wide availability check.
type CheckRegionRequest struct {
	ISBN     string `doc:"13-digit catalog identifier"    example:"9788936434120" query:"isbn"`
	Region   string `doc:"Top-level administrative area"  example:"서울특별시"    query:"region"`
	District string `doc:"Second-level administrative area" example:"강남구"      query:"district"`
}

// CheckResponse is the response for both availability checks.
type CheckResponse struct {
	Body CheckBody
}

// CheckBody carries per-library availability results.
type CheckBody struct {
	Results []availability.Result `json:"results"`
}

// LibrarySummary is the name/code pair listed per district.
type LibrarySummary struct {
	LibraryName string `json:"libraryName"`
	LibraryCode string `json:"libraryCode"`
}

// ListLibrariesResponse is the response for the library listing.
type ListLibrariesResponse struct {
	Body LibrariesBody
}

// LibrariesBody groups libraries by region and district.
type LibrariesBody struct {
	Regions             []string                    `json:"regions"`
	DistrictsByRegion   map[string][]string         `json:"districtsByRegion"`
	LibrariesByDistrict map[string][]LibrarySummary `json:"librariesByDistrict"`
}
