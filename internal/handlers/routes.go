package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hkmoon/bookcheck/internal/ratelimit"
)

// RegisterRoutes registers the catalog and availability routes. The listing
// endpoint serves only local index data and is exempt from rate limiting;
// everything that reaches an external provider is limited.
func RegisterRoutes(api huma.API, books *BookHandler, libraries *LibraryHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/libraries",
		Summary:     "List libraries grouped by region and district",
		Description: "Returns the known regions, their districts, and the libraries within each district.",
		Tags:        []string{"Libraries"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, libraries.ListLibraries)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/search",
		Summary:     "Search the book catalog",
		Description: "Searches the external catalog by keyword. Responses are cached for five minutes per query.",
		Tags:        []string{"Books"},
	}, books.SearchBooks)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/check_library",
		Summary:     "Check availability at a single library",
		Description: "Checks whether one library holds the given ISBN and whether it can be loaned.",
		Tags:        []string{"Availability"},
	}, books.CheckLibrary)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/check_region",
		Summary:     "Check availability across a district",
		Description: "Checks every library in the given region and district. Unreachable libraries report negative availability instead of failing the request.",
		Tags:        []string{"Availability"},
	}, books.CheckRegion)
}
