package handlers_test

import (
	"context"
	"testing"

	"github.com/hkmoon/bookcheck/internal/handlers"
	"github.com/hkmoon/bookcheck/internal/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLibraries(t *testing.T) {
	handler := handlers.NewLibraryHandler(testLibraries())

	resp, err := handler.ListLibraries(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"서울특별시"}, resp.Body.Regions)
	assert.Equal(t, map[string][]string{"서울특별시": {"강남구", "마포구"}}, resp.Body.DistrictsByRegion)

	gangnam := resp.Body.LibrariesByDistrict[library.GroupKey("서울특별시", "강남구")]
	require.Len(t, gangnam, 2)
	assert.Equal(t, handlers.LibrarySummary{LibraryName: "강남도서관", LibraryCode: "111001"}, gangnam[0])
	assert.Equal(t, handlers.LibrarySummary{LibraryName: "역삼도서관", LibraryCode: "111002"}, gangnam[1])

	mapo := resp.Body.LibrariesByDistrict[library.GroupKey("서울특별시", "마포구")]
	require.Len(t, mapo, 1)
	assert.Equal(t, "마포도서관", mapo[0].LibraryName)
}
