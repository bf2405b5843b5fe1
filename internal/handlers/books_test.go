package handlers_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hkmoon/bookcheck/internal/analytics"
	"github.com/hkmoon/bookcheck/internal/availability"
	"github.com/hkmoon/bookcheck/internal/handlers"
	"github.com/hkmoon/bookcheck/internal/library"
	"github.com/hkmoon/bookcheck/internal/search"
	"github.com/hkmoon/bookcheck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testISBN = "9788937460449"

var errUpstream = errors.New("upstream failure")

// staticLibraries is a library.Provider over a fixed record set.
type staticLibraries struct {
	index *library.Index
}

func (s *staticLibraries) Index() *library.Index {
	return s.index
}

func testLibraries() *staticLibraries {
	return &staticLibraries{index: library.NewIndex([]library.Record{
		{Name: "강남도서관", Code: "111001", Region: "서울특별시", District: "강남구"},
		{Name: "역삼도서관", Code: "111002", Region: "서울특별시", District: "강남구"},
		{Name: "마포도서관", Code: "111003", Region: "서울특별시", District: "마포구"},
	})}
}

type fakeSearcher struct {
	items []search.Item
	err   error
	calls int
}

func (f *fakeSearcher) Search(_ context.Context, _ string) ([]search.Item, error) {
	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	return f.items, nil
}

type fakeChecker struct {
	mu      sync.Mutex
	hasBook map[string]bool
	failing map[string]bool
	calls   int
}

func (f *fakeChecker) Check(_ context.Context, _, libraryCode string) (bool, bool, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.failing[libraryCode] {
		return false, false, errUpstream
	}

	return f.hasBook[libraryCode], f.hasBook[libraryCode], nil
}

// noopPublish returns a publish function that always succeeds.
func noopPublish[T any]() analytics.Publish[T] {
	return func(_ *T) error { return nil }
}

func newTestHandler(searcher search.Searcher, checker availability.Checker) *handlers.BookHandler {
	return handlers.NewBookHandler(
		testLibraries(),
		searcher,
		availability.NewAggregator(checker, zap.NewNop()),
		store.NewCacheMemoryStore(),
		noopPublish[analytics.SearchPerformedEvent](),
		noopPublish[analytics.AvailabilityCheckedEvent](),
		zap.NewNop(),
	)
}

func TestSearchBooks(t *testing.T) {
	t.Run("returns mapped items", func(t *testing.T) {
		searcher := &fakeSearcher{items: []search.Item{{Title: "데미안", ISBN13: testISBN}}}
		handler := newTestHandler(searcher, &fakeChecker{})

		resp, err := handler.SearchBooks(context.Background(), &handlers.SearchRequest{Query: "데미안"})

		require.NoError(t, err)
		require.Len(t, resp.Body.Item, 1)
		assert.Equal(t, "데미안", resp.Body.Item[0].Title)
	})

	t.Run("rejects blank query", func(t *testing.T) {
		handler := newTestHandler(&fakeSearcher{}, &fakeChecker{})

		_, err := handler.SearchBooks(context.Background(), &handlers.SearchRequest{Query: "   "})

		assert.Error(t, err)
	})

	t.Run("serves repeated query from cache", func(t *testing.T) {
		searcher := &fakeSearcher{items: []search.Item{{Title: "데미안"}}}
		handler := newTestHandler(searcher, &fakeChecker{})

		_, err := handler.SearchBooks(context.Background(), &handlers.SearchRequest{Query: "데미안"})
		require.NoError(t, err)

		resp, err := handler.SearchBooks(context.Background(), &handlers.SearchRequest{Query: "데미안"})

		require.NoError(t, err)
		assert.Equal(t, 1, searcher.calls, "second request must hit the cache")
		require.Len(t, resp.Body.Item, 1)
		assert.Equal(t, "데미안", resp.Body.Item[0].Title)
	})

	t.Run("surfaces upstream failure", func(t *testing.T) {
		handler := newTestHandler(&fakeSearcher{err: errUpstream}, &fakeChecker{})

		_, err := handler.SearchBooks(context.Background(), &handlers.SearchRequest{Query: "데미안"})

		assert.Error(t, err)
	})
}

func TestCheckLibrary(t *testing.T) {
	t.Run("returns availability for a known library", func(t *testing.T) {
		checker := &fakeChecker{hasBook: map[string]bool{"111001": true}}
		handler := newTestHandler(&fakeSearcher{}, checker)

		resp, err := handler.CheckLibrary(context.Background(), &handlers.CheckLibraryRequest{
			ISBN:        testISBN,
			LibraryCode: "111001",
		})

		require.NoError(t, err)
		require.Len(t, resp.Body.Results, 1)
		assert.Equal(t, "강남도서관", resp.Body.Results[0].LibraryName)
		assert.True(t, resp.Body.Results[0].HasBook)
	})

	t.Run("rejects missing parameters", func(t *testing.T) {
		handler := newTestHandler(&fakeSearcher{}, &fakeChecker{})

		_, err := handler.CheckLibrary(context.Background(), &handlers.CheckLibraryRequest{ISBN: testISBN})
		assert.Error(t, err)

		_, err = handler.CheckLibrary(context.Background(), &handlers.CheckLibraryRequest{LibraryCode: "111001"})
		assert.Error(t, err)
	})

	t.Run("rejects malformed isbn", func(t *testing.T) {
		handler := newTestHandler(&fakeSearcher{}, &fakeChecker{})

		_, err := handler.CheckLibrary(context.Background(), &handlers.CheckLibraryRequest{
			ISBN:        "12345",
			LibraryCode: "111001",
		})

		assert.Error(t, err)
	})

	t.Run("rejects unknown library code", func(t *testing.T) {
		handler := newTestHandler(&fakeSearcher{}, &fakeChecker{})

		_, err := handler.CheckLibrary(context.Background(), &handlers.CheckLibraryRequest{
			ISBN:        testISBN,
			LibraryCode: "999999",
		})

		assert.Error(t, err)
	})

	t.Run("surfaces upstream failure for single target", func(t *testing.T) {
		checker := &fakeChecker{failing: map[string]bool{"111001": true}}
		handler := newTestHandler(&fakeSearcher{}, checker)

		_, err := handler.CheckLibrary(context.Background(), &handlers.CheckLibraryRequest{
			ISBN:        testISBN,
			LibraryCode: "111001",
		})

		assert.Error(t, err)
	})

	t.Run("serves repeated check from cache", func(t *testing.T) {
		checker := &fakeChecker{hasBook: map[string]bool{"111001": true}}
		handler := newTestHandler(&fakeSearcher{}, checker)

		req := &handlers.CheckLibraryRequest{ISBN: testISBN, LibraryCode: "111001"}

		_, err := handler.CheckLibrary(context.Background(), req)
		require.NoError(t, err)

		resp, err := handler.CheckLibrary(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 1, checker.calls, "second request must hit the cache")
		require.Len(t, resp.Body.Results, 1)
		assert.True(t, resp.Body.Results[0].HasBook)
	})
}

func TestCheckRegion(t *testing.T) {
	t.Run("checks every library in the district", func(t *testing.T) {
		checker := &fakeChecker{hasBook: map[string]bool{"111001": true}}
		handler := newTestHandler(&fakeSearcher{}, checker)

		resp, err := handler.CheckRegion(context.Background(), &handlers.CheckRegionRequest{
			ISBN:     testISBN,
			Region:   "서울특별시",
			District: "강남구",
		})

		require.NoError(t, err)
		require.Len(t, resp.Body.Results, 2)
		assert.Equal(t, "강남도서관", resp.Body.Results[0].LibraryName)
		assert.True(t, resp.Body.Results[0].HasBook)
		assert.Equal(t, "역삼도서관", resp.Body.Results[1].LibraryName)
		assert.False(t, resp.Body.Results[1].HasBook)
	})

	t.Run("a failing library yields a negative result in order", func(t *testing.T) {
		checker := &fakeChecker{
			hasBook: map[string]bool{"111001": true, "111002": true},
			failing: map[string]bool{"111001": true},
		}
		handler := newTestHandler(&fakeSearcher{}, checker)

		resp, err := handler.CheckRegion(context.Background(), &handlers.CheckRegionRequest{
			ISBN:     testISBN,
			Region:   "서울특별시",
			District: "강남구",
		})

		require.NoError(t, err)
		require.Len(t, resp.Body.Results, 2)
		assert.Equal(t, availability.Result{LibraryName: "강남도서관"}, resp.Body.Results[0])
		assert.True(t, resp.Body.Results[1].HasBook)
	})

	t.Run("rejects missing parameters", func(t *testing.T) {
		handler := newTestHandler(&fakeSearcher{}, &fakeChecker{})

		_, err := handler.CheckRegion(context.Background(), &handlers.CheckRegionRequest{
			ISBN:   testISBN,
			Region: "서울특별시",
		})

		assert.Error(t, err)
	})

	t.Run("returns empty results when no libraries match", func(t *testing.T) {
		checker := &fakeChecker{}
		handler := newTestHandler(&fakeSearcher{}, checker)

		resp, err := handler.CheckRegion(context.Background(), &handlers.CheckRegionRequest{
			ISBN:     testISBN,
			Region:   "서울특별시",
			District: "없는구",
		})

		require.NoError(t, err)
		assert.NotNil(t, resp.Body.Results)
		assert.Empty(t, resp.Body.Results)
		assert.Zero(t, checker.calls)
	})

	t.Run("serves repeated check from cache", func(t *testing.T) {
		checker := &fakeChecker{hasBook: map[string]bool{"111001": true}}
		handler := newTestHandler(&fakeSearcher{}, checker)

		req := &handlers.CheckRegionRequest{ISBN: testISBN, Region: "서울특별시", District: "강남구"}

		_, err := handler.CheckRegion(context.Background(), req)
		require.NoError(t, err)

		callsAfterFirst := checker.calls

		resp, err := handler.CheckRegion(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, callsAfterFirst, checker.calls, "second request must hit the cache")
		assert.Len(t, resp.Body.Results, 2)
	})
}
