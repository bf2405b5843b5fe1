package search_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hkmoon/bookcheck/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	t.Run("maps provider items", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "test-key", q.Get("TTBKey"))
			assert.Equal(t, "데미안", q.Get("Query"))
			assert.Equal(t, "Keyword", q.Get("QueryType"))
			assert.Equal(t, "48", q.Get("MaxResults"))
			assert.Equal(t, "Book", q.Get("SearchTarget"))
			assert.Equal(t, "js", q.Get("output"))

			_, _ = w.Write([]byte(`{"item":[{
				"title":"데미안",
				"author":"헤르만 헤세",
				"publisher":"민음사",
				"pubDate":"2000-12-20",
				"cover":"https://example.com/cover.jpg",
				"priceStandard":8000,
				"priceSales":7200,
				"link":"https://example.com/item",
				"isbn13":"9788937460449"
			}]}`))
		}))
		defer srv.Close()

		client := search.NewClient(srv.URL, "test-key")

		items, err := client.Search(context.Background(), "데미안")

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "데미안", items[0].Title)
		assert.Equal(t, "헤르만 헤세", items[0].Author)
		assert.Equal(t, 8000, items[0].PriceStandard)
		assert.Equal(t, 7200, items[0].PriceSales)
		assert.Equal(t, "9788937460449", items[0].ISBN13)
	})

	t.Run("falls back to isbn when isbn13 is absent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"item":[{"title":"옛날 책","isbn":"8937460440"}]}`))
		}))
		defer srv.Close()

		client := search.NewClient(srv.URL, "test-key")

		items, err := client.Search(context.Background(), "옛날 책")

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "8937460440", items[0].ISBN13)
	})

	t.Run("returns empty list when provider has no items", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := search.NewClient(srv.URL, "test-key")

		items, err := client.Search(context.Background(), "없는 책")

		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("fails on non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := search.NewClient(srv.URL, "test-key")

		_, err := client.Search(context.Background(), "데미안")

		assert.Error(t, err)
	})

	t.Run("fails on malformed response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		client := search.NewClient(srv.URL, "test-key")

		_, err := client.Search(context.Background(), "데미안")

		assert.Error(t, err)
	})

	t.Run("fails when provider is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		srv.Close()

		client := search.NewClient(srv.URL, "test-key")

		_, err := client.Search(context.Background(), "데미안")

		assert.Error(t, err)
	})
}
