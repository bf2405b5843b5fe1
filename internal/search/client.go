package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	maxResults     = 48
	requestTimeout = 5 * time.Second
)

// Client queries the book-search provider's ItemSearch endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
}

// NewClient creates a search client for the provider at baseURL.
func NewClient(baseURL, key string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		key:        key,
	}
}

func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	params := url.Values{}
	params.Set("TTBKey", c.key)
	params.Set("Query", query)
	params.Set("QueryType", "Keyword")
	params.Set("MaxResults", strconv.Itoa(maxResults))
	params.Set("Start", "1")
	params.Set("SearchTarget", "Book")
	params.Set("output", "js")
	params.Set("Version", "20131101")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("search provider: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Item []struct {
			Title         string `json:"title"`
			Author        string `json:"author"`
			Publisher     string `json:"publisher"`
			PubDate       string `json:"pubDate"`
			Cover         string `json:"cover"`
			PriceStandard int    `json:"priceStandard"`
			PriceSales    int    `json:"priceSales"`
			Link          string `json:"link"`
			ISBN13        string `json:"isbn13"`
			ISBN          string `json:"isbn"`
		} `json:"item"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("search provider: decode response: %w", err)
	}

	items := make([]Item, 0, len(payload.Item))

	for _, it := range payload.Item {
		isbn := it.ISBN13
		if isbn == "" {
			isbn = it.ISBN
		}

		items = append(items, Item{
			Title:         it.Title,
			Author:        it.Author,
			Publisher:     it.Publisher,
			PubDate:       it.PubDate,
			Cover:         it.Cover,
			PriceStandard: it.PriceStandard,
			PriceSales:    it.PriceSales,
			Link:          it.Link,
			ISBN13:        isbn,
		})
	}

	return items, nil
}

// Compile-time check.
var _ Searcher = (*Client)(nil)
