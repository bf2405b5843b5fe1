// Package search talks to the keyword book-search provider.
package search

import "context"

// Item is one catalog entry returned to clients.
type Item struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	PubDate       string `json:"pubDate"`
	Cover         string `json:"cover"`
	PriceStandard int    `json:"priceStandard"`
	PriceSales    int    `json:"priceSales"`
	Link          string `json:"link"`
	ISBN13        string `json:"isbn13"`
}

// Searcher finds catalog items for a keyword query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Item, error)
}
