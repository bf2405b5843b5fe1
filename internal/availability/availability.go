// Package availability queries the library-availability provider and merges
// per-library results.
package availability

import "context"

// Result is the availability of one library for a given ISBN.
type Result struct {
	LibraryName   string `json:"libraryName"`
	HasBook       bool   `json:"hasBook"`
	LoanAvailable bool   `json:"loanAvailable"`
}

// Checker answers whether a single library holds an ISBN and whether it can
// be loaned.
type Checker interface {
	Check(ctx context.Context, isbn, libraryCode string) (hasBook, loanAvailable bool, err error)
}
