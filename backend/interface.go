// Package backend contains the context-source adapters the router can
// dispatch a sub-query to: vector knowledge-base search, the structured
// attendance database, and web search.
package backend

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups that completed but matched nothing.
// The router treats it the same as any other backend failure: the
// sub-query contributes no context.
var ErrNotFound = errors.New("backend: not found")

// VectorSearcher retrieves knowledge-base chunks by semantic similarity.
// The query is the original user question; category selects the collection.
type VectorSearcher interface {
	Search(ctx context.Context, query string, category string) ([]string, error)
}

// StructuredLookup answers a sub-query from a structured data source.
type StructuredLookup interface {
	Lookup(ctx context.Context, query string) (string, error)
}

// WebSearcher retrieves web results for a sub-query.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// SearchResult is one web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Registry holds the backend clients, constructed once at startup and
// passed by reference into the router. Nothing looks clients up through
// ambient global state, so the core is testable with fakes.
type Registry struct {
	Vector   VectorSearcher
	Database StructuredLookup
	Web      WebSearcher
}

// NewRegistry creates a new Registry.
func NewRegistry(vector VectorSearcher, database StructuredLookup, web WebSearcher) *Registry {
	return &Registry{
		Vector:   vector,
		Database: database,
		Web:      web,
	}
}
