// Package store provides vector storage for the knowledge-base collections.
package store

import (
	"context"

	"github.com/aqua777/go-ragbot/schema"
)

// VectorStore is the interface for storing and querying embedded nodes.
// Each knowledge base lives in its own named collection.
type VectorStore interface {
	// Add adds nodes to the named collection.
	Add(ctx context.Context, collection string, nodes []schema.Node) ([]string, error)
	// Query finds the top-k most similar nodes to the query embedding.
	Query(ctx context.Context, query schema.VectorStoreQuery) ([]schema.NodeWithScore, error)
}
