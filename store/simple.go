package store

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/aqua777/go-ragbot/schema"
)

// SimpleVectorStore is an in-memory vector store using cosine similarity.
// Intended for tests and small data sets.
type SimpleVectorStore struct {
	mu          sync.RWMutex
	collections map[string][]schema.Node
}

// NewSimpleVectorStore creates a new SimpleVectorStore.
func NewSimpleVectorStore() *SimpleVectorStore {
	return &SimpleVectorStore{
		collections: make(map[string][]schema.Node),
	}
}

// Add adds nodes to the named collection.
func (s *SimpleVectorStore) Add(ctx context.Context, collection string, nodes []schema.Node) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(nodes))
	for i, node := range nodes {
		s.collections[collection] = append(s.collections[collection], node)
		ids[i] = node.ID
	}
	return ids, nil
}

// Query finds the top-k most similar nodes to the query embedding.
func (s *SimpleVectorStore) Query(ctx context.Context, query schema.VectorStoreQuery) ([]schema.NodeWithScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := s.collections[query.Collection]
	scored := make([]schema.NodeWithScore, 0, len(nodes))
	for _, node := range nodes {
		scored = append(scored, schema.NodeWithScore{
			Node:  node,
			Score: cosineSimilarity(query.Embedding, node.Embedding),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if query.TopK > 0 && len(scored) > query.TopK {
		scored = scored[:query.TopK]
	}
	return scored, nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 for mismatched or zero-length vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Ensure SimpleVectorStore implements VectorStore.
var _ VectorStore = (*SimpleVectorStore)(nil)
