package backend

import (
	"context"
	"fmt"

	"github.com/aqua777/go-ragbot/embedding"
	"github.com/aqua777/go-ragbot/schema"
	"github.com/aqua777/go-ragbot/store"
)

// DefaultTopK is the default number of chunks fetched per vector search.
const DefaultTopK = 5

// VectorSearch retrieves knowledge-base chunks from a vector store.
// The category selects the collection; the query text is embedded and
// matched against the stored chunk embeddings.
type VectorSearch struct {
	store store.VectorStore
	embed embedding.EmbeddingModel
	topK  int
}

// VectorSearchOption configures a VectorSearch.
type VectorSearchOption func(*VectorSearch)

// WithTopK sets the number of chunks to retrieve.
func WithTopK(topK int) VectorSearchOption {
	return func(v *VectorSearch) {
		v.topK = topK
	}
}

// NewVectorSearch creates a new VectorSearch.
func NewVectorSearch(vs store.VectorStore, embed embedding.EmbeddingModel, opts ...VectorSearchOption) *VectorSearch {
	v := &VectorSearch{
		store: vs,
		embed: embed,
		topK:  DefaultTopK,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Search embeds query and returns the top-k chunk texts from the category's
// collection. An empty result is returned as ErrNotFound so callers do not
// have to special-case zero-hit searches.
func (v *VectorSearch) Search(ctx context.Context, query string, category string) ([]string, error) {
	emb, err := v.embed.GetQueryEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}

	results, err := v.store.Query(ctx, schema.VectorStoreQuery{
		Collection: category,
		Embedding:  emb,
		TopK:       v.topK,
	})
	if err != nil {
		return nil, fmt.Errorf("vector search failed for collection %q: %w", category, err)
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}

	chunks := make([]string, len(results))
	for i, r := range results {
		chunks[i] = r.Node.Text
	}
	return chunks, nil
}

// Ensure VectorSearch implements VectorSearcher.
var _ VectorSearcher = (*VectorSearch)(nil)
