package store

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/aqua777/go-ragbot/schema"
)

// ChromemStore is a vector store implementation using chromem-go.
// Collections are created lazily, one per knowledge base.
type ChromemStore struct {
	db *chromem.DB

	mu          sync.Mutex
	collections map[string]*chromem.Collection
}

// NewChromemStore creates a new ChromemStore.
// If persistPath is empty, the store will be in-memory only.
func NewChromemStore(persistPath string) (*ChromemStore, error) {
	var db *chromem.DB
	if persistPath != "" {
		var err error
		db, err = chromem.NewPersistentDB(persistPath, false)
		if err != nil {
			return nil, fmt.Errorf("failed to create persistent chromem db: %w", err)
		}
	} else {
		db = chromem.NewDB()
	}

	return &ChromemStore{
		db:          db,
		collections: make(map[string]*chromem.Collection),
	}, nil
}

// collection returns the named collection, creating it if needed.
// Embeddings are computed externally and passed explicitly to Add/Query,
// so no embedding function is registered with chromem.
func (s *ChromemStore) collection(name string) (*chromem.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[name]; ok {
		return c, nil
	}

	c, err := s.db.GetOrCreateCollection(name, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create collection %q: %w", name, err)
	}
	s.collections[name] = c
	return c, nil
}

// Add adds nodes to the named collection.
func (s *ChromemStore) Add(ctx context.Context, collection string, nodes []schema.Node) ([]string, error) {
	c, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	docs := make([]chromem.Document, len(nodes))
	ids := make([]string, len(nodes))

	for i, node := range nodes {
		if len(node.Embedding) == 0 {
			return nil, fmt.Errorf("node %s has no embedding", node.ID)
		}

		// chromem-go metadata is map[string]string.
		meta := make(map[string]string)
		for k, v := range node.Metadata {
			meta[k] = fmt.Sprintf("%v", v)
		}
		if node.RefDocID != "" {
			meta["_ref_doc_id"] = node.RefDocID
		}

		embedding32 := make([]float32, len(node.Embedding))
		for j, v := range node.Embedding {
			embedding32[j] = float32(v)
		}

		docs[i] = chromem.Document{
			ID:        node.ID,
			Content:   node.Text,
			Metadata:  meta,
			Embedding: embedding32,
		}
		ids[i] = node.ID
	}

	if err := c.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("failed to add documents to collection %q: %w", collection, err)
	}

	return ids, nil
}

// Query finds the top-k most similar nodes to the query embedding.
func (s *ChromemStore) Query(ctx context.Context, query schema.VectorStoreQuery) ([]schema.NodeWithScore, error) {
	c, err := s.collection(query.Collection)
	if err != nil {
		return nil, err
	}

	// chromem errors when asked for more results than the collection holds.
	topK := query.TopK
	if count := c.Count(); topK > count {
		topK = count
	}
	if topK == 0 {
		return nil, nil
	}

	queryEmbedding32 := make([]float32, len(query.Embedding))
	for i, v := range query.Embedding {
		queryEmbedding32[i] = float32(v)
	}

	res, err := c.QueryEmbedding(ctx, queryEmbedding32, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %q: %w", query.Collection, err)
	}

	nodes := make([]schema.NodeWithScore, len(res))
	for i, doc := range res {
		meta := make(map[string]interface{})
		refDocID := ""
		for k, v := range doc.Metadata {
			if k == "_ref_doc_id" {
				refDocID = v
				continue
			}
			meta[k] = v
		}

		nodes[i] = schema.NodeWithScore{
			Node: schema.Node{
				ID:       doc.ID,
				Text:     doc.Content,
				Type:     schema.ObjectTypeText,
				Metadata: meta,
				RefDocID: refDocID,
			},
			Score: float64(doc.Similarity),
		}
	}

	return nodes, nil
}

// Ensure ChromemStore implements VectorStore.
var _ VectorStore = (*ChromemStore)(nil)
