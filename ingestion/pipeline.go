// Package ingestion turns source documents into embedded, stored chunks.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aqua777/go-ragbot/embedding"
	"github.com/aqua777/go-ragbot/schema"
	"github.com/aqua777/go-ragbot/store"
	"github.com/aqua777/go-ragbot/textsplitter"
)

// Pipeline splits documents into chunks, embeds them and writes the
// resulting nodes to a vector store collection. Documents whose content
// hash has already been processed are skipped.
type Pipeline struct {
	splitter textsplitter.TextSplitter
	embedder embedding.EmbeddingModel
	store    store.VectorStore

	maxConcurrency int
	logger         *slog.Logger

	mu   sync.Mutex
	seen map[string]string // doc ID -> content hash
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineConcurrency bounds the embedding fan-out.
func WithPipelineConcurrency(n int) PipelineOption {
	return func(p *Pipeline) {
		p.maxConcurrency = n
	}
}

// WithPipelineLogger sets the logger.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a new ingestion Pipeline.
func NewPipeline(splitter textsplitter.TextSplitter, embedder embedding.EmbeddingModel, vectorStore store.VectorStore, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		splitter:       splitter,
		embedder:       embedder,
		store:          vectorStore,
		maxConcurrency: runtime.NumCPU(),
		logger:         slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		seen:           make(map[string]string),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.maxConcurrency < 1 {
		p.maxConcurrency = 1
	}

	return p
}

// Run ingests documents into the named collection and returns the stored
// nodes. Unchanged documents are skipped; a changed document with the same
// ID is re-ingested.
func (p *Pipeline) Run(ctx context.Context, collection string, docs []*schema.Document) ([]schema.Node, error) {
	var nodes []schema.Node
	for _, doc := range docs {
		docNode := doc.ToNode()
		if p.alreadyIngested(doc.ID, docNode.Hash) {
			p.logger.Info("skipping unchanged document", "doc_id", doc.ID, "collection", collection)
			continue
		}

		chunks := p.splitter.SplitText(doc.Text)
		for _, chunk := range chunks {
			node := schema.NewTextNode(chunk)
			node.RefDocID = doc.ID
			for k, v := range doc.Metadata {
				node.Metadata[k] = v
			}
			nodes = append(nodes, *node)
		}
	}

	if len(nodes) == 0 {
		return nil, nil
	}

	if err := p.embedNodes(ctx, nodes); err != nil {
		return nil, err
	}

	if _, err := p.store.Add(ctx, collection, nodes); err != nil {
		return nil, fmt.Errorf("failed to store nodes in collection %s: %w", collection, err)
	}

	p.markIngested(docs)
	p.logger.Info("documents ingested", "collection", collection, "documents", len(docs), "nodes", len(nodes))
	return nodes, nil
}

// embedNodes fills in the embedding of every node, bounded by the
// configured concurrency. The first failure aborts the batch.
func (p *Pipeline) embedNodes(ctx context.Context, nodes []schema.Node) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrency)
	for i := range nodes {
		i := i
		g.Go(func() error {
			vec, err := p.embedder.GetTextEmbedding(gctx, nodes[i].Text)
			if err != nil {
				return fmt.Errorf("failed to embed node %s: %w", nodes[i].ID, err)
			}
			nodes[i].Embedding = vec
			return nil
		})
	}
	return g.Wait()
}

func (p *Pipeline) alreadyIngested(docID, hash string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seen[docID] == hash
}

func (p *Pipeline) markIngested(docs []*schema.Document) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, doc := range docs {
		p.seen[doc.ID] = doc.ToNode().Hash
	}
}
