package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqua777/go-ragbot/schema"
)

func textNode(text string, embedding []float64) schema.Node {
	n := schema.NewTextNode(text)
	n.Embedding = embedding
	return *n
}

func TestSimpleVectorStore_QueryRanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	s := NewSimpleVectorStore()

	_, err := s.Add(ctx, "drugs", []schema.Node{
		textNode("close match", []float64{1, 0, 0}),
		textNode("far match", []float64{0, 1, 0}),
		textNode("middle match", []float64{0.7, 0.7, 0}),
	})
	require.NoError(t, err)

	res, err := s.Query(ctx, schema.VectorStoreQuery{
		Collection: "drugs",
		Embedding:  []float64{1, 0, 0},
		TopK:       2,
	})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "close match", res[0].Node.Text)
	assert.Equal(t, "middle match", res[1].Node.Text)
	assert.Greater(t, res[0].Score, res[1].Score)
}

func TestSimpleVectorStore_CollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewSimpleVectorStore()

	_, err := s.Add(ctx, "drugs", []schema.Node{textNode("drug case", []float64{1, 0})})
	require.NoError(t, err)

	res, err := s.Query(ctx, schema.VectorStoreQuery{
		Collection: "family",
		Embedding:  []float64{1, 0},
		TopK:       5,
	})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestChromemStore_AddAndQuery(t *testing.T) {
	ctx := context.Background()
	s, err := NewChromemStore("")
	require.NoError(t, err)

	_, err = s.Add(ctx, "family", []schema.Node{
		textNode("family case about custody", []float64{0.9, 0.1, 0}),
		textNode("family case about support", []float64{0.1, 0.9, 0}),
	})
	require.NoError(t, err)

	res, err := s.Query(ctx, schema.VectorStoreQuery{
		Collection: "family",
		Embedding:  []float64{0.9, 0.1, 0},
		TopK:       1,
	})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "family case about custody", res[0].Node.Text)
}

func TestChromemStore_TopKClampedToCollectionSize(t *testing.T) {
	ctx := context.Background()
	s, err := NewChromemStore("")
	require.NoError(t, err)

	_, err = s.Add(ctx, "drugs", []schema.Node{textNode("only one", []float64{1, 0})})
	require.NoError(t, err)

	res, err := s.Query(ctx, schema.VectorStoreQuery{
		Collection: "drugs",
		Embedding:  []float64{1, 0},
		TopK:       5,
	})
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestChromemStore_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	s, err := NewChromemStore("")
	require.NoError(t, err)

	res, err := s.Query(ctx, schema.VectorStoreQuery{
		Collection: "empty",
		Embedding:  []float64{1, 0},
		TopK:       5,
	})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestChromemStore_RejectsNodeWithoutEmbedding(t *testing.T) {
	ctx := context.Background()
	s, err := NewChromemStore("")
	require.NoError(t, err)

	node := schema.NewTextNode("no embedding")
	_, err = s.Add(ctx, "drugs", []schema.Node{*node})
	assert.Error(t, err)
}
