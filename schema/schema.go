// Package schema defines the data types exchanged between readers, the
// text splitter, the vector store and the ingestion pipeline.
package schema

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// NodeType represents the type of the node.
type NodeType string

const (
	// ObjectTypeText represents a text chunk node.
	ObjectTypeText NodeType = "TEXT"
	// ObjectTypeDocument represents a whole source document.
	ObjectTypeDocument NodeType = "DOCUMENT"
)

// Node represents a chunk of indexed content.
type Node struct {
	ID        string                 `json:"id"`
	Text      string                 `json:"text"`
	Type      NodeType               `json:"type"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Embedding []float64              `json:"embedding,omitempty"`
	Hash      string                 `json:"hash,omitempty"`
	// RefDocID is the ID of the source document this node was split from.
	RefDocID string `json:"ref_doc_id,omitempty"`
}

// NewTextNode creates a new text node with a generated ID.
func NewTextNode(text string) *Node {
	n := &Node{
		ID:       uuid.New().String(),
		Text:     text,
		Type:     ObjectTypeText,
		Metadata: make(map[string]interface{}),
	}
	n.Hash = n.GenerateHash()
	return n
}

// GenerateHash generates a content hash for the node.
func (n *Node) GenerateHash() string {
	sum := sha256.Sum256([]byte(n.Text))
	return hex.EncodeToString(sum[:])
}

// NodeWithScore pairs a node with its retrieval similarity score.
type NodeWithScore struct {
	Node  Node    `json:"node"`
	Score float64 `json:"score"`
}

// Document represents a source document before splitting.
type Document struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// NewDocument creates a new document with a generated ID.
func NewDocument(text string, metadata map[string]interface{}) *Document {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &Document{
		ID:       uuid.New().String(),
		Text:     text,
		Metadata: metadata,
	}
}

// ToNode converts the document into a document-typed node.
func (d *Document) ToNode() *Node {
	n := &Node{
		ID:       d.ID,
		Text:     d.Text,
		Type:     ObjectTypeDocument,
		Metadata: d.Metadata,
	}
	n.Hash = n.GenerateHash()
	return n
}

// VectorStoreQuery is a query against a vector store collection.
type VectorStoreQuery struct {
	// Collection is the name of the collection (knowledge base) to search.
	Collection string
	// Embedding is the query embedding.
	Embedding []float64
	// TopK is the number of results to return.
	TopK int
}
