package textsplitter

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer counts tokens in text. Chunk sizes and overlaps are expressed
// in these token units.
type Tokenizer interface {
	Count(text string) int
}

// WordTokenizer counts whitespace-separated words.
type WordTokenizer struct{}

// NewWordTokenizer creates a new WordTokenizer.
func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{}
}

// Count returns the number of whitespace-separated fields in text.
func (t *WordTokenizer) Count(text string) int {
	return len(strings.Fields(text))
}

// TiktokenTokenizer counts tokens using the tiktoken encoding of an OpenAI
// model, so chunk budgets line up with what the embedding model sees.
type TiktokenTokenizer struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenTokenizer creates a tokenizer for the given model name.
// An empty model defaults to text-embedding-3-small.
func NewTiktokenTokenizer(model string) (*TiktokenTokenizer, error) {
	if model == "" {
		model = "text-embedding-3-small"
	}
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding for model %s: %w", model, err)
	}
	return &TiktokenTokenizer{encoding: encoding}, nil
}

// Count returns the number of tokens in text.
func (t *TiktokenTokenizer) Count(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}

var (
	_ Tokenizer = (*WordTokenizer)(nil)
	_ Tokenizer = (*TiktokenTokenizer)(nil)
)
