package textsplitter

import (
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceStrategy performs the primary sentence-level split of a text.
type SentenceStrategy interface {
	Split(text string) []string
}

// RegexSentenceStrategy splits on a regular expression that keeps
// punctuation attached to the preceding clause.
type RegexSentenceStrategy struct {
	pattern string
}

// NewRegexSentenceStrategy creates a strategy for the given pattern.
// An empty pattern uses the default clause-level regex.
func NewRegexSentenceStrategy(pattern string) *RegexSentenceStrategy {
	if pattern == "" {
		pattern = DefaultChunkingRegex
	}
	return &RegexSentenceStrategy{pattern: pattern}
}

// Split returns the clause-level splits of text.
func (s *RegexSentenceStrategy) Split(text string) []string {
	return splitByRegex(s.pattern)(text)
}

// EnglishSentenceStrategy uses a trained Punkt tokenizer for English
// sentence boundaries. It handles abbreviations and citations better than
// the regex strategy, which matters for legal decision texts.
type EnglishSentenceStrategy struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewEnglishSentenceStrategy creates a strategy with the embedded English
// training data.
func NewEnglishSentenceStrategy() (*EnglishSentenceStrategy, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return &EnglishSentenceStrategy{tokenizer: tokenizer}, nil
}

// Split returns the sentences of text.
func (s *EnglishSentenceStrategy) Split(text string) []string {
	tokenized := s.tokenizer.Tokenize(text)
	result := make([]string, len(tokenized))
	for i, sentence := range tokenized {
		result[i] = sentence.Text
	}
	return result
}

var (
	_ SentenceStrategy = (*RegexSentenceStrategy)(nil)
	_ SentenceStrategy = (*EnglishSentenceStrategy)(nil)
)
