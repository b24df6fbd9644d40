// Package textsplitter chunks document text into token-bounded pieces
// before embedding, preferring to cut on paragraph and sentence boundaries.
package textsplitter

import (
	"regexp"
	"strings"
)

const (
	// DefaultChunkSize is the token budget per chunk.
	DefaultChunkSize = 500
	// DefaultChunkOverlap is the token overlap carried between chunks.
	DefaultChunkOverlap = 50
	// DefaultParagraphSeparator splits text into paragraphs first.
	DefaultParagraphSeparator = "\n\n\n"
	// DefaultWordSeparator is the last-resort word split.
	DefaultWordSeparator = " "
	// DefaultChunkingRegex splits oversized sentences at clause boundaries.
	DefaultChunkingRegex = `[^,.;。？！]+[,.;。？！]?|[,.;。？！]`
)

// TextSplitter is the interface for splitting text into chunks.
type TextSplitter interface {
	SplitText(text string) []string
}

// textSplit is one candidate piece with its token size.
type textSplit struct {
	text       string
	isSentence bool
	tokenSize  int
}

// SentenceSplitter splits text into chunks of at most ChunkSize tokens,
// keeping whole sentences together where possible. When a sentence alone
// exceeds the budget it falls back to clause, word and finally character
// splits.
type SentenceSplitter struct {
	chunkSize          int
	chunkOverlap       int
	wordSeparator      string
	paragraphSeparator string
	chunkingRegex      string
	tokenizer          Tokenizer
	strategy           SentenceStrategy

	splitFns            []func(string) []string
	subSentenceSplitFns []func(string) []string
}

// SentenceSplitterOption configures a SentenceSplitter.
type SentenceSplitterOption func(*SentenceSplitter)

// WithChunkSize sets the token budget per chunk.
func WithChunkSize(n int) SentenceSplitterOption {
	return func(s *SentenceSplitter) {
		s.chunkSize = n
	}
}

// WithChunkOverlap sets the token overlap between consecutive chunks.
func WithChunkOverlap(n int) SentenceSplitterOption {
	return func(s *SentenceSplitter) {
		s.chunkOverlap = n
	}
}

// WithTokenizer sets the tokenizer used to measure chunk sizes.
func WithTokenizer(t Tokenizer) SentenceSplitterOption {
	return func(s *SentenceSplitter) {
		s.tokenizer = t
	}
}

// WithSentenceStrategy sets the primary sentence-splitting strategy.
func WithSentenceStrategy(strategy SentenceStrategy) SentenceSplitterOption {
	return func(s *SentenceSplitter) {
		s.strategy = strategy
	}
}

// WithParagraphSeparator sets the paragraph separator.
func WithParagraphSeparator(sep string) SentenceSplitterOption {
	return func(s *SentenceSplitter) {
		s.paragraphSeparator = sep
	}
}

// NewSentenceSplitter creates a SentenceSplitter. Without options it uses
// word counting and the clause regex strategy.
func NewSentenceSplitter(opts ...SentenceSplitterOption) *SentenceSplitter {
	s := &SentenceSplitter{
		chunkSize:          DefaultChunkSize,
		chunkOverlap:       DefaultChunkOverlap,
		wordSeparator:      DefaultWordSeparator,
		paragraphSeparator: DefaultParagraphSeparator,
		chunkingRegex:      DefaultChunkingRegex,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.tokenizer == nil {
		s.tokenizer = NewWordTokenizer()
	}
	if s.strategy == nil {
		s.strategy = NewRegexSentenceStrategy(s.chunkingRegex)
	}
	if s.chunkOverlap >= s.chunkSize {
		s.chunkOverlap = s.chunkSize / 2
	}

	s.splitFns = []func(string) []string{
		splitBySep(s.paragraphSeparator),
		s.strategy.Split,
	}
	s.subSentenceSplitFns = []func(string) []string{
		splitByRegex(s.chunkingRegex),
		splitBySep(s.wordSeparator),
		splitByChar(),
	}

	return s
}

// SplitText splits text into chunks of at most the configured token budget.
func (s *SentenceSplitter) SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	splits := s.split(text, s.chunkSize)
	chunks := s.merge(splits, s.chunkSize)

	var out []string
	for _, chunk := range chunks {
		if trimmed := strings.TrimSpace(chunk); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// split recursively breaks text until every piece fits the token budget.
func (s *SentenceSplitter) split(text string, chunkSize int) []textSplit {
	tokenSize := s.tokenizer.Count(text)
	if tokenSize <= chunkSize {
		return []textSplit{{text: text, isSentence: true, tokenSize: tokenSize}}
	}

	pieces, isSentence := s.splitByFns(text)
	var splits []textSplit
	for _, piece := range pieces {
		pieceSize := s.tokenizer.Count(piece)
		if pieceSize <= chunkSize {
			splits = append(splits, textSplit{text: piece, isSentence: isSentence, tokenSize: pieceSize})
		} else {
			splits = append(splits, s.split(piece, chunkSize)...)
		}
	}
	return splits
}

// splitByFns applies the sentence-level split functions in order, falling
// back to sub-sentence splits when no sentence boundary produces progress.
func (s *SentenceSplitter) splitByFns(text string) ([]string, bool) {
	for _, fn := range s.splitFns {
		if pieces := fn(text); len(pieces) > 1 {
			return pieces, true
		}
	}

	var pieces []string
	for _, fn := range s.subSentenceSplitFns {
		if pieces = fn(text); len(pieces) > 1 {
			break
		}
	}
	return pieces, false
}

// merge packs splits into chunks, carrying the configured token overlap
// from the tail of each chunk into the next.
func (s *SentenceSplitter) merge(splits []textSplit, chunkSize int) []string {
	type bufItem struct {
		text string
		size int
	}

	var chunks []string
	var current []bufItem
	currentLen := 0
	newChunk := true

	closeChunk := func() {
		var sb strings.Builder
		for _, item := range current {
			sb.WriteString(item.text)
		}
		chunks = append(chunks, sb.String())

		last := current
		current = nil
		currentLen = 0
		newChunk = true

		for i := len(last) - 1; i >= 0; i-- {
			if currentLen+last[i].size > s.chunkOverlap {
				break
			}
			currentLen += last[i].size
			current = append([]bufItem{last[i]}, current...)
		}
	}

	for i := 0; i < len(splits); {
		split := splits[i]
		switch {
		case currentLen+split.tokenSize > chunkSize && !newChunk:
			closeChunk()
		case split.isSentence || currentLen+split.tokenSize <= chunkSize || newChunk:
			currentLen += split.tokenSize
			current = append(current, bufItem{text: split.text, size: split.tokenSize})
			i++
			newChunk = false
		default:
			closeChunk()
		}
	}

	if !newChunk {
		var sb strings.Builder
		for _, item := range current {
			sb.WriteString(item.text)
		}
		chunks = append(chunks, sb.String())
	}

	return chunks
}

// splitBySep splits on a separator, keeping the separator prefixed to each
// piece after the first so chunks rejoin to the original text.
func splitBySep(sep string) func(string) []string {
	return func(text string) []string {
		if sep == "" {
			if text == "" {
				return nil
			}
			return []string{text}
		}
		parts := strings.Split(text, sep)
		var result []string
		for i, part := range parts {
			if i > 0 {
				part = sep + part
			}
			if part != "" {
				result = append(result, part)
			}
		}
		return result
	}
}

func splitByRegex(pattern string) func(string) []string {
	re := regexp.MustCompile(pattern)
	return func(text string) []string {
		return re.FindAllString(text, -1)
	}
}

func splitByChar() func(string) []string {
	return func(text string) []string {
		return strings.Split(text, "")
	}
}

var _ TextSplitter = (*SentenceSplitter)(nil)
