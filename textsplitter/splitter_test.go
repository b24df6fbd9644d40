package textsplitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SentenceSplitterTestSuite struct {
	suite.Suite
}

func TestSentenceSplitterTestSuite(t *testing.T) {
	suite.Run(t, new(SentenceSplitterTestSuite))
}

func (s *SentenceSplitterTestSuite) TestShortTextSingleChunk() {
	splitter := NewSentenceSplitter(WithChunkSize(100), WithChunkOverlap(0))
	chunks := splitter.SplitText("Hello world. This is a test.")
	s.Len(chunks, 1)
	s.Equal("Hello world. This is a test.", chunks[0])
}

func (s *SentenceSplitterTestSuite) TestEmptyText() {
	splitter := NewSentenceSplitter()
	s.Nil(splitter.SplitText(""))
	s.Nil(splitter.SplitText("   \n  "))
}

func (s *SentenceSplitterTestSuite) TestSplitBySentence() {
	// The word tokenizer counts whitespace-separated fields.
	splitter := NewSentenceSplitter(WithChunkSize(3), WithChunkOverlap(0))
	chunks := splitter.SplitText("Hello world. This is a test.")

	s.Len(chunks, 2)
	s.Equal("Hello world. This", chunks[0])
	s.Equal("is a test.", chunks[1])
}

func (s *SentenceSplitterTestSuite) TestOverlapCarriesTail() {
	splitter := NewSentenceSplitter(WithChunkSize(3), WithChunkOverlap(1))
	chunks := splitter.SplitText("A B C D E")

	s.Len(chunks, 2)
	s.Equal("A B C", chunks[0])
	s.Equal("C D E", chunks[1])
}

func (s *SentenceSplitterTestSuite) TestParagraphBoundaryPreferred() {
	splitter := NewSentenceSplitter(WithChunkSize(4), WithChunkOverlap(0))
	chunks := splitter.SplitText("P1 S1. P1 S2.\n\n\nP2 S1. P2 S2.")

	s.Len(chunks, 2)
	s.Equal("P1 S1. P1 S2.", chunks[0])
	s.Equal("P2 S1. P2 S2.", chunks[1])
}

func (s *SentenceSplitterTestSuite) TestChunkBudgetRespected() {
	words := strings.Repeat("word ", 200)
	splitter := NewSentenceSplitter(WithChunkSize(20), WithChunkOverlap(5))
	chunks := splitter.SplitText(words)

	s.NotEmpty(chunks)
	tokenizer := NewWordTokenizer()
	for _, chunk := range chunks {
		s.LessOrEqual(tokenizer.Count(chunk), 20)
	}
}

func (s *SentenceSplitterTestSuite) TestOverlapClampedBelowChunkSize() {
	splitter := NewSentenceSplitter(WithChunkSize(4), WithChunkOverlap(10))
	chunks := splitter.SplitText("A B C D E F G H")

	s.NotEmpty(chunks)
	// Progress is made despite the misconfigured overlap.
	s.Less(len(chunks), 10)
}

func (s *SentenceSplitterTestSuite) TestEnglishStrategySplitsSentences() {
	strategy, err := NewEnglishSentenceStrategy()
	s.Require().NoError(err)

	pieces := strategy.Split("The court ruled on the motion. The appeal was denied.")
	s.Len(pieces, 2)
	s.Contains(pieces[0], "motion")
	s.Contains(pieces[1], "appeal")
}

func (s *SentenceSplitterTestSuite) TestRegexStrategyKeepsPunctuation() {
	strategy := NewRegexSentenceStrategy("")
	pieces := strategy.Split("First clause, second clause. Third.")
	s.GreaterOrEqual(len(pieces), 2)
	s.True(strings.HasSuffix(pieces[0], ","))
}

func (s *SentenceSplitterTestSuite) TestWordTokenizerCount() {
	tokenizer := NewWordTokenizer()
	s.Equal(0, tokenizer.Count(""))
	s.Equal(3, tokenizer.Count("one two three"))
	s.Equal(2, tokenizer.Count("  spaced   out  "))
}
