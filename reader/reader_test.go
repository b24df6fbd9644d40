package reader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ReaderTestSuite struct {
	suite.Suite
	dir string
}

func TestReaderTestSuite(t *testing.T) {
	suite.Run(t, new(ReaderTestSuite))
}

func (s *ReaderTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ReaderTestSuite) writeFile(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *ReaderTestSuite) TestTextReaderLoadsFiles() {
	s.writeFile("a.txt", "Decision on case A.")
	s.writeFile("b.md", "# Case B\n\nDecision on case B.")
	s.writeFile("ignored.csv", "x,y")

	docs, err := NewTextReader(WithTextInputDir(s.dir)).Load(context.Background())
	s.Require().NoError(err)
	s.Len(docs, 2)
	for _, doc := range docs {
		s.NotEmpty(doc.ID)
		s.Equal("text", doc.Metadata["file_type"])
		s.NotEmpty(doc.Metadata["file_name"])
	}
}

func (s *ReaderTestSuite) TestTextReaderSkipsEmptyFiles() {
	s.writeFile("empty.txt", "   \n")
	s.writeFile("full.txt", "content")

	docs, err := NewTextReader(WithTextInputDir(s.dir)).Load(context.Background())
	s.Require().NoError(err)
	s.Require().Len(docs, 1)
	s.Equal("content", docs[0].Text)
}

func (s *ReaderTestSuite) TestTextReaderRecursion() {
	s.writeFile("top.txt", "top")
	s.writeFile("sub/nested.txt", "nested")

	flat, err := NewTextReader(WithTextInputDir(s.dir)).Load(context.Background())
	s.Require().NoError(err)
	s.Len(flat, 1)

	deep, err := NewTextReader(WithTextInputDir(s.dir), WithTextRecursive(true)).Load(context.Background())
	s.Require().NoError(err)
	s.Len(deep, 2)
}

func (s *ReaderTestSuite) TestTextReaderExtraMetadata() {
	s.writeFile("a.txt", "content")

	docs, err := NewTextReader(
		WithTextInputDir(s.dir),
		WithTextExtraMetadata(map[string]interface{}{"category": "drugs"}),
	).Load(context.Background())
	s.Require().NoError(err)
	s.Require().Len(docs, 1)
	s.Equal("drugs", docs[0].Metadata["category"])
}

func (s *ReaderTestSuite) TestNoInputConfigured() {
	_, err := NewTextReader().Load(context.Background())
	s.Error(err)

	var readerErr *ReaderError
	s.ErrorAs(err, &readerErr)
}

func (s *ReaderTestSuite) TestCancelledContext() {
	s.writeFile("a.txt", "content")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTextReader(WithTextInputDir(s.dir)).Load(ctx)
	s.ErrorIs(err, context.Canceled)
}

func (s *ReaderTestSuite) TestPDFReaderRejectsBrokenFile() {
	path := s.writeFile("broken.pdf", "not actually a pdf")

	_, err := NewPDFReader(WithPDFInputFiles(path)).Load(context.Background())
	s.Error(err)

	var readerErr *ReaderError
	s.ErrorAs(err, &readerErr)
	s.Equal(path, readerErr.Source)
}

func (s *ReaderTestSuite) TestPDFReaderEmptyDirectory() {
	docs, err := NewPDFReader(WithPDFInputDir(s.dir)).Load(context.Background())
	s.NoError(err)
	s.Empty(docs)
}
