package reader

import (
	"context"
	"os"
	"strings"

	"github.com/aqua777/go-ragbot/schema"
)

// TextReader reads plain-text files (.txt and .md) into documents, one
// document per file.
type TextReader struct {
	inputFiles    []string
	inputDir      string
	recursive     bool
	extensions    []string
	extraMetadata map[string]interface{}
}

// TextReaderOption configures a TextReader.
type TextReaderOption func(*TextReader)

// WithTextInputFiles sets explicit input files.
func WithTextInputFiles(files ...string) TextReaderOption {
	return func(r *TextReader) {
		r.inputFiles = files
	}
}

// WithTextInputDir sets the input directory to scan.
func WithTextInputDir(dir string) TextReaderOption {
	return func(r *TextReader) {
		r.inputDir = dir
	}
}

// WithTextRecursive enables recursion into subdirectories.
func WithTextRecursive(recursive bool) TextReaderOption {
	return func(r *TextReader) {
		r.recursive = recursive
	}
}

// WithTextExtensions overrides the default .txt/.md extension filter.
func WithTextExtensions(extensions ...string) TextReaderOption {
	return func(r *TextReader) {
		r.extensions = extensions
	}
}

// WithTextExtraMetadata adds metadata to every loaded document.
func WithTextExtraMetadata(metadata map[string]interface{}) TextReaderOption {
	return func(r *TextReader) {
		r.extraMetadata = metadata
	}
}

// NewTextReader creates a new TextReader.
func NewTextReader(opts ...TextReaderOption) *TextReader {
	r := &TextReader{
		extensions: []string{".txt", ".md"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads all configured text files. Empty files are skipped.
func (r *TextReader) Load(ctx context.Context) ([]*schema.Document, error) {
	files, err := collectFiles(r.inputFiles, r.inputDir, r.recursive, r.extensions)
	if err != nil {
		return nil, err
	}

	var docs []*schema.Document
	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return nil, NewReaderError(file, "failed to read file", err)
		}
		text := string(content)
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, schema.NewDocument(text, baseMetadata(file, "text", r.extraMetadata)))
	}
	return docs, nil
}

var _ Reader = (*TextReader)(nil)
