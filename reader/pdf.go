package reader

import (
	"context"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/aqua777/go-ragbot/schema"
)

// PDFReader reads PDF files and extracts their plain text. All pages of a
// file are concatenated into one document; page numbers are not preserved.
type PDFReader struct {
	inputFiles    []string
	inputDir      string
	recursive     bool
	extraMetadata map[string]interface{}
}

// PDFReaderOption configures a PDFReader.
type PDFReaderOption func(*PDFReader)

// WithPDFInputFiles sets explicit input files.
func WithPDFInputFiles(files ...string) PDFReaderOption {
	return func(r *PDFReader) {
		r.inputFiles = files
	}
}

// WithPDFInputDir sets the input directory to scan for PDF files.
func WithPDFInputDir(dir string) PDFReaderOption {
	return func(r *PDFReader) {
		r.inputDir = dir
	}
}

// WithPDFRecursive enables recursion into subdirectories.
func WithPDFRecursive(recursive bool) PDFReaderOption {
	return func(r *PDFReader) {
		r.recursive = recursive
	}
}

// WithPDFExtraMetadata adds metadata to every loaded document.
func WithPDFExtraMetadata(metadata map[string]interface{}) PDFReaderOption {
	return func(r *PDFReader) {
		r.extraMetadata = metadata
	}
}

// NewPDFReader creates a new PDFReader.
func NewPDFReader(opts ...PDFReaderOption) *PDFReader {
	r := &PDFReader{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads all configured PDF files. Files that yield no text are
// skipped rather than failing the batch.
func (r *PDFReader) Load(ctx context.Context) ([]*schema.Document, error) {
	files, err := collectFiles(r.inputFiles, r.inputDir, r.recursive, []string{".pdf"})
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

		text, err := extractText(file)
		if err != nil {
			return nil, NewReaderError(file, "failed to load PDF file", err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, schema.NewDocument(text, baseMetadata(file, "pdf", r.extraMetadata)))
	}
	return docs, nil
}

// extractText concatenates the plain text of every page. Pages that fail
// to decode are skipped so one bad page does not lose the document.
func extractText(filePath string) (string, error) {
	f, pdfReader, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	numPages := pdfReader.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var _ Reader = (*PDFReader)(nil)
