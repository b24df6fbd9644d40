// Package reader loads source documents from the filesystem for ingestion.
package reader

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/aqua777/go-ragbot/schema"
)

// Reader loads documents from a source.
type Reader interface {
	Load(ctx context.Context) ([]*schema.Document, error)
}

// ReaderError reports a failure while loading one source.
type ReaderError struct {
	Source  string
	Message string
	Err     error
}

func (e *ReaderError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Source + ": " + e.Message
}

func (e *ReaderError) Unwrap() error {
	return e.Err
}

// NewReaderError creates a new ReaderError.
func NewReaderError(source, message string, err error) *ReaderError {
	return &ReaderError{Source: source, Message: message, Err: err}
}

// collectFiles resolves the input set: explicit files win, otherwise the
// directory is walked for files with one of the given extensions.
func collectFiles(inputFiles []string, inputDir string, recursive bool, extensions []string) ([]string, error) {
	if len(inputFiles) > 0 {
		return inputFiles, nil
	}
	if inputDir == "" {
		return nil, NewReaderError("", "no input files or directory specified", nil)
	}

	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[ext] = true
	}

	var files []string
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != inputDir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if wanted[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, NewReaderError(inputDir, "failed to walk directory", err)
	}
	return files, nil
}

// baseMetadata builds the shared file metadata for a loaded document.
func baseMetadata(filePath, fileType string, extra map[string]interface{}) map[string]interface{} {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}
	metadata := map[string]interface{}{
		"file_path": absPath,
		"file_name": filepath.Base(filePath),
		"file_type": fileType,
	}
	for k, v := range extra {
		metadata[k] = v
	}
	return metadata
}
