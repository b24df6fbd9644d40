package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aqua777/go-ragbot/backend"
	"github.com/aqua777/go-ragbot/config"
	"github.com/aqua777/go-ragbot/embedding"
	"github.com/aqua777/go-ragbot/ingestion"
	"github.com/aqua777/go-ragbot/reader"
	"github.com/aqua777/go-ragbot/schema"
	"github.com/aqua777/go-ragbot/store"
	"github.com/aqua777/go-ragbot/textsplitter"
)

var (
	ingestDir       string
	ingestCategory  string
	ingestRecursive bool
	attendanceCSV   string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load documents into a knowledge base or import attendance records",
	Long: `Loads PDF and text documents from a directory into the named
knowledge-base collection, or imports an attendance CSV into the
structured lookup database.

Examples:
  ragbot ingest --dir ./kb/drugs --category drugs
  ragbot ingest --attendance-csv ./attendance.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		switch {
		case attendanceCSV != "":
			return importAttendance(cmd.Context(), cfg)
		case ingestDir != "":
			if ingestCategory == "" {
				return fmt.Errorf("--category is required with --dir")
			}
			return ingestDocuments(cmd.Context(), cfg)
		default:
			return fmt.Errorf("either --dir or --attendance-csv is required")
		}
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDir, "dir", "", "directory of PDF/text documents to ingest")
	ingestCmd.Flags().StringVar(&ingestCategory, "category", "", "knowledge-base collection to ingest into")
	ingestCmd.Flags().BoolVar(&ingestRecursive, "recursive", false, "recurse into subdirectories")
	ingestCmd.Flags().StringVar(&attendanceCSV, "attendance-csv", "", "attendance CSV file to import")
}

// ingestDocuments loads, splits, embeds and stores all documents in the
// configured directory.
func ingestDocuments(ctx context.Context, cfg *config.Config) error {
	logger := newLogger()

	docs, err := loadDocuments(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Printf("No documents found in %s.\n", ingestDir)
		return nil
	}

	tokenizer, err := textsplitter.NewTiktokenTokenizer(cfg.OpenAI.EmbeddingModel)
	if err != nil {
		return fmt.Errorf("building tokenizer: %w", err)
	}
	strategy, err := textsplitter.NewEnglishSentenceStrategy()
	if err != nil {
		return fmt.Errorf("building sentence strategy: %w", err)
	}
	splitter := textsplitter.NewSentenceSplitter(
		textsplitter.WithChunkSize(cfg.Ingest.ChunkSize),
		textsplitter.WithChunkOverlap(cfg.Ingest.ChunkOverlap),
		textsplitter.WithTokenizer(tokenizer),
		textsplitter.WithSentenceStrategy(strategy),
	)

	vectorStore, err := store.NewChromemStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}
	embedder := embedding.NewOpenAIEmbedding(cfg.OpenAI.APIKey, cfg.OpenAI.EmbeddingModel)

	pipeline := ingestion.NewPipeline(splitter, embedder, vectorStore,
		ingestion.WithPipelineLogger(logger))

	nodes, err := pipeline.Run(ctx, ingestCategory, docs)
	if err != nil {
		return fmt.Errorf("ingesting documents: %w", err)
	}

	color.Green("Ingested %d documents (%d chunks) into collection %q.", len(docs), len(nodes), ingestCategory)
	return nil
}

// loadDocuments reads PDFs and plain-text files from the ingest directory,
// tagging every document with the target category.
func loadDocuments(ctx context.Context) ([]*schema.Document, error) {
	extra := map[string]interface{}{"category": ingestCategory}

	pdfDocs, err := reader.NewPDFReader(
		reader.WithPDFInputDir(ingestDir),
		reader.WithPDFRecursive(ingestRecursive),
		reader.WithPDFExtraMetadata(extra),
	).Load(ctx)
	if err != nil {
		return nil, err
	}

	textDocs, err := reader.NewTextReader(
		reader.WithTextInputDir(ingestDir),
		reader.WithTextRecursive(ingestRecursive),
		reader.WithTextExtraMetadata(extra),
	).Load(ctx)
	if err != nil {
		return nil, err
	}

	return append(pdfDocs, textDocs...), nil
}

// importAttendance loads an attendance CSV into the lookup database.
func importAttendance(ctx context.Context, cfg *config.Config) error {
	db, err := backend.OpenAttendanceDB(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	count, err := db.ImportCSV(ctx, attendanceCSV)
	if err != nil {
		return fmt.Errorf("importing attendance records: %w", err)
	}

	color.Green("Imported %d attendance records from %s.", count, attendanceCSV)
	return nil
}
