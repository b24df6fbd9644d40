// Package chatbot implements the query-fan-out core of the RAG chat
// pipeline: the sub-query router and the turn orchestrator.
package chatbot

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/aqua777/go-ragbot/backend"
	"github.com/aqua777/go-ragbot/outputparser"
)

// BackendKind identifies which context backend serves a sub-query.
// It is a closed enum: category strings from the routing model are mapped
// onto a kind through an explicit table, and anything outside the table is
// BackendUnknown, which fails the sub-query rather than silently falling
// back to web search.
type BackendKind int

const (
	// BackendUnknown marks an unrecognized category.
	BackendUnknown BackendKind = iota
	// BackendVector routes to the vector knowledge-base search.
	BackendVector
	// BackendDatabase routes to the structured lookup.
	BackendDatabase
	// BackendWeb routes to web search.
	BackendWeb
)

// String returns the kind name for logging.
func (k BackendKind) String() string {
	switch k {
	case BackendVector:
		return "vector"
	case BackendDatabase:
		return "database"
	case BackendWeb:
		return "web"
	default:
		return "unknown"
	}
}

// Category labels the routing model may return.
const (
	CategoryDrugs     = "drugs"
	CategoryFamily    = "family"
	CategoryDatabase  = "database"
	CategoryWeb       = "web"
	CategoryUndecided = "undecided"
)

// DefaultCategoryTable maps routing categories onto backend kinds.
// "undecided" is the model's explicit no-match sentinel and falls through
// to web search; every other unknown string is a routing failure.
func DefaultCategoryTable() map[string]BackendKind {
	return map[string]BackendKind{
		CategoryDrugs:     BackendVector,
		CategoryFamily:    BackendVector,
		CategoryDatabase:  BackendDatabase,
		CategoryWeb:       BackendWeb,
		CategoryUndecided: BackendWeb,
	}
}

// Classifier selects a knowledge-base category for a sub-query.
type Classifier interface {
	Classify(ctx context.Context, subQuery string) (string, error)
}

// Router resolves one sub-query to a context fragment.
type Router struct {
	classifier Classifier
	backends   *backend.Registry
	categories map[string]BackendKind
	logger     *slog.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithCategoryTable overrides the category-to-backend mapping.
func WithCategoryTable(table map[string]BackendKind) RouterOption {
	return func(r *Router) {
		r.categories = table
	}
}

// WithRouterLogger sets the logger.
func WithRouterLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

// NewRouter creates a new Router.
func NewRouter(classifier Classifier, backends *backend.Registry, opts ...RouterOption) *Router {
	r := &Router{
		classifier: classifier,
		backends:   backends,
		categories: DefaultCategoryTable(),
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve classifies subQuery, dispatches it to the selected backend, and
// returns the retrieved context fragment.
//
// The vector backend is queried with originalQuery, not the sub-query: the
// sub-query decides where to search, while the full question preserves the
// semantic context for retrieval.
//
// Resolve never returns an error. Malformed routing output, unrecognized
// categories, backend failures, timeouts and empty results all degrade to a
// nil fragment and are logged with the offending sub-query.
func (r *Router) Resolve(ctx context.Context, subQuery string, originalQuery string) *string {
	category, err := r.classifier.Classify(ctx, subQuery)
	if err != nil {
		if outputparser.IsParseError(err) {
			r.logger.Error("malformed routing output", "sub_query", subQuery, "error", err)
		} else {
			r.logger.Error("routing call failed", "sub_query", subQuery, "error", err)
		}
		return nil
	}

	kind, ok := r.categories[category]
	if !ok {
		kind = BackendUnknown
	}
	r.logger.Info("sub-query classified", "sub_query", subQuery, "category", category, "backend", kind.String())

	var fragment string
	switch kind {
	case BackendWeb:
		results, werr := r.backends.Web.Search(ctx, subQuery)
		if werr != nil {
			r.logger.Error("web search failed", "sub_query", subQuery, "error", werr)
			return nil
		}
		fragment = backend.FormatResults(results)

	case BackendDatabase:
		out, derr := r.backends.Database.Lookup(ctx, subQuery)
		if derr != nil {
			r.logger.Error("database lookup failed", "sub_query", subQuery, "error", derr)
			return nil
		}
		fragment = out

	case BackendVector:
		chunks, verr := r.backends.Vector.Search(ctx, originalQuery, category)
		if verr != nil {
			r.logger.Error("vector search failed", "sub_query", subQuery, "category", category, "error", verr)
			return nil
		}
		fragment = strings.Join(chunks, "\n\n")

	default:
		r.logger.Error("unrecognized routing category", "sub_query", subQuery, "category", category)
		return nil
	}

	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		r.logger.Warn("backend returned empty context", "sub_query", subQuery, "backend", kind.String())
		return nil
	}
	return &fragment
}
