package chatbot

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aqua777/go-ragbot/backend"
	"github.com/aqua777/go-ragbot/outputparser"
)

// stubClassifier returns a fixed category or error.
type stubClassifier struct {
	category string
	err      error
}

func (s *stubClassifier) Classify(ctx context.Context, subQuery string) (string, error) {
	return s.category, s.err
}

// recordingVectorSearcher records calls and returns fixed chunks.
type recordingVectorSearcher struct {
	mu         sync.Mutex
	queries    []string
	categories []string
	chunks     []string
	err        error
}

func (r *recordingVectorSearcher) Search(ctx context.Context, query string, category string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, query)
	r.categories = append(r.categories, category)
	return r.chunks, r.err
}

type stubLookup struct {
	out string
	err error
}

func (s *stubLookup) Lookup(ctx context.Context, query string) (string, error) {
	return s.out, s.err
}

type stubWebSearcher struct {
	results []backend.SearchResult
	err     error
	calls   int
}

func (s *stubWebSearcher) Search(ctx context.Context, query string) ([]backend.SearchResult, error) {
	s.calls++
	return s.results, s.err
}

type RouterTestSuite struct {
	suite.Suite
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) registry(vector *recordingVectorSearcher, db *stubLookup, web *stubWebSearcher) *backend.Registry {
	if vector == nil {
		vector = &recordingVectorSearcher{}
	}
	if db == nil {
		db = &stubLookup{}
	}
	if web == nil {
		web = &stubWebSearcher{}
	}
	return backend.NewRegistry(vector, db, web)
}

func (s *RouterTestSuite) TestVectorCategoryUsesOriginalQuery() {
	vector := &recordingVectorSearcher{chunks: []string{"Case A summary", "Case B summary"}}
	router := NewRouter(&stubClassifier{category: "drugs"}, s.registry(vector, nil, nil))

	fragment := router.Resolve(context.Background(), "list drug cases", "list all cases")

	s.Require().NotNil(fragment)
	s.Equal("Case A summary\n\nCase B summary", *fragment)
	// Vector retrieval sees the full question, not the sub-query.
	s.Equal([]string{"list all cases"}, vector.queries)
	s.Equal([]string{"drugs"}, vector.categories)
}

func (s *RouterTestSuite) TestDatabaseCategory() {
	db := &stubLookup{out: "Attendance records for employee E001:\n- 2026-08-03: present\n"}
	router := NewRouter(&stubClassifier{category: "database"}, s.registry(nil, db, nil))

	fragment := router.Resolve(context.Background(), "attendance of E001", "attendance of E001")

	s.Require().NotNil(fragment)
	s.Contains(*fragment, "E001")
}

func (s *RouterTestSuite) TestWebCategory() {
	web := &stubWebSearcher{results: []backend.SearchResult{
		{Title: "T", URL: "http://u", Snippet: "S"},
	}}
	router := NewRouter(&stubClassifier{category: "web"}, s.registry(nil, nil, web))

	fragment := router.Resolve(context.Background(), "ceo of google", "ceo of google")

	s.Require().NotNil(fragment)
	s.Contains(*fragment, "Snippet: S")
	s.Equal(1, web.calls)
}

func (s *RouterTestSuite) TestUndecidedFallsBackToWeb() {
	web := &stubWebSearcher{results: []backend.SearchResult{{Title: "T", Snippet: "S"}}}
	router := NewRouter(&stubClassifier{category: "undecided"}, s.registry(nil, nil, web))

	fragment := router.Resolve(context.Background(), "anything", "anything")

	s.NotNil(fragment)
	s.Equal(1, web.calls)
}

func (s *RouterTestSuite) TestUnrecognizedCategoryFailsSubQuery() {
	web := &stubWebSearcher{results: []backend.SearchResult{{Title: "T", Snippet: "S"}}}
	vector := &recordingVectorSearcher{chunks: []string{"chunk"}}
	router := NewRouter(&stubClassifier{category: "finance"}, s.registry(vector, nil, web))

	fragment := router.Resolve(context.Background(), "q", "q")

	// No silent web fallback for categories outside the table.
	s.Nil(fragment)
	s.Zero(web.calls)
	s.Empty(vector.queries)
}

func (s *RouterTestSuite) TestMalformedRoutingOutput() {
	classifier := &stubClassifier{err: outputparser.NewOutputParserError("no JSON found in output", "drugs")}
	router := NewRouter(classifier, s.registry(nil, nil, nil))

	s.Nil(router.Resolve(context.Background(), "q", "q"))
}

func (s *RouterTestSuite) TestBackendFailure() {
	vector := &recordingVectorSearcher{err: errors.New("index unavailable")}
	router := NewRouter(&stubClassifier{category: "family"}, s.registry(vector, nil, nil))

	s.Nil(router.Resolve(context.Background(), "q", "q"))
}

func (s *RouterTestSuite) TestNotFoundDegradesToNil() {
	db := &stubLookup{err: backend.ErrNotFound}
	router := NewRouter(&stubClassifier{category: "database"}, s.registry(nil, db, nil))

	s.Nil(router.Resolve(context.Background(), "attendance of E999", "attendance of E999"))
}

func (s *RouterTestSuite) TestEmptyFragmentDegradesToNil() {
	db := &stubLookup{out: "   "}
	router := NewRouter(&stubClassifier{category: "database"}, s.registry(nil, db, nil))

	s.Nil(router.Resolve(context.Background(), "q", "q"))
}

func (s *RouterTestSuite) TestCustomCategoryTable() {
	vector := &recordingVectorSearcher{chunks: []string{"chunk"}}
	router := NewRouter(
		&stubClassifier{category: "criminal"},
		s.registry(vector, nil, nil),
		WithCategoryTable(map[string]BackendKind{"criminal": BackendVector}),
	)

	s.NotNil(router.Resolve(context.Background(), "q", "q"))
	s.Equal([]string{"criminal"}, vector.categories)
}
