package chatbot

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aqua777/go-ragbot/agents"
	"github.com/aqua777/go-ragbot/outputparser"
)

// DefaultResolveTimeout bounds one sub-query resolution, covering the
// routing call and the backend call behind it.
const DefaultResolveTimeout = 30 * time.Second

// DefaultValidateTimeout bounds the detached validation call.
const DefaultValidateTimeout = 60 * time.Second

// Decomposer breaks a user query into sub-queries.
type Decomposer interface {
	Decompose(ctx context.Context, query string) ([]string, error)
}

// SubQueryResolver resolves one sub-query to a context fragment or nil.
type SubQueryResolver interface {
	Resolve(ctx context.Context, subQuery string, originalQuery string) *string
}

// Generator produces the final answer from the query and aggregated context.
type Generator interface {
	Generate(ctx context.Context, query string, contextFragments []string) (string, error)
}

// Validator critiques a generated answer. Its outcome is only logged.
type Validator interface {
	Validate(ctx context.Context, query string, contextFragments []string, answer string) (*agents.ValidationReport, error)
}

// ChatBot drives one full chat turn: decompose the query, fan the
// sub-queries out across the router, join, generate a grounded answer and
// kick off a detached validation. It holds no per-turn state, so one
// instance can serve concurrent turns.
type ChatBot struct {
	decomposer Decomposer
	router     SubQueryResolver
	generator  Generator
	validator  Validator

	maxConcurrency  int
	resolveTimeout  time.Duration
	validateTimeout time.Duration
	logger          *slog.Logger

	validations sync.WaitGroup
}

// ChatBotOption configures a ChatBot.
type ChatBotOption func(*ChatBot)

// WithMaxConcurrency bounds the sub-query fan-out.
func WithMaxConcurrency(n int) ChatBotOption {
	return func(cb *ChatBot) {
		cb.maxConcurrency = n
	}
}

// WithResolveTimeout sets the per-sub-query resolution timeout.
func WithResolveTimeout(d time.Duration) ChatBotOption {
	return func(cb *ChatBot) {
		cb.resolveTimeout = d
	}
}

// WithValidateTimeout sets the detached validation timeout.
func WithValidateTimeout(d time.Duration) ChatBotOption {
	return func(cb *ChatBot) {
		cb.validateTimeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ChatBotOption {
	return func(cb *ChatBot) {
		cb.logger = logger
	}
}

// NewChatBot creates a new ChatBot.
func NewChatBot(decomposer Decomposer, router SubQueryResolver, generator Generator, validator Validator, opts ...ChatBotOption) *ChatBot {
	cb := &ChatBot{
		decomposer:      decomposer,
		router:          router,
		generator:       generator,
		validator:       validator,
		maxConcurrency:  runtime.NumCPU(),
		resolveTimeout:  DefaultResolveTimeout,
		validateTimeout: DefaultValidateTimeout,
		logger:          slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	for _, opt := range opts {
		opt(cb)
	}

	if cb.maxConcurrency < 1 {
		cb.maxConcurrency = 1
	}

	return cb
}

// HandleQuery runs one full chat turn and always returns a user-facing
// string, never an error: every internal fault maps to one of the fixed
// messages in messages.go.
func (cb *ChatBot) HandleQuery(ctx context.Context, userQuery string) (answer string) {
	turnID := uuid.New().String()
	logger := cb.logger.With("turn_id", turnID)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while handling query", "query", userQuery, "panic", r)
			answer = MsgInternalError
		}
	}()

	// Decompose.
	subQueries, err := cb.decomposer.Decompose(ctx, userQuery)
	if err != nil {
		if outputparser.IsParseError(err) {
			logger.Error("malformed decomposition output", "query", userQuery, "error", err)
			return MsgCannotParse
		}
		logger.Error("decomposition failed", "query", userQuery, "error", err)
		return MsgInternalError
	}
	if len(subQueries) == 0 {
		logger.Warn("no sub-queries generated", "query", userQuery)
		return MsgCannotUnderstand
	}
	logger.Info("query decomposed", "query", userQuery, "sub_queries", len(subQueries))

	// Fan-out: every sub-query resolves independently; one failure never
	// cancels or blocks the others, so the group carries no error and no
	// shared cancellation beyond the turn context.
	results := make([]*string, len(subQueries))
	var g errgroup.Group
	g.SetLimit(cb.maxConcurrency)
	for i, subQuery := range subQueries {
		i, subQuery := i, subQuery
		g.Go(func() error {
			// A panicking resolver degrades to a nil fragment like any
			// other backend failure; it must not escape the goroutine.
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic while resolving sub-query", "sub_query", subQuery, "panic", r)
				}
			}()
			resolveCtx, cancel := context.WithTimeout(ctx, cb.resolveTimeout)
			defer cancel()
			results[i] = cb.router.Resolve(resolveCtx, subQuery, userQuery)
			return nil
		})
	}
	// Join barrier: generation needs the complete aggregated context.
	_ = g.Wait()

	contextFragments := make([]string, 0, len(results))
	for _, fragment := range results {
		if fragment != nil {
			contextFragments = append(contextFragments, *fragment)
		}
	}
	if len(contextFragments) == 0 {
		logger.Warn("no context found for any sub-query", "query", userQuery)
		return MsgNoContext
	}

	// Generate.
	answer, err = cb.generator.Generate(ctx, userQuery, contextFragments)
	if err != nil {
		logger.Error("generation failed", "query", userQuery, "error", err)
		return MsgInternalError
	}

	// Validate, detached: the critic's outcome is logged and nothing else.
	cb.validateAsync(ctx, logger, userQuery, contextFragments, answer)

	return answer
}

// validateAsync runs the critic on a detached goroutine. It survives the
// turn context being cancelled once the answer has been returned.
func (cb *ChatBot) validateAsync(ctx context.Context, logger *slog.Logger, userQuery string, contextFragments []string, answer string) {
	cb.validations.Add(1)
	go func() {
		defer cb.validations.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic during validation", "query", userQuery, "panic", r)
			}
		}()

		validateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cb.validateTimeout)
		defer cancel()

		report, err := cb.validator.Validate(validateCtx, userQuery, contextFragments, answer)
		if err != nil {
			logger.Error("validation failed", "query", userQuery, "error", err)
			return
		}
		logger.Info("validation result",
			"query", userQuery,
			"verdict", report.Verdict,
			"critique", report.Critique,
			"suggestions", report.Suggestions)
	}()
}

// Wait blocks until all in-flight validations have finished. Used on
// shutdown so detached critic calls can flush their log entries.
func (cb *ChatBot) Wait() {
	cb.validations.Wait()
}
