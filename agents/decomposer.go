// Package agents contains the model-backed adapters of the chat pipeline:
// query decomposition, knowledge-base routing, grounded generation and
// answer validation. Each adapter wraps an llm.LLM with a prompt template
// and strict JSON parsing of the untrusted model output.
package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/aqua777/go-ragbot/llm"
	"github.com/aqua777/go-ragbot/outputparser"
	"github.com/aqua777/go-ragbot/prompts"
)

// Decomposer breaks a user query into independently resolvable sub-queries.
type Decomposer struct {
	llm    llm.LLM
	prompt *prompts.PromptTemplate
}

// DecomposerOption configures a Decomposer.
type DecomposerOption func(*Decomposer)

// WithDecompositionPrompt overrides the default decomposition prompt.
func WithDecompositionPrompt(template string) DecomposerOption {
	return func(d *Decomposer) {
		d.prompt = prompts.NewPromptTemplate(template)
	}
}

// NewDecomposer creates a new Decomposer.
func NewDecomposer(model llm.LLM, opts ...DecomposerOption) *Decomposer {
	d := &Decomposer{
		llm:    model,
		prompt: prompts.NewPromptTemplate(prompts.DefaultDecompositionPrompt),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Decompose asks the model to split query into sub-queries.
// A malformed model response is returned as *outputparser.OutputParserError
// so the caller can distinguish it from transport failures. Blank entries
// are dropped; an empty slice is a valid outcome the caller must handle.
func (d *Decomposer) Decompose(ctx context.Context, query string) ([]string, error) {
	raw, err := d.llm.Chat(ctx, d.prompt.FormatMessages(map[string]string{
		"query_str": query,
	}))
	if err != nil {
		return nil, fmt.Errorf("decomposition call failed: %w", err)
	}

	var parsed struct {
		Queries []string `json:"queries"`
	}
	if err := outputparser.ParseJSON(raw, &parsed); err != nil {
		return nil, err
	}

	subQueries := make([]string, 0, len(parsed.Queries))
	for _, q := range parsed.Queries {
		q = strings.TrimSpace(q)
		if q != "" {
			subQueries = append(subQueries, q)
		}
	}

	return subQueries, nil
}
