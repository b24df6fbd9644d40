package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/aqua777/go-ragbot/llm"
	"github.com/aqua777/go-ragbot/prompts"
)

// contextSeparator joins aggregated context fragments in the generation
// and validation prompts.
const contextSeparator = "\n\n---\n\n"

// Generator produces the final grounded answer from the user query and the
// aggregated context fragments.
type Generator struct {
	llm    llm.LLM
	prompt *prompts.PromptTemplate
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithGenerationPrompt overrides the default generation prompt.
func WithGenerationPrompt(template string) GeneratorOption {
	return func(g *Generator) {
		g.prompt = prompts.NewPromptTemplate(template)
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(model llm.LLM, opts ...GeneratorOption) *Generator {
	g := &Generator{
		llm:    model,
		prompt: prompts.NewPromptTemplate(prompts.DefaultGenerationPrompt),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate answers query using only the given context fragments.
func (g *Generator) Generate(ctx context.Context, query string, contextFragments []string) (string, error) {
	answer, err := g.llm.Chat(ctx, g.prompt.FormatMessages(map[string]string{
		"context_str": strings.Join(contextFragments, contextSeparator),
		"query_str":   query,
	}))
	if err != nil {
		return "", fmt.Errorf("generation call failed: %w", err)
	}

	return strings.TrimSpace(answer), nil
}
