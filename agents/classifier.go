package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/aqua777/go-ragbot/llm"
	"github.com/aqua777/go-ragbot/outputparser"
	"github.com/aqua777/go-ragbot/prompts"
)

// Classifier selects the knowledge base for one sub-query.
type Classifier struct {
	llm    llm.LLM
	prompt *prompts.PromptTemplate
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithRoutingPrompt overrides the default routing prompt.
func WithRoutingPrompt(template string) ClassifierOption {
	return func(c *Classifier) {
		c.prompt = prompts.NewPromptTemplate(template)
	}
}

// NewClassifier creates a new Classifier.
func NewClassifier(model llm.LLM, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		llm:    model,
		prompt: prompts.NewPromptTemplate(prompts.DefaultRoutingPrompt),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify asks the model which knowledge base should serve subQuery.
// The returned category is the raw, lower-cased label; mapping it onto a
// backend (and rejecting unknown labels) is the router's job. A malformed
// or category-less response is an *outputparser.OutputParserError.
func (c *Classifier) Classify(ctx context.Context, subQuery string) (string, error) {
	raw, err := c.llm.Chat(ctx, c.prompt.FormatMessages(map[string]string{
		"query_str": subQuery,
	}))
	if err != nil {
		return "", fmt.Errorf("routing call failed: %w", err)
	}

	var parsed struct {
		KnowledgeBase string `json:"knowledge_base"`
	}
	if err := outputparser.ParseJSON(raw, &parsed); err != nil {
		return "", err
	}

	category := strings.ToLower(strings.TrimSpace(parsed.KnowledgeBase))
	if category == "" {
		return "", outputparser.NewOutputParserError("missing knowledge_base field", raw)
	}

	return category, nil
}
