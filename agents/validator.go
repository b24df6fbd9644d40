package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/aqua777/go-ragbot/llm"
	"github.com/aqua777/go-ragbot/outputparser"
	"github.com/aqua777/go-ragbot/prompts"
)

// ValidationReport is the critic's verdict on a generated answer.
// It is produced purely for logging and audit; it never feeds back into
// the answer returned to the user.
type ValidationReport struct {
	Verdict     string `json:"verdict"`
	Critique    string `json:"critique"`
	Suggestions string `json:"suggestions"`
}

// Validator critiques a generated answer against the question and the
// context it was grounded in.
type Validator struct {
	llm    llm.LLM
	prompt *prompts.PromptTemplate
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithValidationPrompt overrides the default validation prompt.
func WithValidationPrompt(template string) ValidatorOption {
	return func(v *Validator) {
		v.prompt = prompts.NewPromptTemplate(template)
	}
}

// NewValidator creates a new Validator.
func NewValidator(model llm.LLM, opts ...ValidatorOption) *Validator {
	v := &Validator{
		llm:    model,
		prompt: prompts.NewPromptTemplate(prompts.DefaultValidationPrompt),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Validate asks the critic model to evaluate answer.
func (v *Validator) Validate(ctx context.Context, query string, contextFragments []string, answer string) (*ValidationReport, error) {
	raw, err := v.llm.Chat(ctx, v.prompt.FormatMessages(map[string]string{
		"query_str":    query,
		"context_str":  strings.Join(contextFragments, contextSeparator),
		"response_str": answer,
	}))
	if err != nil {
		return nil, fmt.Errorf("validation call failed: %w", err)
	}

	var report ValidationReport
	if err := outputparser.ParseJSON(raw, &report); err != nil {
		return nil, err
	}

	return &report, nil
}
