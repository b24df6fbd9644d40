package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAILLM implements the LLM interface for OpenAI models.
type OpenAILLM struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *slog.Logger
}

// OpenAIOption configures an OpenAILLM.
type OpenAIOption func(*OpenAILLM)

// WithModel sets the model name.
func WithModel(model string) OpenAIOption {
	return func(o *OpenAILLM) {
		o.model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float32) OpenAIOption {
	return func(o *OpenAILLM) {
		o.temperature = temperature
	}
}

// WithMaxTokens sets the completion token ceiling.
func WithMaxTokens(maxTokens int) OpenAIOption {
	return func(o *OpenAILLM) {
		o.maxTokens = maxTokens
	}
}

// NewOpenAILLM creates a new OpenAI LLM client.
// If apiKey is empty, OPENAI_API_KEY is read from the environment.
func NewOpenAILLM(apiKey string, opts ...OpenAIOption) *OpenAILLM {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	o := &OpenAILLM{
		model:       openai.GPT4oMini,
		temperature: 0.3,
		maxTokens:   800,
		logger:      slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	for _, opt := range opts {
		opt(o)
	}

	o.client = openai.NewClient(apiKey)

	return o
}

// NewOpenAILLMWithClient creates a new OpenAI LLM with an existing client.
func NewOpenAILLMWithClient(client *openai.Client, opts ...OpenAIOption) *OpenAILLM {
	o := &OpenAILLM{
		client:      client,
		model:       openai.GPT4oMini,
		temperature: 0.3,
		maxTokens:   800,
		logger:      slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Complete generates a completion for a given prompt.
func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	return o.chat(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	})
}

// Chat generates a response for a list of chat messages.
func (o *OpenAILLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	return o.chat(ctx, convertToOpenAIMessages(messages))
}

func (o *OpenAILLM) chat(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       o.model,
			Messages:    messages,
			Temperature: o.temperature,
			MaxTokens:   o.maxTokens,
		},
	)

	if err != nil {
		o.logger.Error("chat completion failed", "model", o.model, "error", err)
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// convertToOpenAIMessages converts chat messages to the go-openai format.
func convertToOpenAIMessages(messages []ChatMessage) []openai.ChatCompletionMessage {
	converted := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		converted[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return converted
}

// Ensure OpenAILLM implements LLM.
var _ LLM = (*OpenAILLM)(nil)
