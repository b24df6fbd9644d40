package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// AzureOpenAILLM implements the LLM interface for Azure OpenAI deployments.
// It uses the same underlying client as OpenAI but with Azure-specific
// configuration; the model field holds the deployment name.
type AzureOpenAILLM struct {
	client      *openai.Client
	model       string
	apiVersion  string
	temperature float32
	maxTokens   int
	logger      *slog.Logger
}

// AzureOpenAIOption configures an AzureOpenAILLM.
type AzureOpenAIOption func(*AzureOpenAILLM)

// WithAzureDeployment sets the deployment name (model).
func WithAzureDeployment(deployment string) AzureOpenAIOption {
	return func(a *AzureOpenAILLM) {
		a.model = deployment
	}
}

// WithAzureAPIVersion sets the API version.
func WithAzureAPIVersion(version string) AzureOpenAIOption {
	return func(a *AzureOpenAILLM) {
		a.apiVersion = version
	}
}

// WithAzureTemperature sets the sampling temperature.
func WithAzureTemperature(temperature float32) AzureOpenAIOption {
	return func(a *AzureOpenAILLM) {
		a.temperature = temperature
	}
}

// NewAzureOpenAILLM creates a new Azure OpenAI LLM client.
// Endpoint, API key and deployment default to the AZURE_OPENAI_ENDPOINT,
// AZURE_OPENAI_API_KEY and AZURE_OPENAI_DEPLOYMENT environment variables.
func NewAzureOpenAILLM(opts ...AzureOpenAIOption) *AzureOpenAILLM {
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	deployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT")

	a := &AzureOpenAILLM{
		model:       deployment,
		apiVersion:  "2024-02-15-preview",
		temperature: 0.3,
		maxTokens:   800,
		logger:      slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	for _, opt := range opts {
		opt(a)
	}

	config := openai.DefaultAzureConfig(apiKey, endpoint)
	config.APIVersion = a.apiVersion

	a.client = openai.NewClientWithConfig(config)

	return a
}

// NewAzureOpenAILLMWithConfig creates a new Azure OpenAI LLM client with
// explicit configuration.
func NewAzureOpenAILLMWithConfig(endpoint, apiKey, deployment, apiVersion string) *AzureOpenAILLM {
	if apiVersion == "" {
		apiVersion = "2024-02-15-preview"
	}

	config := openai.DefaultAzureConfig(apiKey, endpoint)
	config.APIVersion = apiVersion

	return &AzureOpenAILLM{
		client:      openai.NewClientWithConfig(config),
		model:       deployment,
		apiVersion:  apiVersion,
		temperature: 0.3,
		maxTokens:   800,
		logger:      slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

// Complete generates a completion for a given prompt.
func (a *AzureOpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	return a.chat(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	})
}

// Chat generates a response for a list of chat messages.
func (a *AzureOpenAILLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	return a.chat(ctx, convertToOpenAIMessages(messages))
}

func (a *AzureOpenAILLM) chat(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       a.model,
			Messages:    messages,
			Temperature: a.temperature,
			MaxTokens:   a.maxTokens,
		},
	)

	if err != nil {
		a.logger.Error("chat completion failed", "deployment", a.model, "error", err)
		return "", fmt.Errorf("azure openai completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("azure openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// Ensure AzureOpenAILLM implements LLM.
var _ LLM = (*AzureOpenAILLM)(nil)
