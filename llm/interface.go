package llm

import "context"

// LLM is the interface for interacting with Large Language Models.
// Every model-backed pipeline stage (decomposition, routing, generation,
// validation) consumes this interface, never a concrete client.
type LLM interface {
	// Complete generates a completion for a given prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// Chat generates a response for a list of chat messages.
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
}
