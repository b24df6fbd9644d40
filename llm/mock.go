package llm

import (
	"context"
	"sync"
)

// MockLLM is a mock implementation of the LLM interface.
// It can be configured to return specific responses or errors, and records
// the prompts it receives for assertions.
type MockLLM struct {
	// Response is the text response to return.
	Response string
	// Err is the error to return (if any).
	Err error
	// Delay optionally blocks each call until the function returns.
	Delay func()

	mu      sync.Mutex
	prompts []string
}

// NewMockLLM creates a new MockLLM with a simple response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a new MockLLM that returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Err: err}
}

func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if m.Delay != nil {
		m.Delay()
	}
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	return m.Response, m.Err
}

func (m *MockLLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	if m.Delay != nil {
		m.Delay()
	}
	m.mu.Lock()
	if len(messages) > 0 {
		m.prompts = append(m.prompts, messages[len(messages)-1].Content)
	}
	m.mu.Unlock()
	return m.Response, m.Err
}

// Prompts returns the prompts received so far.
func (m *MockLLM) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// CallCount returns the number of calls received so far.
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Ensure MockLLM implements LLM.
var _ LLM = (*MockLLM)(nil)
