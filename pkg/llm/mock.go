package llm

import "context"

// MockTextCompleter is a configurable mock for testing LLM-backed
// components. Set CompleteFunc to control behavior in tests.
type MockTextCompleter struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns empty string and nil error.
	CompleteFunc func(ctx context.Context, systemMessage, prompt string, temperature float64) (string, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification.
	CompleteCalls   int
	LastSystem      string
	LastPrompt      string
	LastTemperature float64
}

// NewMockTextCompleter creates a new mock with sensible defaults.
func NewMockTextCompleter() *MockTextCompleter {
	return &MockTextCompleter{ModelName: "mock-model"}
}

// Complete implements TextCompleter.
func (m *MockTextCompleter) Complete(ctx context.Context, systemMessage, prompt string, temperature float64) (string, error) {
	m.CompleteCalls++
	m.LastSystem = systemMessage
	m.LastPrompt = prompt
	m.LastTemperature = temperature
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemMessage, prompt, temperature)
	}
	return "", nil
}

// Model implements TextCompleter.
func (m *MockTextCompleter) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Reset clears call tracking.
func (m *MockTextCompleter) Reset() {
	m.CompleteCalls = 0
	m.LastSystem = ""
	m.LastPrompt = ""
	m.LastTemperature = 0
}
