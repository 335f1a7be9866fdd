// Package llm provides text-completion clients for the translator, the
// decision engine and the explanation synthesizer.
package llm

import "context"

// TextCompleter is the single boundary to the external reasoning service:
// it accepts a system instruction and a user message and returns generated
// text. Use this interface for dependency injection so every consumer is
// testable with deterministic stubs.
type TextCompleter interface {
	// Complete generates a completion for the given prompt.
	Complete(ctx context.Context, systemMessage, prompt string, temperature float64) (string, error)

	// Model returns the configured model name.
	Model() string
}

// Ensure implementations satisfy the interface at compile time.
var (
	_ TextCompleter = (*OpenAIClient)(nil)
	_ TextCompleter = (*AnthropicClient)(nil)
	_ TextCompleter = (*RetryingCompleter)(nil)
	_ TextCompleter = (*MockTextCompleter)(nil)
)
