package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/config"
)

// NewCompleter builds the configured provider client wrapped with the
// timeout/retry policy. This is the only constructor main needs.
func NewCompleter(cfg *config.AIConfig, logger *zap.Logger) (TextCompleter, error) {
	var (
		inner TextCompleter
		err   error
	)

	switch cfg.Provider {
	case "openai":
		inner, err = NewOpenAIClient(&OpenAIConfig{
			Endpoint: cfg.Endpoint,
			Model:    cfg.Model,
			APIKey:   cfg.APIKey,
		}, logger)
	case "anthropic":
		inner, err = NewAnthropicClient(&AnthropicConfig{
			Model:  cfg.Model,
			APIKey: cfg.APIKey,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", cfg.Provider, err)
	}

	return NewRetryingCompleter(inner, cfg.Timeout(), cfg.MaxRetries, logger), nil
}
