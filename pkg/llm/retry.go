package llm

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// RetryingCompleter wraps a TextCompleter with a per-call timeout and a
// bounded exponential-backoff retry. The upstream service applies no
// timeout of its own; a call that exceeds the deadline fails like any
// other error and the caller's deterministic fallback takes over.
type RetryingCompleter struct {
	inner      TextCompleter
	timeout    time.Duration
	maxRetries uint64
	logger     *zap.Logger
}

// NewRetryingCompleter wraps inner with timeout and retry policy.
// maxRetries is the number of retries after the initial attempt.
func NewRetryingCompleter(inner TextCompleter, timeout time.Duration, maxRetries int, logger *zap.Logger) *RetryingCompleter {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryingCompleter{
		inner:      inner,
		timeout:    timeout,
		maxRetries: uint64(maxRetries),
		logger:     logger.Named("llm-retry"),
	}
}

// Complete implements TextCompleter.
func (r *RetryingCompleter) Complete(ctx context.Context, systemMessage, prompt string, temperature float64) (string, error) {
	var result string

	attempt := 0
	operation := func() error {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		out, err := r.inner.Complete(callCtx, systemMessage, prompt, temperature)
		if err != nil {
			// Respect caller cancellation: retrying a dead request
			// only wastes the deadline budget upstream.
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			r.logger.Warn("completion attempt failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}
		result = out
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.maxRetries)
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return "", err
	}
	return result, nil
}

// Model implements TextCompleter.
func (r *RetryingCompleter) Model() string {
	return r.inner.Model()
}
