// Package gateway orchestrates provider dispatch, retry, fallback and cost tracking.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/services/providers"
)

// RetryConfig bounds the retry policy around one adapter call.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig returns the standard retry policy: three attempts with
// exponential backoff between 2s and 10s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// ProviderExhaustedError reports that all retry attempts against one
// provider failed with transient errors.
type ProviderExhaustedError struct {
	Provider models.Provider
	Attempts int
	LastErr  error
}

// Error implements the error interface.
func (e *ProviderExhaustedError) Error() string {
	return fmt.Sprintf("%s: exhausted %d attempts: %v", e.Provider, e.Attempts, e.LastErr)
}

// Unwrap returns the last attempt's error.
func (e *ProviderExhaustedError) Unwrap() error {
	return e.LastErr
}

// WithRetry invokes op up to cfg.MaxAttempts times, retrying only on
// transient provider errors. Attempts are strictly sequential; the delay
// before attempt k+1 is min(MaxDelay, BaseDelay * 2^(k-1)). Permanent errors
// propagate immediately. When the attempt budget is spent the last error is
// wrapped in a ProviderExhaustedError.
func WithRetry(ctx context.Context, provider models.Provider, cfg RetryConfig, op func(context.Context) (*providers.RawResult, error)) (*providers.RawResult, error) {
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		var provErr *providers.ProviderError
		if errors.As(err, &provErr) && !provErr.IsTransient() {
			return nil, err
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}
		if err := sleep(ctx, backoffDelay(cfg, attempt)); err != nil {
			return nil, providers.ClassifyTransport(provider, err)
		}
	}

	return nil, &ProviderExhaustedError{
		Provider: provider,
		Attempts: cfg.MaxAttempts,
		LastErr:  lastErr,
	}
}

// backoffDelay computes the delay after the k-th failed attempt (1-indexed).
func backoffDelay(cfg RetryConfig, attempt int) time.Duration {
	delay := cfg.BaseDelay << (attempt - 1)
	if delay > cfg.MaxDelay || delay <= 0 {
		delay = cfg.MaxDelay
	}
	return delay
}

// sleep waits for the given duration or until the context is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
