// Package gateway orchestrates provider dispatch, retry, fallback and cost tracking.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	domainerrors "github.com/synapse-ai/llm-gateway/internal/domain/errors"
	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/services/providers"
)

// CompleteRequest is one gateway completion request.
type CompleteRequest struct {
	// Messages is the ordered conversation, including system entries.
	Messages []models.Message

	// Provider selects the primary backend. Defaults to OpenAI.
	Provider models.Provider

	// Fallback enables one attempt against the alternate provider after the
	// primary's retry budget is exhausted.
	Fallback bool

	// Model, Temperature and MaxTokens override the provider defaults when set.
	Model       string
	Temperature *float64
	MaxTokens   int
}

// CompletionFailedError is the terminal gateway failure: the primary
// provider failed and either fallback was disabled or the fallback provider
// failed too.
type CompletionFailedError struct {
	Provider    models.Provider
	PrimaryErr  error
	FallbackErr error
}

// Error implements the error interface.
func (e *CompletionFailedError) Error() string {
	if e.FallbackErr != nil {
		return fmt.Sprintf("completion failed: primary %s: %v; fallback %s: %v",
			e.Provider, e.PrimaryErr, e.Provider.Other(), e.FallbackErr)
	}
	return fmt.Sprintf("completion failed: %s: %v", e.Provider, e.PrimaryErr)
}

// Unwrap returns the primary provider's error.
func (e *CompletionFailedError) Unwrap() error {
	return e.PrimaryErr
}

// Service dispatches completion requests across providers.
type Service interface {
	// Complete generates a completion, retrying transient failures and
	// falling back to the alternate provider when enabled.
	Complete(ctx context.Context, req *CompleteRequest) (*models.CompletionResult, error)

	// CostStats returns the cost tracker snapshot, or false when cost
	// tracking is disabled.
	CostStats() (*models.CostStats, bool)
}

// Config holds the configuration for the gateway service.
type Config struct {
	// Providers maps each backend name to its adapter. Both backends must
	// be present for fallback to work.
	Providers map[models.Provider]providers.Provider

	// Retry bounds the per-provider retry policy. Zero value uses defaults.
	Retry RetryConfig

	// CostTracker records usage on successful completions. Nil disables
	// cost tracking.
	CostTracker *CostTracker
}

// service implements the Service interface.
type service struct {
	providers map[models.Provider]providers.Provider
	retry     RetryConfig
	costs     *CostTracker
	logger    zerolog.Logger
}

// NewService creates a new gateway service.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}

	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryConfig()
	}

	return &service{
		providers: cfg.Providers,
		retry:     retry,
		costs:     cfg.CostTracker,
		logger:    log.Logger,
	}, nil
}

// Complete generates a completion with retry and cross-provider fallback.
// Exactly one alternate provider is tried; there is no fallback chaining.
func (s *service) Complete(ctx context.Context, req *CompleteRequest) (*models.CompletionResult, error) {
	if req == nil || len(req.Messages) == 0 {
		return nil, domainerrors.NewValidationError("messages are required", "")
	}
	for _, msg := range req.Messages {
		if !msg.Role.IsValid() {
			return nil, domainerrors.NewValidationError("invalid message role", string(msg.Role))
		}
	}

	primary := req.Provider
	if primary == "" {
		primary = models.ProviderOpenAI
	}
	if !primary.IsValid() {
		return nil, domainerrors.NewValidationError("unsupported provider", string(primary))
	}

	result, primaryErr := s.completeWith(ctx, primary, req)
	if primaryErr == nil {
		return result, nil
	}

	if !req.Fallback {
		return nil, &CompletionFailedError{Provider: primary, PrimaryErr: primaryErr}
	}

	fallback := primary.Other()
	s.logger.Warn().
		Str("primary_provider", string(primary)).
		Str("fallback_provider", string(fallback)).
		Err(primaryErr).
		Msg("fallback_triggered")

	result, fallbackErr := s.completeWith(ctx, fallback, req)
	if fallbackErr == nil {
		return result, nil
	}

	s.logger.Error().
		Str("fallback_provider", string(fallback)).
		Err(fallbackErr).
		Msg("fallback_failed")

	return nil, &CompletionFailedError{
		Provider:    primary,
		PrimaryErr:  primaryErr,
		FallbackErr: fallbackErr,
	}
}

// completeWith runs the retry policy against one provider and, on success,
// records duration and cost.
func (s *service) completeWith(ctx context.Context, name models.Provider, req *CompleteRequest) (*models.CompletionResult, error) {
	adapter, ok := s.providers[name]
	if !ok {
		return nil, domainerrors.NewInternalError("provider not configured", fmt.Errorf("provider %s", name))
	}

	provReq := &providers.Request{
		Messages:    req.Messages,
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	s.logger.Info().
		Str("provider", string(name)).
		Str("model", req.Model).
		Int("message_count", len(req.Messages)).
		Msg("completion_started")

	start := time.Now()
	raw, err := WithRetry(ctx, name, s.retry, func(ctx context.Context) (*providers.RawResult, error) {
		return adapter.Send(ctx, provReq)
	})
	durationMs := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		s.logger.Error().
			Str("provider", string(name)).
			Err(err).
			Msg("completion_failed")
		return nil, err
	}

	if s.costs != nil {
		s.costs.TrackUsage(ctx, raw.Model, raw.Usage.InputTokens, raw.Usage.OutputTokens, name)
	}

	s.logger.Info().
		Str("provider", string(name)).
		Str("model", raw.Model).
		Int("input_tokens", raw.Usage.InputTokens).
		Int("output_tokens", raw.Usage.OutputTokens).
		Float64("duration_ms", durationMs).
		Msg("completion_succeeded")

	return &models.CompletionResult{
		Content:  raw.Content,
		Model:    raw.Model,
		Provider: name,
		Usage:    raw.Usage,
		Metadata: models.ResultMetadata{
			FinishReason: raw.FinishReason,
			StopReason:   raw.StopReason,
			DurationMs:   durationMs,
		},
	}, nil
}

// CostStats returns the cost tracker snapshot, or false when disabled.
func (s *service) CostStats() (*models.CostStats, bool) {
	if s.costs == nil {
		return nil, false
	}
	return s.costs.Stats(), true
}
