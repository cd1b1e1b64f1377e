// Package providers defines the uniform contract over LLM backends.
package providers

import (
	"context"
	"fmt"

	"github.com/synapse-ai/llm-gateway/internal/domain/models"
)

// Request is the normalized chat-completion request sent to a backend.
type Request struct {
	// Messages is the ordered conversation history, including any system
	// entries. Adapters that require the system instruction out of band
	// extract it from here.
	Messages []models.Message

	// Model overrides the adapter's default model when non-empty.
	Model string

	// Temperature overrides the adapter's default when non-nil.
	Temperature *float64

	// MaxTokens overrides the adapter's default when > 0.
	MaxTokens int

	// System explicitly overrides the system instruction for adapters that
	// take it as a dedicated parameter.
	System string
}

// RawResult is the normalized reply from a backend, irrespective of the
// backend-specific field names.
type RawResult struct {
	Content      string
	Model        string
	Usage        models.Usage
	FinishReason string
	StopReason   string
}

// Provider is the uniform adapter contract over one LLM backend.
type Provider interface {
	// Name identifies the backend.
	Name() models.Provider

	// Send performs one chat-completion call. Failures are reported as
	// *ProviderError so callers can distinguish transient from permanent.
	Send(ctx context.Context, req *Request) (*RawResult, error)
}

// ErrorKind classifies a provider failure for retry decisions.
type ErrorKind string

const (
	// ErrorKindTransient marks retry-eligible failures: timeouts,
	// connection errors, 408, 429 and 5xx responses.
	ErrorKindTransient ErrorKind = "transient"
	// ErrorKindPermanent marks failures retrying cannot fix: auth errors
	// and other 4xx responses.
	ErrorKindPermanent ErrorKind = "permanent"
)

// ProviderError is the tagged failure reported by an adapter.
type ProviderError struct {
	Provider models.Provider
	Kind     ErrorKind
	Status   int
	Detail   string
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s error (status %d): %s", e.Provider, e.Kind, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Provider, e.Kind, e.Detail)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether the failure is retry-eligible.
func (e *ProviderError) IsTransient() bool {
	return e.Kind == ErrorKindTransient
}

// NewTransientError builds a retry-eligible provider error.
func NewTransientError(provider models.Provider, status int, detail string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Kind:     ErrorKindTransient,
		Status:   status,
		Detail:   detail,
		Err:      err,
	}
}

// NewPermanentError builds a provider error that must not be retried.
func NewPermanentError(provider models.Provider, status int, detail string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Kind:     ErrorKindPermanent,
		Status:   status,
		Detail:   detail,
		Err:      err,
	}
}
