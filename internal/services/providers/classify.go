// Package providers defines the uniform contract over LLM backends.
package providers

import (
	"net/http"

	"github.com/synapse-ai/llm-gateway/internal/domain/models"
)

// ClassifyStatus converts a non-2xx backend response into a ProviderError.
// Rate limiting, request timeouts and server errors are transient; every
// other client error is permanent.
func ClassifyStatus(provider models.Provider, status int, detail string) *ProviderError {
	switch {
	case status == http.StatusTooManyRequests,
		status == http.StatusRequestTimeout,
		status >= http.StatusInternalServerError:
		return NewTransientError(provider, status, detail, nil)
	default:
		return NewPermanentError(provider, status, detail, nil)
	}
}

// ClassifyTransport converts a transport-level failure (connection refused,
// timeout, canceled request) into a transient ProviderError. A timed-out
// call is retry-eligible up to the attempt budget.
func ClassifyTransport(provider models.Provider, err error) *ProviderError {
	return NewTransientError(provider, 0, err.Error(), err)
}

// SplitSystem extracts the system instruction from the message list for
// adapters whose backend disallows interleaved system entries. The override
// wins when non-empty; otherwise the first system message's content is used.
// The returned slice contains only non-system messages, order preserved.
func SplitSystem(messages []models.Message, override string) (string, []models.Message) {
	system := override
	rest := make([]models.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.IsSystem() {
			if system == "" {
				system = msg.Content
			}
			continue
		}
		rest = append(rest, msg)
	}
	return system, rest
}
