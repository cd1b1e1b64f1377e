// Package models contains domain models for the LLM Gateway Service.
package models

// Provider identifies an external LLM backend.
type Provider string

const (
	// ProviderOpenAI is the primary chat-completion backend.
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic is the secondary chat-completion backend.
	ProviderAnthropic Provider = "anthropic"
)

// IsValid reports whether the provider is one of the supported backends.
func (p Provider) IsValid() bool {
	return p == ProviderOpenAI || p == ProviderAnthropic
}

// Other returns the alternate provider, used for cross-provider fallback.
func (p Provider) Other() Provider {
	if p == ProviderOpenAI {
		return ProviderAnthropic
	}
	return ProviderOpenAI
}

// Usage holds the token counts reported by a provider for one completion.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// ResultMetadata holds per-completion metadata. FinishReason is populated by
// the OpenAI-style backend, StopReason by the Anthropic-style backend.
type ResultMetadata struct {
	FinishReason string  `json:"finish_reason,omitempty"`
	StopReason   string  `json:"stop_reason,omitempty"`
	DurationMs   float64 `json:"duration_ms"`
}

// CompletionResult is the normalized outcome of one successful gateway call.
// It is immutable after construction.
type CompletionResult struct {
	Content  string         `json:"content"`
	Model    string         `json:"model"`
	Provider Provider       `json:"provider"`
	Usage    Usage          `json:"usage"`
	Metadata ResultMetadata `json:"metadata"`
}
