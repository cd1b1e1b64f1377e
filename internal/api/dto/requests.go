// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// MessageDTO represents one chat message in a request body.
type MessageDTO struct {
	Role    string `json:"role" binding:"required,oneof=system user assistant"`
	Content string `json:"content" binding:"required"`
}

// CompletionRequest represents the request body for generating a completion.
type CompletionRequest struct {
	Messages    []MessageDTO `json:"messages" binding:"required,min=1,dive"`
	Provider    string       `json:"provider" binding:"omitempty,oneof=openai anthropic"`
	Model       string       `json:"model"`
	Temperature *float64     `json:"temperature" binding:"omitempty,gte=0,lte=2"`
	MaxTokens   int          `json:"max_tokens" binding:"omitempty,gt=0"`
	Fallback    *bool        `json:"fallback"`
}

// FallbackEnabled reports whether cross-provider fallback is requested.
// Fallback defaults to true when the field is omitted.
func (r *CompletionRequest) FallbackEnabled() bool {
	return r.Fallback == nil || *r.Fallback
}

// SaveContextRequest represents the request body for storing a context.
type SaveContextRequest struct {
	Messages   []MessageDTO           `json:"messages" binding:"required,dive"`
	Metadata   map[string]interface{} `json:"metadata"`
	MaxHistory int                    `json:"max_history" binding:"omitempty,gte=1"`
	TTLSeconds int                    `json:"ttl_seconds" binding:"omitempty,gte=0"`
}

// ExtendTTLRequest represents the request body for refreshing a context's TTL.
type ExtendTTLRequest struct {
	TTLSeconds int `json:"ttl_seconds" binding:"omitempty,gte=0"`
}
