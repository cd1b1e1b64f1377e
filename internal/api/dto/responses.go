// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/services/contextstore"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// CompletionResponse represents a successful completion.
type CompletionResponse struct {
	Content  string                `json:"content"`
	Model    string                `json:"model"`
	Provider string                `json:"provider"`
	Usage    models.Usage          `json:"usage"`
	Metadata models.ResultMetadata `json:"metadata"`
}

// NewCompletionResponse converts a domain result to its API shape.
func NewCompletionResponse(result *models.CompletionResult) *CompletionResponse {
	return &CompletionResponse{
		Content:  result.Content,
		Model:    result.Model,
		Provider: string(result.Provider),
		Usage:    result.Usage,
		Metadata: result.Metadata,
	}
}

// CostStatsResponse represents the cost tracking snapshot.
type CostStatsResponse struct {
	TotalCost      float64             `json:"total_cost"`
	TotalRequests  int                 `json:"total_requests"`
	RecentRequests []models.CostRecord `json:"recent_requests"`
}

// ContextResponse represents a stored conversation context.
type ContextResponse struct {
	AgentID    string                 `json:"agent_id"`
	ContextID  string                 `json:"context_id"`
	Messages   []models.Message       `json:"messages"`
	Metadata   map[string]interface{} `json:"metadata"`
	MaxHistory int                    `json:"max_history"`
}

// ContextListResponse represents the context enumeration result.
type ContextListResponse struct {
	Contexts []contextstore.ContextRef `json:"contexts"`
	Count    int                       `json:"count"`
}

// ClearContextsResponse represents the result of a bulk context delete.
type ClearContextsResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// SuccessResponse represents a simple success indication.
type SuccessResponse struct {
	Success bool `json:"success"`
}
