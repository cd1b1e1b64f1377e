// Package models contains domain models for the LLM Gateway Service.
package models

import "time"

// CostRecord captures the cost of one successful completion. Records are
// appended by the cost tracker and never mutated afterwards.
type CostRecord struct {
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
	Model        string    `json:"model" bson:"model"`
	Provider     Provider  `json:"provider" bson:"provider"`
	InputTokens  int       `json:"input_tokens" bson:"inputTokens"`
	OutputTokens int       `json:"output_tokens" bson:"outputTokens"`
	Cost         float64   `json:"cost" bson:"cost"`
}

// CostStats is a read-only snapshot of the cost tracker's accumulated state.
type CostStats struct {
	TotalCost      float64      `json:"total_cost"`
	TotalRequests  int          `json:"total_requests"`
	RecentRequests []CostRecord `json:"recent_requests"`
}
