// Package docdb defines the document database interface for the usage archive.
package docdb

import (
	"context"

	"github.com/synapse-ai/llm-gateway/internal/domain/models"
)

// Client defines the interface for the usage archive. The archive is an
// append-only audit trail of cost records; the in-memory cost tracker
// remains the authoritative accumulator.
type Client interface {
	// InsertUsageRecord appends a cost record to the archive.
	InsertUsageRecord(ctx context.Context, record *models.CostRecord) error

	// ListUsageRecords returns the newest records, optionally filtered by
	// provider ("" means all providers).
	ListUsageRecords(ctx context.Context, provider models.Provider, limit int64) ([]models.CostRecord, error)

	// EnsureIndexes creates the required database indexes.
	EnsureIndexes(ctx context.Context) error

	// Ping checks if the database connection is alive.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}
