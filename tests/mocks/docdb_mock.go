// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/synapse-ai/llm-gateway/internal/domain/models"
)

// MockDocDBClient is a mock implementation of docdb.Client.
type MockDocDBClient struct {
	mock.Mock
}

// NewMockDocDBClient creates a new MockDocDBClient.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{}
}

// InsertUsageRecord appends a cost record to the archive.
func (m *MockDocDBClient) InsertUsageRecord(ctx context.Context, record *models.CostRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// ListUsageRecords returns the newest records for a provider.
func (m *MockDocDBClient) ListUsageRecords(ctx context.Context, provider models.Provider, limit int64) ([]models.CostRecord, error) {
	args := m.Called(ctx, provider, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CostRecord), args.Error(1)
}

// EnsureIndexes creates the required indexes.
func (m *MockDocDBClient) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ping checks the database connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the database connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
