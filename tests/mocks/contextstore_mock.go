// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/services/contextstore"
)

// MockContextStore is a mock implementation of contextstore.Service.
type MockContextStore struct {
	mock.Mock
}

// NewMockContextStore creates a new MockContextStore.
func NewMockContextStore() *MockContextStore {
	return &MockContextStore{}
}

// Save serializes and writes a context.
func (m *MockContextStore) Save(ctx context.Context, agentID, contextID string, c *models.ConversationContext, ttl time.Duration) bool {
	args := m.Called(ctx, agentID, contextID, c, ttl)
	return args.Bool(0)
}

// Load returns the stored context or nil.
func (m *MockContextStore) Load(ctx context.Context, agentID, contextID string) *models.ConversationContext {
	args := m.Called(ctx, agentID, contextID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.ConversationContext)
}

// Delete removes a context.
func (m *MockContextStore) Delete(ctx context.Context, agentID, contextID string) bool {
	args := m.Called(ctx, agentID, contextID)
	return args.Bool(0)
}

// Exists reports whether a context is stored.
func (m *MockContextStore) Exists(ctx context.Context, agentID, contextID string) bool {
	args := m.Called(ctx, agentID, contextID)
	return args.Bool(0)
}

// ExtendTTL refreshes a context's expiration.
func (m *MockContextStore) ExtendTTL(ctx context.Context, agentID, contextID string, ttl time.Duration) bool {
	args := m.Called(ctx, agentID, contextID, ttl)
	return args.Bool(0)
}

// List enumerates stored contexts.
func (m *MockContextStore) List(ctx context.Context, agentID string) []contextstore.ContextRef {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]contextstore.ContextRef)
}

// ClearAll bulk-deletes contexts.
func (m *MockContextStore) ClearAll(ctx context.Context, agentID string) int64 {
	args := m.Called(ctx, agentID)
	return args.Get(0).(int64)
}

// BuildKey returns the storage key for a pair.
func (m *MockContextStore) BuildKey(agentID, contextID string) string {
	args := m.Called(agentID, contextID)
	return args.String(0)
}
