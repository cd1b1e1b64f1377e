// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	"github.com/synapse-ai/llm-gateway/internal/services/gateway"
)

// MockGatewayService is a mock implementation of gateway.Service.
type MockGatewayService struct {
	mock.Mock
}

// NewMockGatewayService creates a new MockGatewayService.
func NewMockGatewayService() *MockGatewayService {
	return &MockGatewayService{}
}

// Complete generates a completion.
func (m *MockGatewayService) Complete(ctx context.Context, req *gateway.CompleteRequest) (*models.CompletionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CompletionResult), args.Error(1)
}

// CostStats returns the cost tracker snapshot.
func (m *MockGatewayService) CostStats() (*models.CostStats, bool) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.CostStats), args.Bool(1)
}
