package granter

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/coinquest/task-reward-engine/pkg/domain"
)

// MockGranter is a mock implementation of Granter for testing.
// It uses testify/mock to allow test assertions on method calls.
// It also satisfies the engine's reward dispatcher interface, so settlement
// tests can observe dispatch calls directly.
type MockGranter struct {
	mock.Mock
}

// NewMockGranter creates a new mock granter.
func NewMockGranter() *MockGranter {
	return &MockGranter{}
}

// Grant mocks granting a reward.
func (m *MockGranter) Grant(ctx context.Context, userID string, reward *domain.RewardDefinition) error {
	args := m.Called(ctx, userID, reward)
	return args.Error(0)
}
