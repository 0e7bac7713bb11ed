package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/coinquest/task-reward-engine/pkg/domain"
)

// MockWalletRepository is a mock implementation of WalletRepository for
// testing. It uses testify/mock to allow test assertions on method calls.
type MockWalletRepository struct {
	mock.Mock
}

// NewMockWalletRepository creates a new mock wallet repository.
func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{}
}

func (m *MockWalletRepository) GetWallet(ctx context.Context, userID string) (*domain.UserWallet, error) {
	args := m.Called(ctx, userID)
	wallet, _ := args.Get(0).(*domain.UserWallet)
	return wallet, args.Error(1)
}

func (m *MockWalletRepository) UpsertWallet(ctx context.Context, userID string) (*domain.UserWallet, error) {
	args := m.Called(ctx, userID)
	wallet, _ := args.Get(0).(*domain.UserWallet)
	return wallet, args.Error(1)
}

func (m *MockWalletRepository) AddCoins(ctx context.Context, userID string, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}
