package repository

import (
	"context"

	"github.com/coinquest/task-reward-engine/pkg/domain"
)

// WalletRepository defines the interface for managing user coin wallets.
type WalletRepository interface {
	// GetWallet retrieves a user's wallet.
	// Returns nil if no wallet exists (wallets are provisioned lazily).
	GetWallet(ctx context.Context, userID string) (*domain.UserWallet, error)

	// UpsertWallet provisions a zero-balance wallet if none exists and
	// returns the current row either way. The insert uses
	// ON CONFLICT (user_id) with a no-op update plus RETURNING, so
	// concurrent first-time calls cannot create duplicate wallets and
	// always observe the surviving row.
	UpsertWallet(ctx context.Context, userID string) (*domain.UserWallet, error)

	// AddCoins atomically credits the wallet, provisioning it when absent.
	// The increment happens inside a single conflict-upsert statement
	// (coin_balance = coin_balance + amount), never read-modify-write.
	// Amount validation is the caller's responsibility.
	AddCoins(ctx context.Context, userID string, amount int64) error
}
