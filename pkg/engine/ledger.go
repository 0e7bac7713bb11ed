package engine

import (
	"context"
	"log/slog"

	"github.com/coinquest/task-reward-engine/pkg/domain"
	"github.com/coinquest/task-reward-engine/pkg/errors"
	"github.com/coinquest/task-reward-engine/pkg/repository"
)

// WalletLedger exposes the per-user coin ledger: idempotent wallet
// provisioning and atomic balance mutation. Other domains (e.g. order
// settlement) consume this surface to award or read coin balances.
type WalletLedger struct {
	wallets repository.WalletRepository
	logger  *slog.Logger
}

// NewWalletLedger creates a new wallet ledger.
func NewWalletLedger(wallets repository.WalletRepository, logger *slog.Logger) *WalletLedger {
	return &WalletLedger{
		wallets: wallets,
		logger:  logger,
	}
}

// GetOrCreateWallet returns the user's wallet, provisioning a zero-balance
// one if none exists. Safe to call concurrently for the same user: the
// storage upsert guarantees a single wallet row.
func (l *WalletLedger) GetOrCreateWallet(ctx context.Context, userID string) (*domain.UserWallet, error) {
	if userID == "" {
		return nil, errors.ErrValidationFailed("userID", "cannot be empty")
	}

	return l.wallets.UpsertWallet(ctx, userID)
}

// AddCoins credits the user's wallet by amount. Rejects non-positive amounts
// before any mutation. The wallet is provisioned if absent and the increment
// is applied atomically at the storage layer.
func (l *WalletLedger) AddCoins(ctx context.Context, userID string, amount int64) error {
	if userID == "" {
		return errors.ErrValidationFailed("userID", "cannot be empty")
	}
	if amount <= 0 {
		return errors.ErrInvalidAmount(amount)
	}

	if err := l.wallets.AddCoins(ctx, userID, amount); err != nil {
		return err
	}

	l.logger.Info("Credited wallet",
		"user_id", userID,
		"amount", amount,
	)

	return nil
}

// GetCoinBalance returns the wallet's balance, or zero if no wallet exists
// yet. Does not provision a wallet.
func (l *WalletLedger) GetCoinBalance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, errors.ErrValidationFailed("userID", "cannot be empty")
	}

	wallet, err := l.wallets.GetWallet(ctx, userID)
	if err != nil {
		return 0, err
	}
	if wallet == nil {
		return 0, nil
	}

	return wallet.CoinBalance, nil
}
