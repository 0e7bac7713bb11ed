package repository

import (
	"context"
	"database/sql"

	"github.com/coinquest/task-reward-engine/pkg/domain"
	"github.com/coinquest/task-reward-engine/pkg/errors"
)

// PostgresWalletRepository implements WalletRepository using PostgreSQL.
type PostgresWalletRepository struct {
	db *sql.DB
}

// NewPostgresWalletRepository creates a new PostgreSQL-backed wallet repository.
func NewPostgresWalletRepository(db *sql.DB) *PostgresWalletRepository {
	return &PostgresWalletRepository{
		db: db,
	}
}

// GetWallet retrieves a user's wallet.
func (r *PostgresWalletRepository) GetWallet(ctx context.Context, userID string) (*domain.UserWallet, error) {
	query := `
		SELECT user_id, coin_balance, created_at, updated_at
		FROM user_wallet
		WHERE user_id = $1
	`

	var wallet domain.UserWallet
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&wallet.UserID,
		&wallet.CoinBalance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // No wallet exists (lazy provisioning)
	}

	if err != nil {
		return nil, errors.ErrDatabaseError("get wallet", err)
	}

	return &wallet, nil
}

// UpsertWallet provisions a zero-balance wallet if none exists and returns
// the current row. The no-op DO UPDATE makes RETURNING yield the row on both
// the insert and conflict paths, so concurrent first-time calls all observe
// the single surviving wallet.
func (r *PostgresWalletRepository) UpsertWallet(ctx context.Context, userID string) (*domain.UserWallet, error) {
	query := `
		INSERT INTO user_wallet (user_id, coin_balance, created_at, updated_at)
		VALUES ($1, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			user_id = EXCLUDED.user_id
		RETURNING user_id, coin_balance, created_at, updated_at
	`

	var wallet domain.UserWallet
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&wallet.UserID,
		&wallet.CoinBalance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)

	if err != nil {
		return nil, errors.ErrDatabaseError("upsert wallet", err)
	}

	return &wallet, nil
}

// AddCoins atomically credits the wallet, provisioning it when absent.
// The increment runs inside the conflict-upsert itself
// (coin_balance = coin_balance + amount), so concurrent credits never
// lose updates.
func (r *PostgresWalletRepository) AddCoins(ctx context.Context, userID string, amount int64) error {
	query := `
		INSERT INTO user_wallet (user_id, coin_balance, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			coin_balance = user_wallet.coin_balance + EXCLUDED.coin_balance,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, userID, amount)
	if err != nil {
		return errors.ErrDatabaseError("add coins", err)
	}

	return nil
}
