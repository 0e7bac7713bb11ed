package granter

import (
	"context"
	"log/slog"

	"github.com/coinquest/task-reward-engine/pkg/domain"
	"github.com/coinquest/task-reward-engine/pkg/errors"
)

// Granter grants a single kind of reward to a user.
// One implementation exists per reward kind; adding a kind means registering
// a new Granter with the Dispatcher, not editing a switch.
type Granter interface {
	// Grant effects the reward for the user. A non-nil error aborts
	// settlement for the owning task record.
	Grant(ctx context.Context, userID string, reward *domain.RewardDefinition) error
}

// WalletCrediter is the narrow wallet surface the coin granter needs.
// Satisfied by the engine's wallet ledger.
type WalletCrediter interface {
	AddCoins(ctx context.Context, userID string, amount int64) error
}

// Dispatcher routes reward definitions to the Granter registered for their
// kind. Unknown kinds are rejected, never silently skipped.
type Dispatcher struct {
	granters map[domain.RewardType]Granter
	logger   *slog.Logger
}

// NewDispatcher creates an empty Dispatcher. Use Register to attach granters,
// or NewDefaultDispatcher for the standard wiring.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		granters: make(map[domain.RewardType]Granter),
		logger:   logger,
	}
}

// NewDefaultDispatcher wires the standard granters: coin rewards credit the
// wallet ledger; cash, experience, and item rewards fail explicitly until a
// backing ledger exists.
func NewDefaultDispatcher(wallet WalletCrediter, logger *slog.Logger) *Dispatcher {
	d := NewDispatcher(logger)
	d.Register(domain.RewardTypeCoin, NewCoinGranter(wallet, logger))
	d.Register(domain.RewardTypeCash, NewUnimplementedGranter(domain.RewardTypeCash))
	d.Register(domain.RewardTypeExperience, NewUnimplementedGranter(domain.RewardTypeExperience))
	d.Register(domain.RewardTypeItem, NewUnimplementedGranter(domain.RewardTypeItem))
	return d
}

// Register attaches a granter for a reward kind, replacing any existing one.
func (d *Dispatcher) Register(kind domain.RewardType, g Granter) {
	d.granters[kind] = g
}

// Grant dispatches the reward to the granter registered for its kind.
func (d *Dispatcher) Grant(ctx context.Context, userID string, reward *domain.RewardDefinition) error {
	g, ok := d.granters[reward.Type]
	if !ok {
		d.logger.Error("Rejecting reward of unknown kind",
			"reward_id", reward.ID,
			"reward_type", string(reward.Type),
			"user_id", userID,
		)
		return errors.ErrRewardKindUnknown(string(reward.Type))
	}

	if err := g.Grant(ctx, userID, reward); err != nil {
		return errors.ErrRewardGrantFailed(string(reward.Type), reward.ID, err)
	}

	return nil
}

// CoinGranter credits coin rewards to the user's wallet ledger.
type CoinGranter struct {
	wallet WalletCrediter
	logger *slog.Logger
}

// NewCoinGranter creates a granter backed by the given wallet ledger.
func NewCoinGranter(wallet WalletCrediter, logger *slog.Logger) *CoinGranter {
	return &CoinGranter{
		wallet: wallet,
		logger: logger,
	}
}

// Grant credits the wallet by the reward amount. A ledger failure fails the
// whole grant for this reward definition.
func (g *CoinGranter) Grant(ctx context.Context, userID string, reward *domain.RewardDefinition) error {
	if err := g.wallet.AddCoins(ctx, userID, reward.Amount); err != nil {
		return err
	}

	g.logger.Info("Granted coin reward",
		"user_id", userID,
		"reward_id", reward.ID,
		"amount", reward.Amount,
	)

	return nil
}

// UnimplementedGranter rejects grants for reward kinds that have no backing
// ledger yet (cash, experience, item). Failing loudly here keeps settlement
// honest: a record is only marked rewarded when every reward was effected.
type UnimplementedGranter struct {
	kind domain.RewardType
}

// NewUnimplementedGranter creates a granter that always fails for the kind.
func NewUnimplementedGranter(kind domain.RewardType) *UnimplementedGranter {
	return &UnimplementedGranter{kind: kind}
}

// Grant always returns a REWARD_KIND_NOT_IMPLEMENTED error.
func (g *UnimplementedGranter) Grant(ctx context.Context, userID string, reward *domain.RewardDefinition) error {
	return errors.ErrRewardKindUnimplemented(string(g.kind))
}
