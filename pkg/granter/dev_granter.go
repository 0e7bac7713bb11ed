package granter

import (
	"context"
	"log"

	"github.com/coinquest/task-reward-engine/pkg/domain"
)

// DevGranter is a simple granter implementation for local development.
// Unlike MockGranter (testify/mock), this doesn't require explicit setup
// and always succeeds with logged output.
//
// Register it for the stub kinds when REWARD_GRANTER_MODE=dev to exercise
// full settlement flows locally. For tests, use MockGranter instead.
type DevGranter struct{}

// NewDevGranter creates a new development granter.
func NewDevGranter() *DevGranter {
	return &DevGranter{}
}

// Grant logs the reward grant and returns success.
func (d *DevGranter) Grant(ctx context.Context, userID string, reward *domain.RewardDefinition) error {
	log.Printf("[DevGranter] Grant: userID=%s, rewardID=%s, type=%s, amount=%d, data=%q",
		userID, reward.ID, reward.Type, reward.Amount, reward.Data)
	return nil
}
