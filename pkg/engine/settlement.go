package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coinquest/task-reward-engine/pkg/domain"
	"github.com/coinquest/task-reward-engine/pkg/errors"
	"github.com/coinquest/task-reward-engine/pkg/repository"
)

// Settlement converts completed task records into granted rewards, exactly
// once per record. The claim flow runs inside a transaction with a row-level
// lock plus a conditional status update, so concurrent claims on the same
// record cannot double-grant.
type Settlement struct {
	repo       repository.TaskRecordRepository
	rewards    RewardProvider
	dispatcher RewardDispatcher
	logger     *slog.Logger
}

// NewSettlement creates a new reward settlement coordinator.
func NewSettlement(repo repository.TaskRecordRepository, rewards RewardProvider, dispatcher RewardDispatcher, logger *slog.Logger) *Settlement {
	return &Settlement{
		repo:       repo,
		rewards:    rewards,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ClaimAllResult aggregates the outcome of a batch claim.
type ClaimAllResult struct {
	// TotalTasks is the number of claimable records attempted.
	TotalTasks int `json:"total_tasks"`

	// SuccessCount is the number of records settled.
	SuccessCount int `json:"success_count"`

	// RewardsGranted is the total number of reward definitions granted
	// across all settled records.
	RewardsGranted int `json:"rewards_granted"`

	// Errors holds one message per record whose settlement failed.
	Errors []string `json:"errors,omitempty"`
}

// ClaimTaskReward settles a single completed record: it locks the record,
// validates ownership and preconditions, dispatches every reward attached to
// the record's template, and only then marks the record rewarded. Any grant
// failure aborts the settlement; the record stays claimable.
// Returns the granted reward definitions.
func (s *Settlement) ClaimTaskReward(ctx context.Context, userID string, recordID int64) ([]*domain.RewardDefinition, error) {
	if userID == "" {
		return nil, errors.ErrValidationFailed("userID", "cannot be empty")
	}
	if recordID <= 0 {
		return nil, errors.ErrValidationFailed("recordID", "must be positive")
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	record, err := tx.GetRecordForUpdate(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.ErrTaskNotFound(recordID)
	}
	if record.UserID != userID {
		return nil, errors.ErrOwnershipMismatch(recordID, userID)
	}
	if record.IsRewarded() {
		return nil, errors.ErrTaskAlreadyRewarded(recordID)
	}
	if !record.CanClaim() {
		return nil, errors.ErrTaskNotCompleted(recordID)
	}

	rewards := s.rewards.GetRewardsByTemplateID(record.TemplateID)
	for _, reward := range rewards {
		if err := s.dispatcher.Grant(ctx, userID, reward); err != nil {
			s.logger.Warn("Reward grant failed, settlement aborted",
				"user_id", userID,
				"record_id", recordID,
				"reward_id", reward.ID,
				"error", err,
			)
			return nil, err
		}
	}

	if err := tx.MarkRewarded(ctx, recordID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	s.logger.Info("Settled task reward",
		"user_id", userID,
		"record_id", recordID,
		"template_id", record.TemplateID,
		"rewards", len(rewards),
	)

	return rewards, nil
}

// ClaimAllRewards settles every completed, unrewarded record for the user.
// Failures are isolated per record: a failing settlement is recorded in the
// result's error list and the batch continues.
func (s *Settlement) ClaimAllRewards(ctx context.Context, userID string) (*ClaimAllResult, error) {
	if userID == "" {
		return nil, errors.ErrValidationFailed("userID", "cannot be empty")
	}

	records, err := s.repo.GetClaimableRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ClaimAllResult{
		TotalTasks: len(records),
	}

	for _, record := range records {
		rewards, err := s.ClaimTaskReward(ctx, userID, record.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("task %d: %v", record.ID, err))
			continue
		}
		result.SuccessCount++
		result.RewardsGranted += len(rewards)
	}

	s.logger.Info("Batch claim finished",
		"user_id", userID,
		"total", result.TotalTasks,
		"succeeded", result.SuccessCount,
		"failed", len(result.Errors),
	)

	return result, nil
}
