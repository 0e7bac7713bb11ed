package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/coinquest/task-reward-engine/pkg/cache"
	"github.com/coinquest/task-reward-engine/pkg/config"
	"github.com/coinquest/task-reward-engine/pkg/domain"
	taskerrors "github.com/coinquest/task-reward-engine/pkg/errors"
	"github.com/coinquest/task-reward-engine/pkg/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testTemplateCache builds a cache with two daily templates and one
// achievement template sharing the LIKE_POST action.
func testTemplateCache() *cache.InMemoryTemplateCache {
	cfg := &config.Config{
		Templates: []*domain.TaskTemplate{
			{
				ID:          "daily-like",
				Name:        "Like a post",
				Type:        domain.TaskTypeDaily,
				Category:    "social",
				Action:      "LIKE_POST",
				TargetCount: 3,
				Rewards: []*domain.RewardDefinition{
					{ID: "daily-like-coin", TemplateID: "daily-like", Type: domain.RewardTypeCoin, Amount: 100},
				},
			},
			{
				ID:          "daily-signin",
				Name:        "Sign in",
				Type:        domain.TaskTypeDaily,
				Category:    "engagement",
				Action:      "SIGN_IN",
				TargetCount: 1,
				Rewards: []*domain.RewardDefinition{
					{ID: "daily-signin-coin", TemplateID: "daily-signin", Type: domain.RewardTypeCoin, Amount: 10},
				},
			},
			{
				ID:          "ach-like",
				Name:        "Socialite",
				Type:        domain.TaskTypeAchievement,
				Category:    "social",
				Action:      "LIKE_POST",
				TargetCount: 100,
				Rewards: []*domain.RewardDefinition{
					{ID: "ach-like-coin", TemplateID: "ach-like", Type: domain.RewardTypeCoin, Amount: 1000},
				},
			},
		},
	}
	return cache.NewInMemoryTemplateCache(cfg, "", testLogger())
}

func TestInitDailyTasks_CreatesMissingRecords(t *testing.T) {
	repo := repository.NewMockTaskRepository()
	lifecycle := NewLifecycle(repo, testTemplateCache(), testLogger())

	// No records exist yet for either daily template
	repo.On("GetTemplateIDsWithRecords", mock.Anything, "user-1", mock.Anything, []string{"daily-like", "daily-signin"}).
		Return([]string{}, nil)
	repo.On("BulkInsertRecords", mock.Anything, mock.MatchedBy(func(records []*domain.UserTaskRecord) bool {
		if len(records) != 2 {
			return false
		}
		for _, r := range records {
			if r.UserID != "user-1" || r.Status != domain.TaskStatusPending || r.CurrentCount != 0 {
				return false
			}
		}
		return records[0].TemplateID == "daily-like" && records[1].TemplateID == "daily-signin"
	})).Return(2, nil)

	created, err := lifecycle.InitDailyTasks(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	repo.AssertExpectations(t)
}

func TestInitDailyTasks_SkipsExistingRecords(t *testing.T) {
	repo := repository.NewMockTaskRepository()
	lifecycle := NewLifecycle(repo, testTemplateCache(), testLogger())

	// daily-like already has a record today; only daily-signin is inserted
	repo.On("GetTemplateIDsWithRecords", mock.Anything, "user-1", mock.Anything, mock.Anything).
		Return([]string{"daily-like"}, nil)
	repo.On("BulkInsertRecords", mock.Anything, mock.MatchedBy(func(records []*domain.UserTaskRecord) bool {
		return len(records) == 1 && records[0].TemplateID == "daily-signin"
	})).Return(1, nil)

	created, err := lifecycle.InitDailyTasks(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	repo.AssertExpectations(t)
}

func TestInitDailyTasks_Idempotent(t *testing.T) {
	repo := repository.NewMockTaskRepository()
	lifecycle := NewLifecycle(repo, testTemplateCache(), testLogger())

	// All daily templates already have records; no insert happens
	repo.On("GetTemplateIDsWithRecords", mock.Anything, "user-1", mock.Anything, mock.Anything).
		Return([]string{"daily-like", "daily-signin"}, nil)

	created, err := lifecycle.InitDailyTasks(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 0, created)
	repo.AssertNotCalled(t, "BulkInsertRecords", mock.Anything, mock.Anything)
}

func TestInitDailyTasks_EmptyUserID(t *testing.T) {
	repo := repository.NewMockTaskRepository()
	lifecycle := NewLifecycle(repo, testTemplateCache(), testLogger())

	_, err := lifecycle.InitDailyTasks(context.Background(), "")

	require.Error(t, err)
	taskErr, ok := err.(*taskerrors.TaskError)
	require.True(t, ok)
	assert.Equal(t, taskerrors.ErrCodeValidationFailed, taskErr.Code)
	repo.AssertNotCalled(t, "GetTemplateIDsWithRecords", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInitDailyTasks_RepositoryError(t *testing.T) {
	repo := repository.NewMockTaskRepository()
	lifecycle := NewLifecycle(repo, testTemplateCache(), testLogger())

	repo.On("GetTemplateIDsWithRecords", mock.Anything, "user-1", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("connection refused"))

	_, err := lifecycle.InitDailyTasks(context.Background(), "user-1")

	assert.Error(t, err)
}

func TestResetDailyTasks(t *testing.T) {
	repo := repository.NewMockTaskRepository()
	lifecycle := NewLifecycle(repo, testTemplateCache(), testLogger())

	repo.On("ExpireDailyBefore", mock.Anything, mock.Anything).Return(5, nil)

	expired, err := lifecycle.ResetDailyTasks(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, expired)
	repo.AssertExpectations(t)
}

func TestResetDailyTasks_RepositoryError(t *testing.T) {
	repo := repository.NewMockTaskRepository()
	lifecycle := NewLifecycle(repo, testTemplateCache(), testLogger())

	repo.On("ExpireDailyBefore", mock.Anything, mock.Anything).Return(0, fmt.Errorf("connection refused"))

	_, err := lifecycle.ResetDailyTasks(context.Background())

	assert.Error(t, err)
}
