package engine

import (
	"context"
	"log/slog"
	"math"

	"github.com/coinquest/task-reward-engine/pkg/common"
	"github.com/coinquest/task-reward-engine/pkg/domain"
	"github.com/coinquest/task-reward-engine/pkg/errors"
	"github.com/coinquest/task-reward-engine/pkg/repository"
)

// Stats computes per-user task statistics for display: lifetime and today's
// counts with derived completion-rate percentages.
type Stats struct {
	repo   repository.TaskRecordRepository
	logger *slog.Logger
}

// NewStats creates a new task statistics reader.
func NewStats(repo repository.TaskRecordRepository, logger *slog.Logger) *Stats {
	return &Stats{
		repo:   repo,
		logger: logger,
	}
}

// GetTaskStats aggregates the user's task records. Completion rates are
// percentages on a 0-100 scale rounded to two decimal places; an empty scope
// yields a zero rate.
func (s *Stats) GetTaskStats(ctx context.Context, userID string) (*domain.TaskStats, error) {
	if userID == "" {
		return nil, errors.ErrValidationFailed("userID", "cannot be empty")
	}

	counts, err := s.repo.GetStatCounts(ctx, userID, common.GetCurrentDateUTC())
	if err != nil {
		return nil, err
	}

	return &domain.TaskStats{
		TotalTasks:          counts.Total,
		CompletedTasks:      counts.Completed,
		CompletionRate:      completionRate(counts.Completed, counts.Total),
		TodayTasks:          counts.TodayTotal,
		TodayCompletedTasks: counts.TodayCompleted,
		TodayCompletionRate: completionRate(counts.TodayCompleted, counts.TodayTotal),
	}, nil
}

// completionRate returns completed/total as a percentage rounded to two
// decimal places.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*10000) / 100
}
