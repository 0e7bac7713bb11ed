package engine

import (
	"context"
	"log/slog"

	"github.com/coinquest/task-reward-engine/pkg/common"
	"github.com/coinquest/task-reward-engine/pkg/domain"
	"github.com/coinquest/task-reward-engine/pkg/errors"
	"github.com/coinquest/task-reward-engine/pkg/repository"
)

// Tracker applies action events to in-progress task records and detects
// completion. It is a pure at-least-once counter: repeated calls for the
// same logical event are not deduplicated; callers emit each qualifying
// action exactly once.
type Tracker struct {
	repo      repository.TaskRecordRepository
	templates TemplateProvider
	logger    *slog.Logger
}

// NewTracker creates a new progress tracker.
func NewTracker(repo repository.TaskRecordRepository, templates TemplateProvider, logger *slog.Logger) *Tracker {
	return &Tracker{
		repo:      repo,
		templates: templates,
		logger:    logger,
	}
}

// UpdateTaskProgress adds increment to every in-progress, non-expired record
// of the user whose action matches. Records reaching their target flip to
// completed with completed_at stamped, atomically at the storage layer.
//
// A single call updates every matching record, e.g. a daily task and an
// achievement task sharing an action tag. Achievement records are
// instantiated lazily here on first matching event, since they have no
// daily init moment.
//
// Returns the number of records updated.
func (t *Tracker) UpdateTaskProgress(ctx context.Context, userID, action string, increment int) (int, error) {
	if userID == "" {
		return 0, errors.ErrValidationFailed("userID", "cannot be empty")
	}
	if action == "" {
		return 0, errors.ErrValidationFailed("action", "cannot be empty")
	}
	if increment <= 0 {
		return 0, errors.ErrValidationFailed("increment", "must be positive")
	}

	templates := t.templates.GetTemplatesByAction(action)
	if len(templates) == 0 {
		return 0, nil
	}

	// Lazily create missing achievement records so their progress is never
	// dropped. Daily records are only created by InitDailyTasks; progress
	// before init does not accrue.
	achievements := make([]*domain.UserTaskRecord, 0)
	today := common.GetCurrentDateUTC()
	for _, tpl := range templates {
		if tpl.Type == domain.TaskTypeAchievement {
			achievements = append(achievements, newRecordFromTemplate(tpl, userID, today))
		}
	}
	if len(achievements) > 0 {
		if _, err := t.repo.BulkInsertRecords(ctx, achievements); err != nil {
			return 0, err
		}
	}

	updated, err := t.repo.ApplyProgressByAction(ctx, userID, action, increment)
	if err != nil {
		return 0, err
	}

	t.logger.Info("Applied task progress",
		"user_id", userID,
		"action", action,
		"increment", increment,
		"updated", updated,
	)

	return updated, nil
}
