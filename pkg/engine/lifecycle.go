package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/coinquest/task-reward-engine/pkg/common"
	"github.com/coinquest/task-reward-engine/pkg/domain"
	"github.com/coinquest/task-reward-engine/pkg/errors"
	"github.com/coinquest/task-reward-engine/pkg/repository"
)

// Lifecycle manages the daily task lifecycle: creating today's task records
// for a user and expiring yesterday's unfinished daily records.
type Lifecycle struct {
	repo      repository.TaskRecordRepository
	templates TemplateProvider
	logger    *slog.Logger
}

// NewLifecycle creates a new daily lifecycle manager.
func NewLifecycle(repo repository.TaskRecordRepository, templates TemplateProvider, logger *slog.Logger) *Lifecycle {
	return &Lifecycle{
		repo:      repo,
		templates: templates,
		logger:    logger,
	}
}

// InitDailyTasks creates today's task records for every DAILY template the
// user has no record for yet. Idempotent: repeated calls for the same
// user/day are no-ops once records exist, and concurrent calls are absorbed
// by the storage uniqueness constraint.
// Returns the number of records created.
func (l *Lifecycle) InitDailyTasks(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, errors.ErrValidationFailed("userID", "cannot be empty")
	}

	today := common.GetCurrentDateUTC()
	templates := l.templates.GetDailyTemplates()
	if len(templates) == 0 {
		return 0, nil
	}

	templateIDs := make([]string, len(templates))
	for i, tpl := range templates {
		templateIDs[i] = tpl.ID
	}

	existing, err := l.repo.GetTemplateIDsWithRecords(ctx, userID, today, templateIDs)
	if err != nil {
		return 0, err
	}

	existingSet := make(map[string]bool, len(existing))
	for _, id := range existing {
		existingSet[id] = true
	}

	records := make([]*domain.UserTaskRecord, 0, len(templates))
	for _, tpl := range templates {
		if existingSet[tpl.ID] {
			continue
		}
		records = append(records, newRecordFromTemplate(tpl, userID, today))
	}

	if len(records) == 0 {
		return 0, nil
	}

	created, err := l.repo.BulkInsertRecords(ctx, records)
	if err != nil {
		return 0, err
	}

	l.logger.Info("Initialized daily tasks",
		"user_id", userID,
		"task_date", today.Format("2006-01-02"),
		"created", created,
	)

	return created, nil
}

// ResetDailyTasks expires unfinished DAILY records from before today.
// Further progress no longer applies to them; completed-but-unrewarded
// records from prior days remain claimable. Designed to be invoked once per
// day by an external scheduler.
// Returns the number of records expired.
func (l *Lifecycle) ResetDailyTasks(ctx context.Context) (int, error) {
	today := common.GetCurrentDateUTC()

	expired, err := l.repo.ExpireDailyBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	l.logger.Info("Reset daily tasks",
		"before", today.Format("2006-01-02"),
		"expired", expired,
	)

	return expired, nil
}

// newRecordFromTemplate builds a fresh pending record for a template.
func newRecordFromTemplate(tpl *domain.TaskTemplate, userID string, taskDate time.Time) *domain.UserTaskRecord {
	return &domain.UserTaskRecord{
		UserID:       userID,
		TemplateID:   tpl.ID,
		TaskType:     tpl.Type,
		Category:     tpl.Category,
		Action:       tpl.Action,
		CurrentCount: 0,
		TargetCount:  tpl.TargetCount,
		Status:       domain.TaskStatusPending,
		TaskDate:     taskDate,
	}
}
