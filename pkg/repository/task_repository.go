package repository

import (
	"context"
	"time"

	"github.com/coinquest/task-reward-engine/pkg/domain"
)

// TaskStatCounts carries raw aggregate counts for a user's task records.
// Completion rates are derived by the caller.
type TaskStatCounts struct {
	Total          int
	Completed      int
	TodayTotal     int
	TodayCompleted int
}

// TaskRecordRepository defines the interface for managing user task records
// in the database. This interface abstracts database operations to allow for
// testing and different implementations.
type TaskRecordRepository interface {
	// GetRecord retrieves a single task record by ID.
	// Returns nil if no record exists.
	GetRecord(ctx context.Context, recordID int64) (*domain.UserTaskRecord, error)

	// GetUserRecords retrieves all task records for a user, oldest first.
	// Returns empty slice if the user has no records.
	GetUserRecords(ctx context.Context, userID string) ([]*domain.UserTaskRecord, error)

	// GetTemplateIDsWithRecords returns the subset of templateIDs for which
	// the user already has a record dated on the given day.
	// Used by daily initialization to compute missing templates.
	GetTemplateIDsWithRecords(ctx context.Context, userID string, date time.Time, templateIDs []string) ([]string, error)

	// BulkInsertRecords creates multiple task records in a single query.
	// Uses INSERT ... ON CONFLICT DO NOTHING so concurrent initialization
	// for the same user/day never creates duplicates and never errors.
	// Returns the number of rows actually created.
	BulkInsertRecords(ctx context.Context, records []*domain.UserTaskRecord) (int, error)

	// ApplyProgressByAction atomically adds increment to current_count on all
	// of the user's in-progress (pending or in_progress) records matching the
	// action tag. Records whose new count reaches target_count transition to
	// 'completed' and get completed_at stamped, all in the same statement, so
	// concurrent calls never lose updates.
	// Expired and rewarded records are never touched.
	// Returns the number of records updated.
	ApplyProgressByAction(ctx context.Context, userID, action string, increment int) (int, error)

	// GetClaimableRecords retrieves the user's completed, unrewarded records,
	// oldest first.
	GetClaimableRecords(ctx context.Context, userID string) ([]*domain.UserTaskRecord, error)

	// ExpireDailyBefore marks unfinished (pending or in_progress) DAILY
	// records dated before the given day as 'expired'. Completed records are
	// left untouched so unclaimed rewards stay claimable.
	// Returns the number of records expired.
	ExpireDailyBefore(ctx context.Context, date time.Time) (int, error)

	// MarkRewarded transitions a record from 'completed' to 'rewarded' and
	// stamps rewarded_at. The update is conditional on the current status, so
	// concurrent claims cannot both succeed.
	// Returns ErrTaskNotCompleted when no row qualifies (absent, incomplete,
	// or already rewarded); the caller disambiguates from the loaded record.
	MarkRewarded(ctx context.Context, recordID int64) error

	// GetStatCounts aggregates the user's record counts for statistics.
	// today scopes the today-counts to records dated on that day.
	GetStatCounts(ctx context.Context, userID string, today time.Time) (*TaskStatCounts, error)

	// BeginTx starts a database transaction and returns a transactional
	// repository. Used by the claim flow to make check-then-settle atomic.
	BeginTx(ctx context.Context) (TaskTxRepository, error)
}

// TaskTxRepository represents a transactional repository that supports
// commit/rollback. This ensures the claim flow is atomic (prevents double
// claims via row-level locking).
type TaskTxRepository interface {
	TaskRecordRepository

	// GetRecordForUpdate retrieves a record with SELECT ... FOR UPDATE
	// (row-level lock). This serializes concurrent claim attempts on the
	// same record.
	GetRecordForUpdate(ctx context.Context, recordID int64) (*domain.UserTaskRecord, error)

	// Commit commits the transaction.
	Commit() error

	// Rollback rolls back the transaction.
	Rollback() error
}
