package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/coinquest/task-reward-engine/pkg/domain"
	"github.com/coinquest/task-reward-engine/pkg/errors"

	"github.com/lib/pq" // PostgreSQL driver and array support
)

const taskRecordColumns = `id, user_id, template_id, task_type, category, action,
	       current_count, target_count, status, task_date,
	       completed_at, rewarded_at, created_at, updated_at`

// dbtx is the subset of *sql.DB and *sql.Tx the task queries need.
// It lets the plain and transactional repositories share one implementation.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// taskQueries implements every TaskRecordRepository method against a dbtx.
type taskQueries struct {
	q dbtx
}

// PostgresTaskRepository implements TaskRecordRepository using PostgreSQL.
type PostgresTaskRepository struct {
	taskQueries
	db *sql.DB
}

// NewPostgresTaskRepository creates a new PostgreSQL-backed task repository.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{
		taskQueries: taskQueries{q: db},
		db:          db,
	}
}

// BeginTx starts a database transaction and returns a transactional repository.
func (r *PostgresTaskRepository) BeginTx(ctx context.Context) (TaskTxRepository, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.ErrDatabaseError("begin transaction", err)
	}

	return &PostgresTaskTxRepository{
		taskQueries: taskQueries{q: tx},
		tx:          tx,
	}, nil
}

// PostgresTaskTxRepository implements TaskTxRepository for transactional
// operations, sharing the query implementations with the plain repository.
type PostgresTaskTxRepository struct {
	taskQueries
	tx *sql.Tx
}

// GetRecordForUpdate retrieves a record with SELECT ... FOR UPDATE (row-level lock).
func (r *PostgresTaskTxRepository) GetRecordForUpdate(ctx context.Context, recordID int64) (*domain.UserTaskRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM user_task_record
		WHERE id = $1
		FOR UPDATE
	`, taskRecordColumns)

	record, err := scanTaskRecord(r.q.QueryRowContext(ctx, query, recordID))
	if err != nil {
		return nil, errors.ErrDatabaseError("get record for update", err)
	}

	return record, nil
}

// BeginTx is not supported within a transaction.
func (r *PostgresTaskTxRepository) BeginTx(ctx context.Context) (TaskTxRepository, error) {
	return nil, fmt.Errorf("cannot begin nested transaction")
}

// Commit commits the transaction.
func (r *PostgresTaskTxRepository) Commit() error {
	if err := r.tx.Commit(); err != nil {
		return errors.ErrDatabaseError("commit transaction", err)
	}
	return nil
}

// Rollback rolls back the transaction.
func (r *PostgresTaskTxRepository) Rollback() error {
	if err := r.tx.Rollback(); err != nil {
		return errors.ErrDatabaseError("rollback transaction", err)
	}
	return nil
}

// GetRecord retrieves a single task record by ID.
func (r *taskQueries) GetRecord(ctx context.Context, recordID int64) (*domain.UserTaskRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM user_task_record
		WHERE id = $1
	`, taskRecordColumns)

	record, err := scanTaskRecord(r.q.QueryRowContext(ctx, query, recordID))
	if err != nil {
		return nil, errors.ErrDatabaseError("get record", err)
	}

	return record, nil
}

// GetUserRecords retrieves all task records for a user, oldest first.
func (r *taskQueries) GetUserRecords(ctx context.Context, userID string) ([]*domain.UserTaskRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM user_task_record
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, taskRecordColumns)

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.ErrDatabaseError("get user records", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTaskRecordRows(rows)
}

// GetTemplateIDsWithRecords returns the subset of templateIDs for which the
// user already has a record dated on the given day.
func (r *taskQueries) GetTemplateIDsWithRecords(ctx context.Context, userID string, date time.Time, templateIDs []string) ([]string, error) {
	if len(templateIDs) == 0 {
		return []string{}, nil
	}

	query := `
		SELECT template_id
		FROM user_task_record
		WHERE user_id = $1 AND task_date = $2 AND template_id = ANY($3)
	`

	rows, err := r.q.QueryContext(ctx, query, userID, date, pq.Array(templateIDs))
	if err != nil {
		return nil, errors.ErrDatabaseError("get template IDs with records", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.ErrDatabaseError("scan template ID", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError("iterate template IDs", err)
	}

	return ids, nil
}

// BulkInsertRecords creates multiple task records in a single query.
// ON CONFLICT DO NOTHING makes concurrent initialization a no-op: the unique
// index on (user_id, template_id, task_date) absorbs duplicate daily inserts,
// and the achievement partial index absorbs duplicate achievement inserts.
func (r *taskQueries) BulkInsertRecords(ctx context.Context, records []*domain.UserTaskRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	valueStrings := make([]string, 0, len(records))
	valueArgs := make([]interface{}, 0, len(records)*9)

	for i, rec := range records {
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, NOW(), NOW())",
			i*9+1, i*9+2, i*9+3, i*9+4, i*9+5, i*9+6, i*9+7, i*9+8, i*9+9,
		))
		valueArgs = append(valueArgs,
			rec.UserID,
			rec.TemplateID,
			rec.TaskType,
			rec.Category,
			rec.Action,
			rec.CurrentCount,
			rec.TargetCount,
			rec.Status,
			rec.TaskDate,
		)
	}

	// Safe: fmt.Sprintf only builds the VALUES structure with placeholders ($1, $2, etc.)
	// All actual values are passed via parameterized query (valueArgs), not string interpolation
	// #nosec G201
	query := fmt.Sprintf(`
		INSERT INTO user_task_record (
			user_id, template_id, task_type, category, action,
			current_count, target_count, status, task_date,
			created_at, updated_at
		) VALUES %s
		ON CONFLICT DO NOTHING
	`, strings.Join(valueStrings, ","))

	result, err := r.q.ExecContext(ctx, query, valueArgs...)
	if err != nil {
		return 0, errors.ErrDatabaseError("bulk insert records", err)
	}

	created, err := result.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError("check rows affected", err)
	}

	return int(created), nil
}

// ApplyProgressByAction atomically increments progress on all of the user's
// in-progress records matching the action tag, flipping records that reach
// their target to 'completed' in the same statement.
func (r *taskQueries) ApplyProgressByAction(ctx context.Context, userID, action string, increment int) (int, error) {
	query := `
		UPDATE user_task_record
		SET current_count = current_count + $3::INT,
			status = CASE
				WHEN current_count + $3::INT >= target_count THEN 'completed'
				ELSE 'in_progress'
			END,
			completed_at = CASE
				WHEN current_count + $3::INT >= target_count AND completed_at IS NULL
					THEN NOW()
				ELSE completed_at
			END,
			updated_at = NOW()
		WHERE user_id = $1 AND action = $2
		AND status IN ('pending', 'in_progress')
	`

	result, err := r.q.ExecContext(ctx, query, userID, action, increment)
	if err != nil {
		return 0, errors.ErrDatabaseError("apply progress by action", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError("check rows affected", err)
	}

	return int(updated), nil
}

// GetClaimableRecords retrieves the user's completed, unrewarded records.
func (r *taskQueries) GetClaimableRecords(ctx context.Context, userID string) ([]*domain.UserTaskRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM user_task_record
		WHERE user_id = $1 AND status = 'completed'
		ORDER BY completed_at ASC, id ASC
	`, taskRecordColumns)

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.ErrDatabaseError("get claimable records", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTaskRecordRows(rows)
}

// ExpireDailyBefore marks unfinished DAILY records dated before the given day
// as expired. Completed and rewarded records are untouched, so
// completed-but-unclaimed rewards from prior days stay claimable.
func (r *taskQueries) ExpireDailyBefore(ctx context.Context, date time.Time) (int, error) {
	query := `
		UPDATE user_task_record
		SET status = 'expired',
			updated_at = NOW()
		WHERE task_type = 'DAILY'
		AND task_date < $1
		AND status IN ('pending', 'in_progress')
	`

	result, err := r.q.ExecContext(ctx, query, date)
	if err != nil {
		return 0, errors.ErrDatabaseError("expire daily records", err)
	}

	expired, err := result.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError("check rows affected", err)
	}

	return int(expired), nil
}

// MarkRewarded transitions a record from 'completed' to 'rewarded'.
// The conditional WHERE makes the check-then-set atomic: of two concurrent
// claims, exactly one observes rows affected = 1.
func (r *taskQueries) MarkRewarded(ctx context.Context, recordID int64) error {
	query := `
		UPDATE user_task_record
		SET status = 'rewarded',
			rewarded_at = NOW(),
			updated_at = NOW()
		WHERE id = $1
		AND status = 'completed'
		AND rewarded_at IS NULL
	`

	result, err := r.q.ExecContext(ctx, query, recordID)
	if err != nil {
		return errors.ErrDatabaseError("mark rewarded", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError("check rows affected", err)
	}

	if rowsAffected == 0 {
		// No rows updated - record either doesn't exist, isn't completed,
		// or is already rewarded. Caller disambiguates from the loaded record.
		return errors.ErrTaskNotCompleted(recordID)
	}

	return nil
}

// GetStatCounts aggregates the user's record counts for statistics.
func (r *taskQueries) GetStatCounts(ctx context.Context, userID string, today time.Time) (*TaskStatCounts, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status IN ('completed', 'rewarded')),
		       COUNT(*) FILTER (WHERE task_date = $2),
		       COUNT(*) FILTER (WHERE task_date = $2 AND status IN ('completed', 'rewarded'))
		FROM user_task_record
		WHERE user_id = $1
	`

	var counts TaskStatCounts
	err := r.q.QueryRowContext(ctx, query, userID, today).Scan(
		&counts.Total,
		&counts.Completed,
		&counts.TodayTotal,
		&counts.TodayCompleted,
	)
	if err != nil {
		return nil, errors.ErrDatabaseError("get stat counts", err)
	}

	return &counts, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTaskRecord scans a single record row. Returns (nil, nil) on sql.ErrNoRows.
func scanTaskRecord(row *sql.Row) (*domain.UserTaskRecord, error) {
	record, err := scanTaskRecordFrom(row)
	if err == sql.ErrNoRows {
		return nil, nil // No record exists
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func scanTaskRecordFrom(s rowScanner) (*domain.UserTaskRecord, error) {
	var record domain.UserTaskRecord
	err := s.Scan(
		&record.ID,
		&record.UserID,
		&record.TemplateID,
		&record.TaskType,
		&record.Category,
		&record.Action,
		&record.CurrentCount,
		&record.TargetCount,
		&record.Status,
		&record.TaskDate,
		&record.CompletedAt,
		&record.RewardedAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// scanTaskRecordRows is a helper to scan multiple record rows.
func scanTaskRecordRows(rows *sql.Rows) ([]*domain.UserTaskRecord, error) {
	var results []*domain.UserTaskRecord

	for rows.Next() {
		record, err := scanTaskRecordFrom(rows)
		if err != nil {
			return nil, errors.ErrDatabaseError("scan record row", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError("iterate record rows", err)
	}

	return results, nil
}
