package domain

import "time"

// TaskType defines the lifecycle of tasks created from a template.
type TaskType string

const (
	// TaskTypeDaily indicates the task resets every day. One record exists
	// per (user, template, date); unfinished records expire after their day.
	TaskTypeDaily TaskType = "DAILY"

	// TaskTypeAchievement indicates a one-shot task that accumulates
	// progress indefinitely until completed.
	TaskTypeAchievement TaskType = "ACHIEVEMENT"
)

// IsValid returns true if the task type is a valid type.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeDaily, TaskTypeAchievement:
		return true
	default:
		return false
	}
}

// TaskTemplate is the immutable definition of a task: what action it tracks,
// how many occurrences complete it, and what it pays out. Templates are
// externally authored (tasks.json) and read-only to the engine.
type TaskTemplate struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Type        TaskType            `json:"type"`
	Category    string              `json:"category"`
	Action      string              `json:"action"`       // Event tag the task matches (e.g., "LIKE_POST")
	TargetCount int                 `json:"target_count"` // Occurrences required for completion
	Rewards     []*RewardDefinition `json:"rewards"`
}

// RewardType defines the kind of reward granted on settlement.
type RewardType string

const (
	// RewardTypeCoin credits the user's coin wallet.
	RewardTypeCoin RewardType = "coin"

	// RewardTypeCash pays out withdrawable currency via a cash ledger.
	RewardTypeCash RewardType = "cash"

	// RewardTypeExperience grants experience points.
	RewardTypeExperience RewardType = "experience"

	// RewardTypeItem grants an item described by the reward's opaque payload.
	RewardTypeItem RewardType = "item"
)

// IsValid returns true if the reward type is a valid type.
func (r RewardType) IsValid() bool {
	switch r {
	case RewardTypeCoin, RewardTypeCash, RewardTypeExperience, RewardTypeItem:
		return true
	default:
		return false
	}
}

// RewardDefinition defines one payout attached to a task template.
// A template may carry several definitions of different types.
type RewardDefinition struct {
	ID         string     `json:"id"`
	TemplateID string     `json:"template_id"` // Owning template
	Type       RewardType `json:"type"`
	Amount     int64      `json:"amount"`
	Data       string     `json:"data,omitempty"` // Opaque payload for item grants
}

// TaskStatus represents the current state of a user's task record.
//
// Transitions: pending -> in_progress -> completed -> rewarded.
// Daily records still pending or in_progress when their day closes move to
// expired instead. rewarded and expired are terminal.
type TaskStatus string

const (
	// TaskStatusPending indicates the record exists but has no progress yet.
	TaskStatusPending TaskStatus = "pending"

	// TaskStatusInProgress indicates progress has accrued below the target.
	TaskStatusInProgress TaskStatus = "in_progress"

	// TaskStatusCompleted indicates the target was reached but the reward
	// has not been claimed yet.
	TaskStatusCompleted TaskStatus = "completed"

	// TaskStatusRewarded indicates the reward was settled.
	TaskStatusRewarded TaskStatus = "rewarded"

	// TaskStatusExpired indicates a daily record whose day closed before
	// completion. No further progress applies.
	TaskStatusExpired TaskStatus = "expired"
)

// IsValid returns true if the status is a valid task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted,
		TaskStatusRewarded, TaskStatusExpired:
		return true
	default:
		return false
	}
}

// UserTaskRecord tracks one user's occurrence of a task template.
// Daily records are scoped to TaskDate; achievement records carry their
// creation date there but are never expired by the daily reset.
// Records are kept for history and statistics, never physically deleted.
type UserTaskRecord struct {
	ID           int64      `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	TemplateID   string     `json:"template_id" db:"template_id"`
	TaskType     TaskType   `json:"task_type" db:"task_type"`
	Category     string     `json:"category" db:"category"`
	Action       string     `json:"action" db:"action"`
	CurrentCount int        `json:"current_count" db:"current_count"`
	TargetCount  int        `json:"target_count" db:"target_count"`
	Status       TaskStatus `json:"status" db:"status"`
	TaskDate     time.Time  `json:"task_date" db:"task_date"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	RewardedAt   *time.Time `json:"rewarded_at,omitempty" db:"rewarded_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// IsCompleted returns true if the record reached its target, whether or not
// the reward has been settled.
func (r *UserTaskRecord) IsCompleted() bool {
	return r.Status == TaskStatusCompleted || r.Status == TaskStatusRewarded
}

// IsRewarded returns true if the reward has been settled.
func (r *UserTaskRecord) IsRewarded() bool {
	return r.Status == TaskStatusRewarded
}

// IsExpired returns true if the record's day closed before completion.
func (r *UserTaskRecord) IsExpired() bool {
	return r.Status == TaskStatusExpired
}

// CanClaim returns true if the record is claimable (completed, not settled).
func (r *UserTaskRecord) CanClaim() bool {
	return r.Status == TaskStatusCompleted
}

// InProgress returns true if further progress still applies to the record.
func (r *UserTaskRecord) InProgress() bool {
	return r.Status == TaskStatusPending || r.Status == TaskStatusInProgress
}

// MeetsTarget returns true if the current count reaches the target count.
func (r *UserTaskRecord) MeetsTarget() bool {
	return r.CurrentCount >= r.TargetCount
}

// UserWallet holds a user's coin balance. Created lazily on first credit
// or explicit provisioning; the balance only moves through atomic updates.
type UserWallet struct {
	UserID      string    `json:"user_id" db:"user_id"`
	CoinBalance int64     `json:"coin_balance" db:"coin_balance"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TaskStats aggregates a user's task records for display.
// Completion rates are percentages on a 0-100 scale, rounded to two decimals.
type TaskStats struct {
	TotalTasks          int     `json:"total_tasks"`
	CompletedTasks      int     `json:"completed_tasks"`
	CompletionRate      float64 `json:"completion_rate"`
	TodayTasks          int     `json:"today_tasks"`
	TodayCompletedTasks int     `json:"today_completed_tasks"`
	TodayCompletionRate float64 `json:"today_completion_rate"`
}
