package errors

import "fmt"

// Error codes for the task reward engine.
const (
	// Domain errors
	ErrCodeTaskNotFound      = "TASK_NOT_FOUND"
	ErrCodeTemplateNotFound  = "TEMPLATE_NOT_FOUND"
	ErrCodeTaskNotCompleted  = "TASK_NOT_COMPLETED"
	ErrCodeTaskAlreadyDone   = "TASK_ALREADY_REWARDED"
	ErrCodeOwnershipMismatch = "TASK_OWNERSHIP_MISMATCH"
	ErrCodeInvalidStatus     = "INVALID_STATUS"

	// Reward errors
	ErrCodeRewardGrantFailed       = "REWARD_GRANT_FAILED"
	ErrCodeRewardKindUnknown       = "REWARD_KIND_UNKNOWN"
	ErrCodeRewardKindUnimplemented = "REWARD_KIND_NOT_IMPLEMENTED"

	// Wallet errors
	ErrCodeInvalidAmount = "INVALID_AMOUNT"

	// Database errors
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeTransactionFailed = "TRANSACTION_FAILED"

	// Config errors
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"

	// Validation errors
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidInput     = "INVALID_INPUT"
)

// TaskError represents an error in the task reward engine.
type TaskError struct {
	Code    string
	Message string
	Err     error
}

func (e *TaskError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// NewTaskError creates a new TaskError.
func NewTaskError(code, message string, err error) *TaskError {
	return &TaskError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Domain-specific error constructors

// ErrTaskNotFound returns an error when a task record is not found.
func ErrTaskNotFound(recordID int64) *TaskError {
	return &TaskError{
		Code:    ErrCodeTaskNotFound,
		Message: fmt.Sprintf("task record not found: %d", recordID),
	}
}

// ErrTemplateNotFound returns an error when a task template is not found.
func ErrTemplateNotFound(templateID string) *TaskError {
	return &TaskError{
		Code:    ErrCodeTemplateNotFound,
		Message: fmt.Sprintf("task template not found: %s", templateID),
	}
}

// ErrTaskNotCompleted returns an error when claiming an incomplete task.
func ErrTaskNotCompleted(recordID int64) *TaskError {
	return &TaskError{
		Code:    ErrCodeTaskNotCompleted,
		Message: fmt.Sprintf("task not completed: %d", recordID),
	}
}

// ErrTaskAlreadyRewarded returns an error when claiming a settled task.
func ErrTaskAlreadyRewarded(recordID int64) *TaskError {
	return &TaskError{
		Code:    ErrCodeTaskAlreadyDone,
		Message: fmt.Sprintf("task already rewarded: %d", recordID),
	}
}

// ErrOwnershipMismatch returns an error when a user claims another user's task.
func ErrOwnershipMismatch(recordID int64, userID string) *TaskError {
	return &TaskError{
		Code:    ErrCodeOwnershipMismatch,
		Message: fmt.Sprintf("task record %d does not belong to user %s", recordID, userID),
	}
}

// ErrRewardGrantFailed wraps a downstream ledger failure for a reward.
func ErrRewardGrantFailed(rewardType, rewardID string, err error) *TaskError {
	return &TaskError{
		Code:    ErrCodeRewardGrantFailed,
		Message: fmt.Sprintf("failed to grant %s reward: %s", rewardType, rewardID),
		Err:     err,
	}
}

// ErrRewardKindUnknown returns an error for an unrecognized reward type.
func ErrRewardKindUnknown(rewardType string) *TaskError {
	return &TaskError{
		Code:    ErrCodeRewardKindUnknown,
		Message: fmt.Sprintf("unknown reward kind: %s", rewardType),
	}
}

// ErrRewardKindUnimplemented returns an error for a reward kind that has no
// backing ledger yet. Settlement fails rather than pretending to grant.
func ErrRewardKindUnimplemented(rewardType string) *TaskError {
	return &TaskError{
		Code:    ErrCodeRewardKindUnimplemented,
		Message: fmt.Sprintf("reward kind not implemented: %s", rewardType),
	}
}

// ErrInvalidAmount returns an error for a non-positive wallet credit.
func ErrInvalidAmount(amount int64) *TaskError {
	return &TaskError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("amount must be positive, got %d", amount),
	}
}

// ErrDatabaseError wraps database errors.
func ErrDatabaseError(operation string, err error) *TaskError {
	return &TaskError{
		Code:    ErrCodeDatabaseError,
		Message: fmt.Sprintf("database error during %s", operation),
		Err:     err,
	}
}

// ErrConfigInvalid returns an error for an invalid task catalog.
func ErrConfigInvalid(reason string) *TaskError {
	return &TaskError{
		Code:    ErrCodeConfigInvalid,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
	}
}

// ErrValidationFailed returns a validation error.
func ErrValidationFailed(field, reason string) *TaskError {
	return &TaskError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
	}
}
