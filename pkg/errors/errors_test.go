package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestTaskError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *TaskError
		want string
	}{
		{
			name: "error without wrapped error",
			err: &TaskError{
				Code:    ErrCodeTaskNotFound,
				Message: "task record not found: 42",
			},
			want: "TASK_NOT_FOUND: task record not found: 42",
		},
		{
			name: "error with wrapped error",
			err: &TaskError{
				Code:    ErrCodeDatabaseError,
				Message: "database error during get record",
				Err:     fmt.Errorf("connection refused"),
			},
			want: "DATABASE_ERROR: database error during get record: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("TaskError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaskError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := ErrDatabaseError("get wallet", inner)

	if !errors.Is(err, inner) {
		t.Error("errors.Is() should find the wrapped error")
	}
	if err.Unwrap() != inner {
		t.Error("Unwrap() should return the wrapped error")
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name        string
		err         *TaskError
		wantCode    string
		wantMessage string
	}{
		{
			name:        "task not found",
			err:         ErrTaskNotFound(7),
			wantCode:    ErrCodeTaskNotFound,
			wantMessage: "task record not found: 7",
		},
		{
			name:        "template not found",
			err:         ErrTemplateNotFound("daily-like"),
			wantCode:    ErrCodeTemplateNotFound,
			wantMessage: "task template not found: daily-like",
		},
		{
			name:        "task not completed",
			err:         ErrTaskNotCompleted(7),
			wantCode:    ErrCodeTaskNotCompleted,
			wantMessage: "task not completed: 7",
		},
		{
			name:        "task already rewarded",
			err:         ErrTaskAlreadyRewarded(7),
			wantCode:    ErrCodeTaskAlreadyDone,
			wantMessage: "task already rewarded: 7",
		},
		{
			name:        "ownership mismatch",
			err:         ErrOwnershipMismatch(7, "user-2"),
			wantCode:    ErrCodeOwnershipMismatch,
			wantMessage: "task record 7 does not belong to user user-2",
		},
		{
			name:        "reward kind unknown",
			err:         ErrRewardKindUnknown("nft"),
			wantCode:    ErrCodeRewardKindUnknown,
			wantMessage: "unknown reward kind: nft",
		},
		{
			name:        "reward kind unimplemented",
			err:         ErrRewardKindUnimplemented("cash"),
			wantCode:    ErrCodeRewardKindUnimplemented,
			wantMessage: "reward kind not implemented: cash",
		},
		{
			name:        "invalid amount",
			err:         ErrInvalidAmount(-5),
			wantCode:    ErrCodeInvalidAmount,
			wantMessage: "amount must be positive, got -5",
		},
		{
			name:        "validation failed",
			err:         ErrValidationFailed("userID", "cannot be empty"),
			wantCode:    ErrCodeValidationFailed,
			wantMessage: "validation failed for userID: cannot be empty",
		},
		{
			name:        "config invalid",
			err:         ErrConfigInvalid("no templates"),
			wantCode:    ErrCodeConfigInvalid,
			wantMessage: "invalid configuration: no templates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMessage)
			}
		})
	}
}

func TestErrRewardGrantFailed_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("wallet unavailable")
	err := ErrRewardGrantFailed("coin", "reward-1", cause)

	if err.Code != ErrCodeRewardGrantFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeRewardGrantFailed)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the grant failure cause")
	}
	if !strings.Contains(err.Error(), "coin") {
		t.Errorf("Error() should mention the reward type, got %q", err.Error())
	}
}

func TestNewTaskError(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := NewTaskError(ErrCodeTransactionFailed, "claim flow", inner)

	if err.Code != ErrCodeTransactionFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeTransactionFailed)
	}
	if err.Err != inner {
		t.Error("Err should hold the wrapped error")
	}
}
