package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/coinquest/task-reward-engine/pkg/repository"
)

func TestGetTaskStats(t *testing.T) {
	repo := repository.NewMockTaskRepository()
	stats := NewStats(repo, testLogger())

	repo.On("GetStatCounts", mock.Anything, "user-1", mock.Anything).
		Return(&repository.TaskStatCounts{
			Total:          7,
			Completed:      3,
			TodayTotal:     2,
			TodayCompleted: 1,
		}, nil)

	got, err := stats.GetTaskStats(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 7, got.TotalTasks)
	assert.Equal(t, 3, got.CompletedTasks)
	assert.Equal(t, 42.86, got.CompletionRate)
	assert.Equal(t, 2, got.TodayTasks)
	assert.Equal(t, 1, got.TodayCompletedTasks)
	assert.Equal(t, 50.0, got.TodayCompletionRate)
}

func TestGetTaskStats_NoRecords(t *testing.T) {
	repo := repository.NewMockTaskRepository()
	stats := NewStats(repo, testLogger())

	repo.On("GetStatCounts", mock.Anything, "user-1", mock.Anything).
		Return(&repository.TaskStatCounts{}, nil)

	got, err := stats.GetTaskStats(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 0.0, got.CompletionRate)
	assert.Equal(t, 0.0, got.TodayCompletionRate)
}

func TestGetTaskStats_EmptyUserID(t *testing.T) {
	repo := repository.NewMockTaskRepository()
	stats := NewStats(repo, testLogger())

	_, err := stats.GetTaskStats(context.Background(), "")

	require.Error(t, err)
	repo.AssertNotCalled(t, "GetStatCounts", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetTaskStats_RepositoryError(t *testing.T) {
	repo := repository.NewMockTaskRepository()
	stats := NewStats(repo, testLogger())

	repo.On("GetStatCounts", mock.Anything, "user-1", mock.Anything).
		Return(nil, fmt.Errorf("connection refused"))

	_, err := stats.GetTaskStats(context.Background(), "user-1")

	assert.Error(t, err)
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      float64
	}{
		{name: "zero total", completed: 0, total: 0, want: 0},
		{name: "none completed", completed: 0, total: 5, want: 0},
		{name: "all completed", completed: 5, total: 5, want: 100},
		{name: "half completed", completed: 1, total: 2, want: 50},
		{name: "rounds to two decimals", completed: 1, total: 3, want: 33.33},
		{name: "rounds up", completed: 2, total: 3, want: 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, completionRate(tt.completed, tt.total))
		})
	}
}
