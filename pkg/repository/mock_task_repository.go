package repository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/coinquest/task-reward-engine/pkg/domain"
)

// MockTaskRepository is a mock implementation of TaskRecordRepository for
// testing. It uses testify/mock to allow test assertions on method calls.
type MockTaskRepository struct {
	mock.Mock
}

// NewMockTaskRepository creates a new mock task repository.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{}
}

func (m *MockTaskRepository) GetRecord(ctx context.Context, recordID int64) (*domain.UserTaskRecord, error) {
	args := m.Called(ctx, recordID)
	record, _ := args.Get(0).(*domain.UserTaskRecord)
	return record, args.Error(1)
}

func (m *MockTaskRepository) GetUserRecords(ctx context.Context, userID string) ([]*domain.UserTaskRecord, error) {
	args := m.Called(ctx, userID)
	records, _ := args.Get(0).([]*domain.UserTaskRecord)
	return records, args.Error(1)
}

func (m *MockTaskRepository) GetTemplateIDsWithRecords(ctx context.Context, userID string, date time.Time, templateIDs []string) ([]string, error) {
	args := m.Called(ctx, userID, date, templateIDs)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockTaskRepository) BulkInsertRecords(ctx context.Context, records []*domain.UserTaskRecord) (int, error) {
	args := m.Called(ctx, records)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) ApplyProgressByAction(ctx context.Context, userID, action string, increment int) (int, error) {
	args := m.Called(ctx, userID, action, increment)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) GetClaimableRecords(ctx context.Context, userID string) ([]*domain.UserTaskRecord, error) {
	args := m.Called(ctx, userID)
	records, _ := args.Get(0).([]*domain.UserTaskRecord)
	return records, args.Error(1)
}

func (m *MockTaskRepository) ExpireDailyBefore(ctx context.Context, date time.Time) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) MarkRewarded(ctx context.Context, recordID int64) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}

func (m *MockTaskRepository) GetStatCounts(ctx context.Context, userID string, today time.Time) (*TaskStatCounts, error) {
	args := m.Called(ctx, userID, today)
	counts, _ := args.Get(0).(*TaskStatCounts)
	return counts, args.Error(1)
}

func (m *MockTaskRepository) BeginTx(ctx context.Context) (TaskTxRepository, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(TaskTxRepository)
	return tx, args.Error(1)
}

// MockTaskTxRepository is a mock implementation of TaskTxRepository.
type MockTaskTxRepository struct {
	MockTaskRepository
}

// NewMockTaskTxRepository creates a new mock transactional task repository.
func NewMockTaskTxRepository() *MockTaskTxRepository {
	return &MockTaskTxRepository{}
}

func (m *MockTaskTxRepository) GetRecordForUpdate(ctx context.Context, recordID int64) (*domain.UserTaskRecord, error) {
	args := m.Called(ctx, recordID)
	record, _ := args.Get(0).(*domain.UserTaskRecord)
	return record, args.Error(1)
}

func (m *MockTaskTxRepository) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTaskTxRepository) Rollback() error {
	args := m.Called()
	return args.Error(0)
}
