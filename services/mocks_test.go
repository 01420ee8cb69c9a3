package services

import (
	"context"
	"time"

	"github.com/emanuelpaduret/alex-backend/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// MockSubmissionRepository implements repository.SubmissionRepositoryInterface for testing
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) List(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]*models.Submission, int64, error) {
	args := m.Called(ctx, filter, sort, skip, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Submission), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubmissionRepository) Replace(ctx context.Context, id string, sub *models.Submission) (*models.Submission, error) {
	args := m.Called(ctx, id, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Submission, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubmissionRepository) BulkUpdateFields(ctx context.Context, ids []string, fields map[string]interface{}) (*models.BulkUpdateResult, error) {
	args := m.Called(ctx, ids, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkUpdateResult), args.Error(1)
}

func (m *MockSubmissionRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubmissionRepository) GroupCounts(ctx context.Context, field string, withLatest bool) ([]models.GroupCount, error) {
	args := m.Called(ctx, field, withLatest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GroupCount), args.Error(1)
}

func (m *MockSubmissionRepository) Recent(ctx context.Context, n int64) ([]*models.SubmissionSummary, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubmissionSummary), args.Error(1)
}

func (m *MockSubmissionRepository) TagFollowUpsDue(ctx context.Context, now time.Time, tag string) (int64, int64, error) {
	args := m.Called(ctx, now, tag)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockNotifier implements NotifierInterface for testing
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyUrgent(ctx context.Context, sub *models.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

// MockLogger implements logger.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(args ...interface{})                 {}
func (m *MockLogger) Debugf(format string, args ...interface{}) {}
func (m *MockLogger) Info(args ...interface{})                  {}
func (m *MockLogger) Infof(format string, args ...interface{})  {}
func (m *MockLogger) Warn(args ...interface{})                  {}
func (m *MockLogger) Warnf(format string, args ...interface{})  {}
func (m *MockLogger) Error(args ...interface{})                 {}
func (m *MockLogger) Errorf(format string, args ...interface{}) {}
func (m *MockLogger) Fatal(args ...interface{})                 {}
func (m *MockLogger) Fatalf(format string, args ...interface{}) {}
