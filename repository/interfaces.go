package repository

import (
	"context"
	"time"

	"github.com/emanuelpaduret/alex-backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SubmissionRepositoryInterface defines the contract for submission storage operations
type SubmissionRepositoryInterface interface {
	Create(ctx context.Context, sub *models.Submission) (*models.Submission, error)
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]*models.Submission, int64, error)
	Replace(ctx context.Context, id string, sub *models.Submission) (*models.Submission, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Submission, error)
	Delete(ctx context.Context, id string) error
	BulkUpdateFields(ctx context.Context, ids []string, fields map[string]interface{}) (*models.BulkUpdateResult, error)

	// Dashboard reads
	Count(ctx context.Context, filter bson.M) (int64, error)
	GroupCounts(ctx context.Context, field string, withLatest bool) ([]models.GroupCount, error)
	Recent(ctx context.Context, n int64) ([]*models.SubmissionSummary, error)

	// Worker support
	TagFollowUpsDue(ctx context.Context, now time.Time, tag string) (matched, modified int64, err error)
}

// RepositoryContainerInterface defines the contract for the repository container
type RepositoryContainerInterface interface {
	GetSubmissionRepository() SubmissionRepositoryInterface
}
