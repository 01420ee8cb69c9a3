package services

import (
	"context"

	"github.com/emanuelpaduret/alex-backend/models"
)

// SubmissionServiceInterface defines the contract for the submission lifecycle
type SubmissionServiceInterface interface {
	Create(ctx context.Context, sub *models.Submission, meta IngestMeta) (*models.Submission, error)
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context, params models.SubmissionListParams) (*models.SubmissionList, error)
	Replace(ctx context.Context, id string, sub *models.Submission) (*models.Submission, error)
	UpdateStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.Submission, error)
	Delete(ctx context.Context, id string) (string, error)
	BulkUpdateStatus(ctx context.Context, req models.BulkStatusUpdateRequest) (*models.BulkUpdateResult, error)
}

// DashboardServiceInterface defines the contract for the reporting view
type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

// NotifierInterface is the outbound alerting port for urgent submissions
type NotifierInterface interface {
	NotifyUrgent(ctx context.Context, sub *models.Submission) error
}

// ServiceContainerInterface defines the main service container contract
type ServiceContainerInterface interface {
	GetSubmissionService() SubmissionServiceInterface
	GetDashboardService() DashboardServiceInterface
}
