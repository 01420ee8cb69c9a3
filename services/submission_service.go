package services

import (
	"context"
	"time"

	"github.com/emanuelpaduret/alex-backend/metrics"
	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/repository"
	"github.com/emanuelpaduret/alex-backend/utils/logger"
)

// IngestMeta carries the transport-level facts recorded into the submission
// metadata envelope at create time.
type IngestMeta struct {
	RawInput  string
	IPAddress string
	UserAgent string
}

type SubmissionService struct {
	repo     repository.SubmissionRepositoryInterface
	notifier NotifierInterface
	config   *models.Config
	logger   logger.Logger
}

// NewSubmissionService creates a new submission service. notifier may be nil
// when urgent-lead notifications are disabled.
func NewSubmissionService(repo repository.SubmissionRepositoryInterface, notifier NotifierInterface, cfg *models.Config, log logger.Logger) *SubmissionService {
	return &SubmissionService{
		repo:     repo,
		notifier: notifier,
		config:   cfg,
		logger:   log,
	}
}

// Create validates and normalizes the payload, auto-classifies priority when
// the producer supplied none, and persists the record. The stored record with
// generated id and timestamps is returned.
func (s *SubmissionService) Create(ctx context.Context, sub *models.Submission, meta IngestMeta) (*models.Submission, error) {
	now := time.Now()
	prioritySupplied := sub.Priority != ""

	sub.Normalize(now)

	autoUrgent := false
	if !prioritySupplied {
		priority, urgent := ClassifyPriority(sub.Message)
		sub.Priority = priority
		if urgent {
			sub.Metadata.Tags = append(sub.Metadata.Tags, AutoUrgentTag)
			autoUrgent = true
		}
	}

	if msgs := sub.Validate(); len(msgs) > 0 {
		metrics.ValidationFailures.Inc()
		return nil, models.NewValidationError(msgs...)
	}

	if meta.RawInput != "" {
		sub.Metadata.RawInput = meta.RawInput
	}
	if meta.IPAddress != "" {
		sub.Metadata.IPAddress = meta.IPAddress
	}
	if meta.UserAgent != "" {
		sub.Metadata.UserAgent = meta.UserAgent
	}

	stored, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	metrics.SubmissionsCreated.WithLabelValues(string(stored.SubmissionType), string(stored.Priority)).Inc()
	if autoUrgent {
		metrics.SubmissionsAutoUrgent.Inc()
	}

	if stored.Priority == models.PriorityUrgent && s.notifier != nil && s.config.NotifyEnabled {
		// Fire and forget: a failed notification must not fail the intake.
		go func(sub models.Submission) {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.notifier.NotifyUrgent(notifyCtx, &sub); err != nil {
				metrics.NotificationFailures.Inc()
				s.logger.Errorf("Failed to notify urgent submission %s: %v", sub.ID.Hex(), err)
			}
		}(*stored)
	}

	return stored, nil
}

// GetByID fetches a single submission
func (s *SubmissionService) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	return s.repo.GetByID(ctx, id)
}

// List runs the query builder over the request parameters and shapes the
// page envelope. An empty result set is a success with zero counts.
func (s *SubmissionService) List(ctx context.Context, params models.SubmissionListParams) (*models.SubmissionList, error) {
	query := BuildSubmissionQuery(params)

	subs, total, err := s.repo.List(ctx, query.Filter, query.Sort, query.Skip, query.Limit)
	if err != nil {
		return nil, err
	}

	return &models.SubmissionList{
		Submissions: subs,
		Pagination:  BuildPagination(query, total),
		Filters:     query.Applied,
	}, nil
}

// Replace swaps the full record body after re-running create-level
// validation. The stored createdAt is preserved; updatedAt always advances.
func (s *SubmissionService) Replace(ctx context.Context, id string, sub *models.Submission) (*models.Submission, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Normalize(time.Now())
	if msgs := sub.Validate(); len(msgs) > 0 {
		metrics.ValidationFailures.Inc()
		return nil, models.NewValidationError(msgs...)
	}

	sub.CreatedAt = existing.CreatedAt
	return s.repo.Replace(ctx, id, sub)
}

// UpdateStatus applies a partial update restricted to the workflow fields
// (stage, status, priority, assignedTo). Anything else in the request body
// was already dropped during binding.
func (s *SubmissionService) UpdateStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.Submission, error) {
	if update.IsEmpty() {
		metrics.ValidationFailures.Inc()
		return nil, models.NewValidationError("at least one of stage, status, priority or assignedTo is required")
	}
	if msgs := update.Validate(); len(msgs) > 0 {
		metrics.ValidationFailures.Inc()
		return nil, models.NewValidationError(msgs...)
	}
	return s.repo.UpdateFields(ctx, id, update.Fields())
}

// Delete physically removes a submission and returns the deleted id as
// confirmation. A second delete of the same id yields NotFound.
func (s *SubmissionService) Delete(ctx context.Context, id string) (string, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	s.logger.Infof("Submission deleted: %s", id)
	return id, nil
}

// BulkUpdateStatus applies the same workflow-field update to every matching
// id. Nonexistent ids simply do not match; they are not an error.
func (s *SubmissionService) BulkUpdateStatus(ctx context.Context, req models.BulkStatusUpdateRequest) (*models.BulkUpdateResult, error) {
	if len(req.IDs) == 0 {
		metrics.ValidationFailures.Inc()
		return nil, models.NewValidationError("ids must not be empty")
	}
	if req.Updates.IsEmpty() {
		metrics.ValidationFailures.Inc()
		return nil, models.NewValidationError("updates must not be empty")
	}
	if msgs := req.Updates.Validate(); len(msgs) > 0 {
		metrics.ValidationFailures.Inc()
		return nil, models.NewValidationError(msgs...)
	}
	return s.repo.BulkUpdateFields(ctx, req.IDs, req.Updates.Fields())
}
