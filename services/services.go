package services

import (
	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/repository"
	"github.com/emanuelpaduret/alex-backend/utils/logger"
)

// Service implements ServiceContainerInterface
type Service struct {
	submissionService SubmissionServiceInterface
	dashboardService  DashboardServiceInterface
}

// NewService creates a new service container with all dependencies injected
func NewService(
	repoContainer repository.RepositoryContainerInterface,
	notifier NotifierInterface,
	logger logger.Logger,
	config *models.Config,
) ServiceContainerInterface {
	subRepo := repoContainer.GetSubmissionRepository()
	return &Service{
		submissionService: NewSubmissionService(subRepo, notifier, config, logger),
		dashboardService:  NewDashboardService(subRepo, logger),
	}
}

// GetSubmissionService returns the submission service interface
func (s *Service) GetSubmissionService() SubmissionServiceInterface {
	return s.submissionService
}

// GetDashboardService returns the dashboard service interface
func (s *Service) GetDashboardService() DashboardServiceInterface {
	return s.dashboardService
}
