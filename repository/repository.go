package repository

import (
	"github.com/emanuelpaduret/alex-backend/dal"
	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/utils/logger"
)

type Repository struct {
	Submission *SubmissionRepository
}

func NewRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		Submission: NewSubmissionRepository(db, cfg, log),
	}
}

// GetSubmissionRepository returns the submission repository interface
func (r *Repository) GetSubmissionRepository() SubmissionRepositoryInterface {
	return r.Submission
}
