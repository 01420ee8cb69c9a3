package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/emanuelpaduret/alex-backend/dal"
	"github.com/emanuelpaduret/alex-backend/metrics"
	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/repository"
	"github.com/emanuelpaduret/alex-backend/utils/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

// FollowUpDueTag marks submissions whose follow-up date has passed
const FollowUpDueTag = "follow-up-due"

const followUpLockName = "follow-up-worker"

// Service is the cron-driven follow-up reminder worker. Each tick it takes
// the distributed lock, tags every actionable submission whose follow-up date
// has passed, and records the run in the status file.
type Service struct {
	config    *models.WorkerConfig
	appConfig *models.Config
	repo      repository.SubmissionRepositoryInterface
	lock      *MongoLock
	logger    logger.Logger
	cron      *cron.Cron
}

// NewService builds the worker from the application config
func NewService(ctx context.Context, cfg *models.Config, repo repository.SubmissionRepositoryInterface, db *dal.MongoClient, log logger.Logger) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if repo == nil {
		return nil, fmt.Errorf("repository cannot be nil")
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])

	workerConfig := &models.WorkerConfig{
		CronSchedule: cfg.WorkerCronSchedule,
		LockTimeout:  30 * time.Minute,
		Environment:  cfg.AppEnv,
		OwnerID:      ownerID,
		DryRun:       os.Getenv("FOLLOWUP_DRY_RUN") == "true",
		RunOnce:      os.Getenv("FOLLOWUP_RUN_ONCE") == "true",
		StatusFile:   fmt.Sprintf("/tmp/alex-followup-status-%s.json", cfg.AppEnv),
	}

	return &Service{
		config:    workerConfig,
		appConfig: cfg,
		repo:      repo,
		lock:      NewMongoLock(db, followUpLockName, ownerID, workerConfig.LockTimeout, log),
		logger:    log,
	}, nil
}

// StartInBackground schedules the worker on its cron interval. An immediate
// pass runs first so a restart never misses a due window.
func (s *Service) StartInBackground() error {
	if s.config.RunOnce {
		go s.runPass(context.Background())
		return nil
	}

	s.cron = cron.New()
	if err := s.cron.AddFunc(s.config.CronSchedule, func() {
		s.runPass(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid worker cron schedule %q: %w", s.config.CronSchedule, err)
	}
	s.cron.Start()

	go s.runPass(context.Background())

	s.logger.Infof("Follow-up worker started (schedule %q, owner %s)", s.config.CronSchedule, s.config.OwnerID)
	return nil
}

// Stop halts the cron scheduler. In-flight passes finish on their own.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// runPass executes one follow-up pass under the distributed lock
func (s *Service) runPass(ctx context.Context) {
	result := &models.WorkerRunResult{
		StartedAt: time.Now(),
		Owner:     s.config.OwnerID,
	}

	err := s.execute(ctx, result)
	result.FinishedAt = time.Now()
	result.Success = err == nil
	if err != nil {
		result.ErrorMessage = err.Error()
		if errors.Is(err, ErrLockHeld) {
			s.logger.Debugf("Skipping follow-up pass: %v", err)
		} else {
			s.logger.Errorf("Follow-up pass failed: %v", err)
		}
	}

	if err := writeStatusFile(s.config.StatusFile, result); err != nil {
		s.logger.Warnf("Failed to write worker status file: %v", err)
	}
}

func (s *Service) execute(ctx context.Context, result *models.WorkerRunResult) error {
	if err := s.lock.Acquire(ctx); err != nil {
		return err
	}
	defer func() {
		if err := s.lock.Release(context.Background()); err != nil {
			s.logger.Warnf("Failed to release worker lock: %v", err)
		}
	}()

	now := time.Now()

	if s.config.DryRun {
		s.logger.Infof("Dry run: skipping follow-up tagging at %s", now.Format(time.RFC3339))
		return nil
	}

	matched, modified, err := s.repo.TagFollowUpsDue(ctx, now, FollowUpDueTag)
	if err != nil {
		return err
	}

	result.DueCount = matched
	result.TaggedCount = modified
	metrics.FollowUpsTagged.Add(float64(modified))

	if matched > 0 {
		s.logger.Infof("Follow-up pass: %d due, %d newly tagged", matched, modified)
	} else {
		s.logger.Debugf("Follow-up pass: nothing due")
	}
	return nil
}
