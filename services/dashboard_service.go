package services

import (
	"context"
	"math"
	"time"

	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/repository"
	"github.com/emanuelpaduret/alex-backend/utils/logger"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

// RecentLimit is how many submissions the dashboard recent list carries
const RecentLimit = 5

type DashboardService struct {
	repo   repository.SubmissionRepositoryInterface
	logger logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo repository.SubmissionRepositoryInterface, log logger.Logger) *DashboardService {
	return &DashboardService{
		repo:   repo,
		logger: log,
	}
}

// GetStats composes the reporting view from independent sub-queries launched
// concurrently. There is no transactional consistency across them; concurrent
// writes may leave the sections on slightly different snapshots, which is
// fine for a reporting view.
func (s *DashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	var (
		total      int64
		lastWeek   int64
		errorCount int64
		byType     []models.GroupCount
		byStage    []models.GroupCount
		byStatus   []models.GroupCount
		byPriority []models.GroupCount
		recent     []*models.SubmissionSummary
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, bson.M{})
		return err
	})
	g.Go(func() error {
		var err error
		since := time.Now().Add(-7 * 24 * time.Hour)
		lastWeek, err = s.repo.Count(gctx, bson.M{"createdAt": bson.M{"$gte": since}})
		return err
	})
	g.Go(func() error {
		var err error
		errorCount, err = s.repo.Count(gctx, bson.M{"metadata.processingErrors.0": bson.M{"$exists": true}})
		return err
	})
	g.Go(func() error {
		var err error
		byType, err = s.repo.GroupCounts(gctx, "submissionType", true)
		return err
	})
	g.Go(func() error {
		var err error
		byStage, err = s.repo.GroupCounts(gctx, "stage", false)
		return err
	})
	g.Go(func() error {
		var err error
		byStatus, err = s.repo.GroupCounts(gctx, "status", false)
		return err
	})
	g.Go(func() error {
		var err error
		byPriority, err = s.repo.GroupCounts(gctx, "priority", false)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.repo.Recent(gctx, RecentLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Errorf("Dashboard aggregation failed: %v", err)
		return nil, err
	}

	errorRate := ErrorRate(errorCount, total)

	return &models.DashboardStats{
		Overview: models.DashboardOverview{
			TotalSubmissions: total,
			LastSevenDays:    lastWeek,
			ErrorRate:        errorRate,
		},
		Breakdowns: models.DashboardBreakdowns{
			ByType:     byType,
			ByStage:    byStage,
			ByStatus:   byStatus,
			ByPriority: byPriority,
		},
		Recent: recent,
		Performance: models.DashboardPerformance{
			ProcessingErrorCount: errorCount,
			ErrorRate:            errorRate,
		},
		LastUpdated: time.Now(),
	}, nil
}

// ErrorRate is errorCount/total as a percentage rounded to two decimals,
// and 0 for an empty store.
func ErrorRate(errorCount, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(errorCount)/float64(total)*100*100) / 100
}
