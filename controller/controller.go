package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/emanuelpaduret/alex-backend/dal"
	"github.com/emanuelpaduret/alex-backend/middelware"
	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/notify"
	"github.com/emanuelpaduret/alex-backend/repository"
	"github.com/emanuelpaduret/alex-backend/services"
	"github.com/emanuelpaduret/alex-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controller struct {
	Submission *SubmissionController
	Dashboard  *DashboardController
	jwtManager *middelware.JWTManager
	config     *models.Config
	logger     logger.Logger
}

func NewController(ctx context.Context, cfg *models.Config, dbclient *dal.MongoClient, log logger.Logger) *Controller {
	repo := repository.NewRepository(dbclient, cfg, log)

	var notifier services.NotifierInterface
	if cfg.NotifyEnabled {
		sesNotifier, err := notify.NewSESNotifier(ctx, cfg, log)
		if err != nil {
			log.Fatalf("Failed to initialize SES notifier: %v", err)
		}
		notifier = sesNotifier
	}

	svc := services.NewService(repo, notifier, log, cfg)
	jwtManager := middelware.NewJWTManager(cfg, log)

	return &Controller{
		Submission: NewSubmissionController(ctx, svc.GetSubmissionService(), cfg, log),
		Dashboard:  NewDashboardController(ctx, svc.GetDashboardService(), log),
		jwtManager: jwtManager,
		config:     cfg,
		logger:     log,
	}
}

func (c *Controller) RegisterRoutes(ctx context.Context, config *models.Config, r *gin.Engine, basePath string) error {
	logging := middelware.NewLoggingMiddleware(c.logger)
	cors := middelware.NewCORSMiddleware(config)

	r.Use(logging.Recovery())
	r.Use(logging.RequestID())
	r.Use(logging.StructuredLogger())
	r.Use(cors.CORS())

	v1 := r.Group(basePath)

	// Health check endpoint (no auth required)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": config.AppVersion,
			"service": config.AppName,
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Staff login
	v1.POST("/auth/login", c.jwtManager.HandleLogin)

	auth := c.jwtManager.AuthMiddleware()
	sub := v1.Group("/submissions")

	// Public intake routes: web forms and workflow automations post here
	sub.POST("", c.Submission.Create)
	sub.POST("/webhook", c.Submission.CreateWebhook)

	// Staff routes
	sub.GET("", auth, c.Submission.List)
	sub.GET("/stats", auth, c.Dashboard.GetStats)
	sub.PATCH("/bulk/status", auth, c.Submission.BulkUpdateStatus)
	sub.GET("/:id", auth, c.Submission.Get)
	sub.PUT("/:id", auth, c.Submission.Replace)
	sub.PATCH("/:id/status", auth, c.Submission.UpdateStatus)
	sub.DELETE("/:id", auth, c.Submission.Delete)

	// Create HTTP server
	srv := &http.Server{
		Addr:    config.AppHost + ":" + config.AppPort,
		Handler: r,
	}
	c.logger.Infof("Starting server on %s:%s", config.AppHost, config.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// respondError maps the shared error kinds onto HTTP statuses. Storage error
// detail is elided outside development so internals never leak to callers.
func respondError(g *gin.Context, cfg *models.Config, err error, fallback string) {
	if verr, ok := models.AsValidationError(err); ok {
		g.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Error: &models.APIError{
				Type:   "ValidationError",
				Fields: verr.Fields,
			},
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrInvalidIdentifier):
		g.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid submission id",
			Error: &models.APIError{
				Type: "InvalidIdentifier",
			},
		})
	case errors.Is(err, models.ErrNotFound):
		g.JSON(http.StatusNotFound, models.APIResponse{
			Status:  "error",
			Code:    http.StatusNotFound,
			Message: "Submission not found",
		})
	default:
		apiErr := &models.APIError{Type: "PersistenceError"}
		if cfg != nil && cfg.AppEnv == "development" {
			apiErr.Details = err.Error()
		}
		g.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: fallback,
			Error:   apiErr,
		})
	}
}
