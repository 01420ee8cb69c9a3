package main

import (
	"context"
	"log"

	"github.com/emanuelpaduret/alex-backend/controller"
	"github.com/emanuelpaduret/alex-backend/dal"
	"github.com/emanuelpaduret/alex-backend/infrastructure"
	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/repository"
	"github.com/emanuelpaduret/alex-backend/utils"
	"github.com/emanuelpaduret/alex-backend/utils/logger"
	"github.com/emanuelpaduret/alex-backend/worker"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title Alex Backend API
// @version 1.0
// @description Form-submission intake and triage API for the sales pipeline.
// @description
// @description Leads arrive from web forms, workflow automations (n8n) or direct calls,
// @description are persisted to MongoDB and managed by staff through CRUD, filtering and
// @description dashboard-aggregation endpoints.
// @description
// @description Staff endpoints require a Bearer token from POST /auth/login.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Enter 'Bearer' [space] and then your token.
func main() {
	Init()

	ctx := context.Background()
	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Infof("Starting %s %s (%s)", config.AppName, config.AppVersion, config.AppEnv)

	dbclient, err := dal.NewMongoClient(ctx, config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to initialize MongoDB client: %v", err)
	}
	defer dbclient.Disconnect(ctx)

	if err := infrastructure.EnsureIndexes(ctx, dbclient, config, appLogger); err != nil {
		appLogger.Warnf("Failed to ensure indexes: %v", err)
	}

	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	c := controller.NewController(ctx, config, dbclient, appLogger)

	if config.WorkerEnabled {
		repo := repository.NewSubmissionRepository(dbclient, config, appLogger)
		followUpWorker, err := worker.NewService(ctx, config, repo, dbclient, appLogger)
		if err != nil {
			appLogger.Fatalf("Failed to create follow-up worker: %v", err)
		}
		if err := followUpWorker.StartInBackground(); err != nil {
			appLogger.Fatalf("Failed to start follow-up worker: %v", err)
		}
		defer followUpWorker.Stop()
	}

	if err := c.RegisterRoutes(ctx, config, r, config.BasePath); err != nil {
		appLogger.Fatalf("Server stopped with error: %v", err)
	}
}
