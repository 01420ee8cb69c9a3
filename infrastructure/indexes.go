package infrastructure

import (
	"context"
	"fmt"

	"github.com/emanuelpaduret/alex-backend/dal"
	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/utils/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// submissionIndexes covers the filter axes of the list endpoint, the default
// sort, and the worker's follow-up scan.
func submissionIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "submissionType", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "stage", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: 1}}},
		{Keys: bson.D{{Key: "assignedTo", Value: 1}}},
		{
			Keys:    bson.D{{Key: "followUpDate", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
}

// EnsureIndexes creates the submission collection indexes. CreateMany is
// idempotent for identical specs, so this is safe to run on every start.
func EnsureIndexes(ctx context.Context, db *dal.MongoClient, cfg *models.Config, log logger.Logger) error {
	coll := db.Collection(cfg.MongoCollection)

	names, err := coll.Indexes().CreateMany(ctx, submissionIndexes())
	if err != nil {
		return fmt.Errorf("failed to create submission indexes: %w", err)
	}

	log.Infof("Ensured %d indexes on %s: %v", len(names), cfg.MongoCollection, names)
	return nil
}
