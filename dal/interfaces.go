package dal

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DatabaseClientInterface defines the contract for document-store operations
type DatabaseClientInterface interface {
	// Core CRUD operations
	InsertOne(ctx context.Context, collection string, doc interface{}) (primitive.ObjectID, error)
	FindByID(ctx context.Context, collection string, id primitive.ObjectID, result interface{}) error
	UpdateByID(ctx context.Context, collection string, id primitive.ObjectID, fields map[string]interface{}) error
	ReplaceByID(ctx context.Context, collection string, id primitive.ObjectID, doc interface{}) error
	DeleteByID(ctx context.Context, collection string, id primitive.ObjectID) error

	// Query operations
	FindMany(ctx context.Context, collection string, filter interface{}, sort bson.D, skip, limit int64, results interface{}) error
	Count(ctx context.Context, collection string, filter interface{}) (int64, error)
	UpdateMany(ctx context.Context, collection string, filter interface{}, fields map[string]interface{}) (matched, modified int64, err error)
	UpdateManyRaw(ctx context.Context, collection string, filter, update interface{}) (matched, modified int64, err error)

	// Aggregation
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline, results interface{}) error
}
