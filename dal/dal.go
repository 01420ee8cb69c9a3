package dal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/utils/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient wraps the document-store connection. Every method applies the
// configured operation timeout and maps driver failures onto the shared error
// kinds so nothing driver-specific leaks past this package.
type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
	config *models.Config
	logger logger.Logger
}

// NewMongoClient connects and pings the configured MongoDB deployment
func NewMongoClient(ctx context.Context, cfg *models.Config, log logger.Logger) (*MongoClient, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	dbClient := &MongoClient{
		client: client,
		db:     client.Database(cfg.MongoDatabase),
		config: cfg,
		logger: log,
	}

	log.Info("MongoDB client initialized successfully")
	return dbClient, nil
}

// Disconnect closes the underlying connection pool
func (db *MongoClient) Disconnect(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// Collection exposes a raw collection handle for index management
func (db *MongoClient) Collection(name string) *mongo.Collection {
	return db.db.Collection(name)
}

func (db *MongoClient) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := db.config.MongoTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// mapErr folds driver and timeout failures into the shared error taxonomy
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	return fmt.Errorf("%w: %v", models.ErrPersistence, err)
}

// InsertOne stores a new document and returns its generated ObjectID
func (db *MongoClient) InsertOne(ctx context.Context, collection string, doc interface{}) (primitive.ObjectID, error) {
	opCtx, cancel := db.opCtx(ctx)
	defer cancel()

	res, err := db.db.Collection(collection).InsertOne(opCtx, doc)
	if err != nil {
		db.logger.Errorf("Failed to insert document into %s: %v", collection, err)
		return primitive.NilObjectID, mapErr(err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%w: unexpected inserted id type", models.ErrPersistence)
	}
	return id, nil
}

// FindByID decodes the document with the given id into result
func (db *MongoClient) FindByID(ctx context.Context, collection string, id primitive.ObjectID, result interface{}) error {
	opCtx, cancel := db.opCtx(ctx)
	defer cancel()

	err := db.db.Collection(collection).FindOne(opCtx, bson.M{"_id": id}).Decode(result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			db.logger.Errorf("Failed to find document %s in %s: %v", id.Hex(), collection, err)
		}
		return mapErr(err)
	}
	return nil
}

// FindMany runs a filtered, sorted, paginated query and decodes all results
func (db *MongoClient) FindMany(ctx context.Context, collection string, filter interface{}, sort bson.D, skip, limit int64, results interface{}) error {
	opCtx, cancel := db.opCtx(ctx)
	defer cancel()

	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := db.db.Collection(collection).Find(opCtx, filter, opts)
	if err != nil {
		db.logger.Errorf("Failed to query %s: %v", collection, err)
		return mapErr(err)
	}
	defer cursor.Close(opCtx)

	if err := cursor.All(opCtx, results); err != nil {
		return mapErr(err)
	}
	return nil
}

// Count returns the number of documents matching filter
func (db *MongoClient) Count(ctx context.Context, collection string, filter interface{}) (int64, error) {
	opCtx, cancel := db.opCtx(ctx)
	defer cancel()

	count, err := db.db.Collection(collection).CountDocuments(opCtx, filter)
	if err != nil {
		db.logger.Errorf("Failed to count documents in %s: %v", collection, err)
		return 0, mapErr(err)
	}
	return count, nil
}

// UpdateByID applies a $set of fields to one document. Returns ErrNotFound
// when no document matched the id.
func (db *MongoClient) UpdateByID(ctx context.Context, collection string, id primitive.ObjectID, fields map[string]interface{}) error {
	opCtx, cancel := db.opCtx(ctx)
	defer cancel()

	res, err := db.db.Collection(collection).UpdateOne(opCtx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		db.logger.Errorf("Failed to update document %s in %s: %v", id.Hex(), collection, err)
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ReplaceByID swaps the full document body, keeping the id
func (db *MongoClient) ReplaceByID(ctx context.Context, collection string, id primitive.ObjectID, doc interface{}) error {
	opCtx, cancel := db.opCtx(ctx)
	defer cancel()

	res, err := db.db.Collection(collection).ReplaceOne(opCtx, bson.M{"_id": id}, doc)
	if err != nil {
		db.logger.Errorf("Failed to replace document %s in %s: %v", id.Hex(), collection, err)
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateMany applies a $set of fields to every matching document
func (db *MongoClient) UpdateMany(ctx context.Context, collection string, filter interface{}, fields map[string]interface{}) (matched, modified int64, err error) {
	opCtx, cancel := db.opCtx(ctx)
	defer cancel()

	res, err := db.db.Collection(collection).UpdateMany(opCtx, filter, bson.M{"$set": fields})
	if err != nil {
		db.logger.Errorf("Failed to update documents in %s: %v", collection, err)
		return 0, 0, mapErr(err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// UpdateManyRaw applies an arbitrary update document to every matching
// document, for callers needing operators beyond $set ($addToSet, $push).
func (db *MongoClient) UpdateManyRaw(ctx context.Context, collection string, filter, update interface{}) (matched, modified int64, err error) {
	opCtx, cancel := db.opCtx(ctx)
	defer cancel()

	res, err := db.db.Collection(collection).UpdateMany(opCtx, filter, update)
	if err != nil {
		db.logger.Errorf("Failed to update documents in %s: %v", collection, err)
		return 0, 0, mapErr(err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// DeleteByID physically removes one document. Repeat deletes of the same id
// return ErrNotFound.
func (db *MongoClient) DeleteByID(ctx context.Context, collection string, id primitive.ObjectID) error {
	opCtx, cancel := db.opCtx(ctx)
	defer cancel()

	res, err := db.db.Collection(collection).DeleteOne(opCtx, bson.M{"_id": id})
	if err != nil {
		db.logger.Errorf("Failed to delete document %s in %s: %v", id.Hex(), collection, err)
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Aggregate runs a pipeline and decodes all results
func (db *MongoClient) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline, results interface{}) error {
	opCtx, cancel := db.opCtx(ctx)
	defer cancel()

	cursor, err := db.db.Collection(collection).Aggregate(opCtx, pipeline)
	if err != nil {
		db.logger.Errorf("Failed to aggregate %s: %v", collection, err)
		return mapErr(err)
	}
	defer cursor.Close(opCtx)

	if err := cursor.All(opCtx, results); err != nil {
		return mapErr(err)
	}
	return nil
}

// PrintPrettyJSON takes any struct or map and prints it as pretty JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return ""
	}
	return string(prettyJSON)
}
