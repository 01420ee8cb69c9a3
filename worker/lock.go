package worker

import (
	"context"
	"errors"
	"time"

	"github.com/emanuelpaduret/alex-backend/dal"
	"github.com/emanuelpaduret/alex-backend/utils/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const lockCollection = "worker_locks"

// ErrLockHeld is returned when another instance owns the lock
var ErrLockHeld = errors.New("worker lock held by another instance")

// MongoLock is a best-effort distributed lock document. Only one instance at
// a time runs the follow-up pass; an expired lock can be taken over.
type MongoLock struct {
	db      *dal.MongoClient
	name    string
	owner   string
	timeout time.Duration
	logger  logger.Logger
}

type lockDoc struct {
	Name      string    `bson:"_id"`
	Owner     string    `bson:"owner"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// NewMongoLock creates a lock handle for the named lock
func NewMongoLock(db *dal.MongoClient, name, owner string, timeout time.Duration, log logger.Logger) *MongoLock {
	return &MongoLock{
		db:      db,
		name:    name,
		owner:   owner,
		timeout: timeout,
		logger:  log,
	}
}

// Acquire takes the lock when it is free or expired
func (l *MongoLock) Acquire(ctx context.Context) error {
	now := time.Now()
	filter := bson.M{
		"_id": l.name,
		"$or": []bson.M{
			{"owner": l.owner},
			{"expiresAt": bson.M{"$lt": now}},
		},
	}
	update := bson.M{"$set": bson.M{
		"owner":     l.owner,
		"expiresAt": now.Add(l.timeout),
	}}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc lockDoc
	err := l.db.Collection(lockCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		// A duplicate-key error means a live lock document exists under a
		// different owner.
		if mongo.IsDuplicateKeyError(err) {
			return ErrLockHeld
		}
		return err
	}
	if doc.Owner != l.owner {
		return ErrLockHeld
	}

	l.logger.Debugf("Acquired worker lock %s as %s", l.name, l.owner)
	return nil
}

// Release frees the lock if this instance still owns it
func (l *MongoLock) Release(ctx context.Context) error {
	_, err := l.db.Collection(lockCollection).DeleteOne(ctx, bson.M{
		"_id":   l.name,
		"owner": l.owner,
	})
	if err != nil {
		return err
	}
	l.logger.Debugf("Released worker lock %s", l.name)
	return nil
}
