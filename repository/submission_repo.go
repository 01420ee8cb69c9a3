package repository

import (
	"context"
	"time"

	"github.com/emanuelpaduret/alex-backend/dal"
	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/utils/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SubmissionRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *SubmissionRepository) collection() string {
	return r.config.MongoCollection
}

// ParseID converts a path parameter into an ObjectID, mapping malformed hex
// onto ErrInvalidIdentifier.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.ErrInvalidIdentifier
	}
	return oid, nil
}

// Create persists a normalized submission and returns it with the generated
// id and timestamps filled in.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	now := time.Now()
	sub.ID = primitive.NilObjectID
	sub.CreatedAt = now
	sub.UpdatedAt = now

	id, err := r.db.InsertOne(ctx, r.collection(), sub)
	if err != nil {
		r.logger.Errorf("Failed to create submission: %v", err)
		return nil, err
	}

	sub.ID = id
	r.logger.Infof("Submission created successfully: %s", id.Hex())
	return sub, nil
}

// GetByID fetches one submission by its hex id
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var sub models.Submission
	if err := r.db.FindByID(ctx, r.collection(), oid, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// List runs the query-builder output against the store and returns the page
// plus the total match count.
func (r *SubmissionRepository) List(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]*models.Submission, int64, error) {
	total, err := r.db.Count(ctx, r.collection(), filter)
	if err != nil {
		return nil, 0, err
	}

	subs := []*models.Submission{}
	if err := r.db.FindMany(ctx, r.collection(), filter, sort, skip, limit, &subs); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// Replace swaps the full document body. CreatedAt must already carry the
// stored record's value; UpdatedAt is advanced here.
func (r *SubmissionRepository) Replace(ctx context.Context, id string, sub *models.Submission) (*models.Submission, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	sub.ID = oid
	sub.UpdatedAt = time.Now()
	if err := r.db.ReplaceByID(ctx, r.collection(), oid, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// UpdateFields applies a partial $set and returns the updated record.
// UpdatedAt is always advanced as a side effect, regardless of the caller's
// field set.
func (r *SubmissionRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Submission, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	withTimestamp := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		withTimestamp[k] = v
	}
	withTimestamp["updatedAt"] = time.Now()

	if err := r.db.UpdateByID(ctx, r.collection(), oid, withTimestamp); err != nil {
		return nil, err
	}

	var sub models.Submission
	if err := r.db.FindByID(ctx, r.collection(), oid, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Delete physically removes a submission. Deleting an absent id returns
// ErrNotFound, also on repeat deletes.
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	return r.db.DeleteByID(ctx, r.collection(), oid)
}

// BulkUpdateFields applies the same $set to every matching id. Unparseable
// ids simply do not match, mirroring how nonexistent ids behave.
func (r *SubmissionRepository) BulkUpdateFields(ctx context.Context, ids []string, fields map[string]interface{}) (*models.BulkUpdateResult, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			r.logger.Debugf("Skipping malformed id in bulk update: %s", id)
			continue
		}
		oids = append(oids, oid)
	}

	withTimestamp := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		withTimestamp[k] = v
	}
	withTimestamp["updatedAt"] = time.Now()

	matched, modified, err := r.db.UpdateMany(ctx, r.collection(), bson.M{"_id": bson.M{"$in": oids}}, withTimestamp)
	if err != nil {
		return nil, err
	}
	return &models.BulkUpdateResult{Matched: matched, Modified: modified}, nil
}

// Count returns the number of submissions matching filter
func (r *SubmissionRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.db.Count(ctx, r.collection(), filter)
}

// GroupCounts aggregates counts grouped by the given field, sorted by count
// descending. When withLatest is set each bucket also reports its most recent
// createdAt.
func (r *SubmissionRepository) GroupCounts(ctx context.Context, field string, withLatest bool) ([]models.GroupCount, error) {
	group := bson.D{
		{Key: "_id", Value: "$" + field},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}
	if withLatest {
		group = append(group, bson.E{Key: "latest", Value: bson.D{{Key: "$max", Value: "$createdAt"}}})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: group}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	results := []models.GroupCount{}
	if err := r.db.Aggregate(ctx, r.collection(), pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Recent returns the n most recently created submissions projected to the
// dashboard summary shape.
func (r *SubmissionRepository) Recent(ctx context.Context, n int64) ([]*models.SubmissionSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$limit", Value: n}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "email", Value: 1},
			{Key: "submissionType", Value: 1},
			{Key: "stage", Value: 1},
			{Key: "status", Value: 1},
			{Key: "createdAt", Value: 1},
		}}},
	}

	results := []*models.SubmissionSummary{}
	if err := r.db.Aggregate(ctx, r.collection(), pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// TagFollowUpsDue tags submissions whose follow-up date has passed and that
// are still actionable. Used by the reminder worker.
func (r *SubmissionRepository) TagFollowUpsDue(ctx context.Context, now time.Time, tag string) (matched, modified int64, err error) {
	filter := bson.M{
		"followUpDate": bson.M{"$lte": now},
		"status":       bson.M{"$in": []models.Status{models.StatusNew, models.StatusInProgress}},
		"tags":         bson.M{"$ne": tag},
	}
	update := bson.M{
		"$addToSet": bson.M{"tags": tag},
		"$set":      bson.M{"updatedAt": now},
	}
	return r.db.UpdateManyRaw(ctx, r.collection(), filter, update)
}
