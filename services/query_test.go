package services

import (
	"testing"

	"github.com/emanuelpaduret/alex-backend/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildSubmissionQueryDefaults(t *testing.T) {
	q := BuildSubmissionQuery(models.SubmissionListParams{})

	assert.Empty(t, q.Filter)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageLimit, q.PerPage)
	assert.Equal(t, int64(0), q.Skip)
	assert.Equal(t, int64(DefaultPageLimit), q.Limit)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, q.Sort)
}

func TestBuildSubmissionQueryEqualityFilters(t *testing.T) {
	q := BuildSubmissionQuery(models.SubmissionListParams{
		Type:       "moving",
		Stage:      "Quote Sent",
		Status:     "new",
		Priority:   "urgent",
		AssignedTo: "alex",
		Source:     "n8n",
	})

	assert.Equal(t, "moving", q.Filter["submissionType"])
	assert.Equal(t, "Quote Sent", q.Filter["stage"])
	assert.Equal(t, "new", q.Filter["status"])
	assert.Equal(t, "urgent", q.Filter["priority"])
	assert.Equal(t, "alex", q.Filter["assignedTo"])
	assert.Equal(t, "n8n", q.Filter["source"])

	assert.Equal(t, "moving", q.Applied.Type)
	assert.Equal(t, "alex", q.Applied.AssignedTo)
}

func TestBuildSubmissionQuerySearchCombinesWithFilters(t *testing.T) {
	q := BuildSubmissionQuery(models.SubmissionListParams{
		Type:   "moving",
		Search: "jane",
	})

	// Equality filter and the OR-group live in the same document, so they
	// AND-combine.
	assert.Equal(t, "moving", q.Filter["submissionType"])

	orGroup, ok := q.Filter["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, orGroup, 3)

	regex, ok := orGroup[0]["name"].(primitive.Regex)
	assert.True(t, ok)
	assert.Equal(t, "jane", regex.Pattern)
	assert.Equal(t, "i", regex.Options)
}

func TestBuildSubmissionQueryEscapesSearchRegex(t *testing.T) {
	q := BuildSubmissionQuery(models.SubmissionListParams{Search: "j.doe+1@x.com"})

	orGroup := q.Filter["$or"].([]bson.M)
	regex := orGroup[1]["email"].(primitive.Regex)
	assert.Equal(t, `j\.doe\+1@x\.com`, regex.Pattern)
}

func TestBuildSubmissionQueryClampsPagination(t *testing.T) {
	q := BuildSubmissionQuery(models.SubmissionListParams{Page: -3, Limit: 0})

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageLimit, q.PerPage)
	assert.Equal(t, int64(0), q.Skip)
}

func TestBuildSubmissionQuerySkip(t *testing.T) {
	q := BuildSubmissionQuery(models.SubmissionListParams{Page: 3, Limit: 25})

	assert.Equal(t, int64(50), q.Skip)
	assert.Equal(t, int64(25), q.Limit)
}

func TestBuildSubmissionQuerySort(t *testing.T) {
	asc := BuildSubmissionQuery(models.SubmissionListParams{Sort: "name"})
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, asc.Sort)

	desc := BuildSubmissionQuery(models.SubmissionListParams{Sort: "-updatedAt"})
	assert.Equal(t, bson.D{{Key: "updatedAt", Value: -1}}, desc.Sort)
}

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"empty", 1, 10, 0, 0, false, false},
		{"single page", 1, 10, 3, 1, false, false},
		{"exact boundary", 2, 5, 10, 2, false, true},
		{"middle page", 2, 10, 35, 4, true, true},
		{"last page", 4, 10, 35, 4, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildSubmissionQuery(models.SubmissionListParams{Page: tt.page, Limit: tt.limit})
			p := BuildPagination(q, tt.total)

			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.total, p.TotalItems)
			assert.Equal(t, tt.hasNext, p.HasNextPage)
			assert.Equal(t, tt.hasPrev, p.HasPreviousPage)
			assert.Equal(t, tt.page, p.CurrentPage)
		})
	}
}
