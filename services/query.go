package services

import (
	"strings"

	"github.com/emanuelpaduret/alex-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPageLimit is the items-per-page applied when the caller sends none
const DefaultPageLimit = 10

// SubmissionQuery is the storage-ready form of a list request
type SubmissionQuery struct {
	Filter  bson.M
	Sort    bson.D
	Skip    int64
	Limit   int64
	Page    int
	PerPage int
	Applied models.AppliedFilters
}

// BuildSubmissionQuery translates the optional list parameters into a filter,
// sort and pagination descriptor. Equality filters are AND-combined; a search
// term adds an OR-group of case-insensitive substring matches over name,
// email and message, ANDed with the rest. Page and limit are clamped to >= 1
// so a hostile page value can never produce a negative skip.
func BuildSubmissionQuery(params models.SubmissionListParams) SubmissionQuery {
	filter := bson.M{}
	applied := models.AppliedFilters{}

	if v := strings.TrimSpace(params.Type); v != "" {
		filter["submissionType"] = v
		applied.Type = v
	}
	if v := strings.TrimSpace(params.Stage); v != "" {
		filter["stage"] = v
		applied.Stage = v
	}
	if v := strings.TrimSpace(params.Source); v != "" {
		filter["source"] = v
		applied.Source = v
	}
	if v := strings.TrimSpace(params.Status); v != "" {
		filter["status"] = v
		applied.Status = v
	}
	if v := strings.TrimSpace(params.Priority); v != "" {
		filter["priority"] = v
		applied.Priority = v
	}
	if v := strings.TrimSpace(params.AssignedTo); v != "" {
		filter["assignedTo"] = v
		applied.AssignedTo = v
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		applied.Search = search
		regex := primitive.Regex{Pattern: escapeRegex(search), Options: "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"email": regex},
			{"message": regex},
		}
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}

	return SubmissionQuery{
		Filter:  filter,
		Sort:    buildSort(params.Sort),
		Skip:    int64(page-1) * int64(limit),
		Limit:   int64(limit),
		Page:    page,
		PerPage: limit,
		Applied: applied,
	}
}

// buildSort parses a sort parameter like "-createdAt" into a sort descriptor.
// Default is newest first.
func buildSort(sort string) bson.D {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		sort = "-createdAt"
	}
	direction := 1
	if strings.HasPrefix(sort, "-") {
		direction = -1
		sort = sort[1:]
	}
	if sort == "" {
		sort = "createdAt"
	}
	return bson.D{{Key: sort, Value: direction}}
}

// BuildPagination derives the page descriptor from the total match count
func BuildPagination(q SubmissionQuery, total int64) models.Pagination {
	totalPages := int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	return models.Pagination{
		CurrentPage:     q.Page,
		TotalPages:      totalPages,
		TotalItems:      total,
		ItemsPerPage:    q.PerPage,
		HasNextPage:     q.Page < totalPages,
		HasPreviousPage: q.Page > 1,
	}
}

// escapeRegex neutralizes regex metacharacters so search terms are matched
// as literal substrings.
func escapeRegex(s string) string {
	special := `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
