package models

import "time"

// GroupCount is one bucket of a grouped count, sorted by count descending.
// Latest is only populated for the submissionType breakdown.
type GroupCount struct {
	Value  string     `json:"value" bson:"_id"`
	Count  int64      `json:"count" bson:"count"`
	Latest *time.Time `json:"latest,omitempty" bson:"latest,omitempty"`
}

// DashboardOverview is the headline numbers of the stats endpoint
type DashboardOverview struct {
	TotalSubmissions int64   `json:"totalSubmissions"`
	LastSevenDays    int64   `json:"lastSevenDays"`
	ErrorRate        float64 `json:"errorRate"`
}

// DashboardBreakdowns groups counts along each categorical axis
type DashboardBreakdowns struct {
	ByType     []GroupCount `json:"byType"`
	ByStage    []GroupCount `json:"byStage"`
	ByStatus   []GroupCount `json:"byStatus"`
	ByPriority []GroupCount `json:"byPriority"`
}

// DashboardPerformance carries the processing-error metrics
type DashboardPerformance struct {
	ProcessingErrorCount int64   `json:"processingErrorCount"`
	ErrorRate            float64 `json:"errorRate"`
}

// DashboardStats is the combined read-only reporting view. Sub-queries run
// independently, so the sections may reflect slightly different snapshots
// when writes land mid-aggregation.
type DashboardStats struct {
	Overview    DashboardOverview    `json:"overview"`
	Breakdowns  DashboardBreakdowns  `json:"breakdowns"`
	Recent      []*SubmissionSummary `json:"recent"`
	Performance DashboardPerformance `json:"performance"`
	LastUpdated time.Time            `json:"lastUpdated"`
}
