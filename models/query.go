package models

// SubmissionListParams holds the recognized query parameters of the list
// endpoint. Every filter is optional; present filters are AND-combined.
type SubmissionListParams struct {
	Type       string `form:"type"`
	Stage      string `form:"stage"`
	Source     string `form:"source"`
	Status     string `form:"status"`
	Priority   string `form:"priority"`
	AssignedTo string `form:"assignedTo"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
	Sort       string `form:"sort"`
}

// AppliedFilters reports back which filters were actually applied so staff
// tooling can render the active filter state.
type AppliedFilters struct {
	Type       string `json:"type,omitempty"`
	Stage      string `json:"stage,omitempty"`
	Source     string `json:"source,omitempty"`
	Status     string `json:"status,omitempty"`
	Priority   string `json:"priority,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
	Search     string `json:"search,omitempty"`
}

// Pagination is the page descriptor attached to every list response
type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// SubmissionList is the data payload of the list endpoint
type SubmissionList struct {
	Submissions []*Submission  `json:"submissions"`
	Pagination  Pagination     `json:"pagination"`
	Filters     AppliedFilters `json:"filters"`
}

// BulkUpdateResult reports UpdateMany counts. Matched can exceed modified
// when some documents already held the requested values.
type BulkUpdateResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}
