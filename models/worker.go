package models

import "time"

// WorkerConfig controls the follow-up reminder worker
type WorkerConfig struct {
	CronSchedule string        `json:"cron_schedule"`
	LockTimeout  time.Duration `json:"lock_timeout"`
	Environment  string        `json:"environment"`
	OwnerID      string        `json:"owner_id"`
	DryRun       bool          `json:"dry_run"`
	RunOnce      bool          `json:"run_once"`
	StatusFile   string        `json:"status_file"`
}

// WorkerRunResult records the outcome of one worker pass for the status file
type WorkerRunResult struct {
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	DueCount     int64     `json:"due_count"`
	TaggedCount  int64     `json:"tagged_count"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Owner        string    `json:"owner"`
}
