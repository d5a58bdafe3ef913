package types

import "time"

// JobStatus represents the current status of a scan job
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// ScanJob represents one queued library rescan. Every rescan is a full
// from-scratch scan of Root; there is no incremental mode.
type ScanJob struct {
	ID          string     `json:"id"`
	Root        string     `json:"root"`
	Status      JobStatus  `json:"status"`
	Processed   int        `json:"processed"`
	Total       int        `json:"total"`
	Errors      int        `json:"errors"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
