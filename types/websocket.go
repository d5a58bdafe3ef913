package types

import "time"

// ProgressMessage represents a WebSocket scan progress update message
type ProgressMessage struct {
	JobID     string    `json:"jobId"`
	Type      string    `json:"type"`   // "progress", "status", "complete", "error"
	Status    string    `json:"status"` // current job status
	Progress  Progress  `json:"progress"`
	Message   string    `json:"message,omitempty"` // status or error messages
	Timestamp time.Time `json:"timestamp"`         // when the update occurred
}
