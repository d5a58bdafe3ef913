package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"muviz/types"
	"muviz/websocket"
)

// JobQueue interface defines the methods for managing rescan jobs
type JobQueue interface {
	Start()
	AddJob(root string) *types.ScanJob
	GetJob(id string) (*types.ScanJob, bool)
	GetAllJobs() []*types.ScanJob
	CancelJob(id string) bool
}

// jobQueue manages rescan jobs triggered from the preview API. Each job
// runs a full scan, analysis, and output rewrite; results replace the
// store's contents when the job completes.
type jobQueue struct {
	jobs        map[string]*types.ScanJob
	queue       chan *types.ScanJob
	mu          sync.RWMutex
	maxWorkers  int
	scanWorkers int
	outputDir   string
	store       *StatsStore
	hub         websocket.Hub
}

// NewJobQueue creates a new rescan job queue. scanWorkers is the pool size
// each scan runs with; maxWorkers bounds how many scans run at once.
func NewJobQueue(maxWorkers, scanWorkers int, outputDir string, store *StatsStore, hub websocket.Hub) JobQueue {
	return &jobQueue{
		jobs:        make(map[string]*types.ScanJob),
		queue:       make(chan *types.ScanJob, 100), // Buffer for 100 jobs
		maxWorkers:  maxWorkers,
		scanWorkers: scanWorkers,
		outputDir:   outputDir,
		store:       store,
		hub:         hub,
	}
}

// AddJob queues a full rescan of root
func (jq *jobQueue) AddJob(root string) *types.ScanJob {
	jq.mu.Lock()
	defer jq.mu.Unlock()

	job := &types.ScanJob{
		ID:        uuid.New().String(),
		Root:      root,
		Status:    types.JobStatusQueued,
		CreatedAt: time.Now(),
	}

	jq.jobs[job.ID] = job
	jq.queue <- job

	return job
}

// GetJob retrieves a job by ID
func (jq *jobQueue) GetJob(id string) (*types.ScanJob, bool) {
	jq.mu.RLock()
	defer jq.mu.RUnlock()
	job, exists := jq.jobs[id]
	return job, exists
}

// GetAllJobs returns all jobs
func (jq *jobQueue) GetAllJobs() []*types.ScanJob {
	jq.mu.RLock()
	defer jq.mu.RUnlock()

	jobs := make([]*types.ScanJob, 0, len(jq.jobs))
	for _, job := range jq.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}

// CancelJob cancels a queued job. A scan that has started runs to
// completion; mid-scan cancellation is not supported.
func (jq *jobQueue) CancelJob(id string) bool {
	jq.mu.Lock()
	defer jq.mu.Unlock()

	job, exists := jq.jobs[id]
	if !exists {
		return false
	}

	if job.Status == types.JobStatusQueued {
		job.Status = types.JobStatusCancelled
		now := time.Now()
		job.CompletedAt = &now
		return true
	}

	return false
}

// updateJobProgress records a progress observation and broadcasts it
func (jq *jobQueue) updateJobProgress(id string, progress types.Progress) {
	jq.mu.Lock()
	defer jq.mu.Unlock()

	if job, exists := jq.jobs[id]; exists {
		job.Processed = progress.Processed
		job.Total = progress.Total
		job.Errors = progress.Errors

		if jq.hub != nil {
			jq.hub.BroadcastProgress(id, "progress", string(job.Status), "", progress)
		}
	}
}

// setJobStatus updates job status and broadcasts the transition
func (jq *jobQueue) setJobStatus(id string, status types.JobStatus, errorMsg string) {
	jq.mu.Lock()
	defer jq.mu.Unlock()

	if job, exists := jq.jobs[id]; exists {
		job.Status = status
		if errorMsg != "" {
			job.Error = errorMsg
		}

		now := time.Now()
		if status == types.JobStatusProcessing && job.StartedAt == nil {
			job.StartedAt = &now
		} else if status == types.JobStatusCompleted || status == types.JobStatusFailed || status == types.JobStatusCancelled {
			job.CompletedAt = &now
		}

		if jq.hub != nil {
			msgType := "status"
			message := string(status)

			if status == types.JobStatusCompleted {
				msgType = "complete"
				message = "scan completed"
			} else if status == types.JobStatusFailed {
				msgType = "error"
				message = errorMsg
			} else if status == types.JobStatusProcessing {
				message = "scan started"
			}

			progress := types.Progress{
				Processed: job.Processed,
				Total:     job.Total,
				Errors:    job.Errors,
			}
			jq.hub.BroadcastProgress(id, msgType, string(status), message, progress)
		}
	}
}

// Start begins processing jobs
func (jq *jobQueue) Start() {
	for i := 0; i < jq.maxWorkers; i++ {
		go jq.worker()
	}
}

// worker processes jobs from the queue
func (jq *jobQueue) worker() {
	for job := range jq.queue {
		if job.Status == types.JobStatusCancelled {
			continue
		}

		jq.setJobStatus(job.ID, types.JobStatusProcessing, "")

		if err := jq.runScan(job); err != nil {
			jq.setJobStatus(job.ID, types.JobStatusFailed, err.Error())
			log.Printf("Scan %s failed: %v", job.ID, err)
		} else {
			jq.setJobStatus(job.ID, types.JobStatusCompleted, "")
			log.Printf("Scan %s completed successfully", job.ID)
		}
	}
}

// runScan performs the full scan, analysis, and output rewrite for a job
func (jq *jobQueue) runScan(job *types.ScanJob) error {
	scanner := NewScanner(jq.scanWorkers)
	scanner.Quiet = true
	scanner.OnProgress = func(p types.Progress) {
		jq.updateJobProgress(job.ID, p)
	}

	records := scanner.Scan(job.Root)
	stats := Analyze(records)
	jq.store.Set(records, stats)

	return WriteOutputs(jq.outputDir, records, stats)
}
