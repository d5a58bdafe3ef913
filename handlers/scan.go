package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"muviz/config"
	"muviz/services"
	"muviz/websocket"
)

// ScanHandler handles rescan management endpoints
type ScanHandler struct {
	jobQueue    services.JobQueue
	hub         websocket.Hub
	defaultRoot string
}

// NewScanHandler creates a new scan handler. defaultRoot is scanned when a
// request names no root of its own.
func NewScanHandler(jq services.JobQueue, hub websocket.Hub, defaultRoot string) *ScanHandler {
	return &ScanHandler{
		jobQueue:    jq,
		hub:         hub,
		defaultRoot: defaultRoot,
	}
}

// scanRequest is the optional body of a rescan request
type scanRequest struct {
	Root string `json:"root"`
}

// QueueScan queues a full library rescan
func (h *ScanHandler) QueueScan(c *gin.Context) {
	var req scanRequest
	// Body is optional; ignore bind errors and fall back to defaults.
	_ = c.ShouldBindJSON(&req)

	root := req.Root
	if root == "" {
		root = config.GetLibraryRoot(h.defaultRoot)
	}

	job := h.jobQueue.AddJob(root)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Scan queued successfully",
		"job":     job,
	})
}

// GetAllJobs returns all scan jobs
func (h *ScanHandler) GetAllJobs(c *gin.Context) {
	jobs := h.jobQueue.GetAllJobs()
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// GetJob returns a specific scan job by ID
func (h *ScanHandler) GetJob(c *gin.Context) {
	jobID := c.Param("jobId")
	job, exists := h.jobQueue.GetJob(jobID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "job not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job": job,
	})
}

// CancelJob cancels a queued scan job
func (h *ScanHandler) CancelJob(c *gin.Context) {
	jobID := c.Param("jobId")
	cancelled := h.jobQueue.CancelJob(jobID)
	if !cancelled {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "job cannot be cancelled (not found or already processing)",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "job cancelled successfully",
	})
}

// HandleWebSocketConnection handles WebSocket connections for specific scan progress
func (h *ScanHandler) HandleWebSocketConnection(c *gin.Context) {
	jobID := c.Param("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job ID is required"})
		return
	}

	// Check if job exists
	_, exists := h.jobQueue.GetJob(jobID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, jobID)
	h.hub.RegisterClient(client)

	// Start client pumps
	client.StartPumps()
}

// HandleWebSocketAllConnection handles WebSocket connections for all scan progress
func (h *ScanHandler) HandleWebSocketAllConnection(c *gin.Context) {
	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, "all")
	h.hub.RegisterClient(client)

	// Start client pumps
	client.StartPumps()
}
