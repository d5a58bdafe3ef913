package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"muviz/services"
)

// StatsHandler serves the latest scan results from memory. The same
// documents are also on disk under the web data directory; this endpoint
// lets the front end poll without re-reading files.
type StatsHandler struct {
	store *services.StatsStore
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(store *services.StatsStore) *StatsHandler {
	return &StatsHandler{store: store}
}

// GetStats returns the most recent statistics document
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats := h.store.Stats()
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no scan has completed yet",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}

// GetFiles returns the most recent per-file records
func (h *StatsHandler) GetFiles(c *gin.Context) {
	records := h.store.Records()
	if records == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no scan has completed yet",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files": records,
		"count": len(records),
	})
}
