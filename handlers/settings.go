package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"muviz/config"
)

// SettingsHandler handles settings-related endpoints
type SettingsHandler struct {
	defaultRoot string
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(defaultRoot string) *SettingsHandler {
	return &SettingsHandler{defaultRoot: defaultRoot}
}

// GetSettings returns the current user settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"libraryRoot": config.GetLibraryRoot(h.defaultRoot),
	})
}

// UpdateSettings updates the user settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var settings config.UserSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid settings payload",
		})
		return
	}

	if settings.LibraryRoot == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "libraryRoot is required",
		})
		return
	}

	// Validate that the path exists and is a directory
	info, err := os.Stat(settings.LibraryRoot)
	if err != nil || !info.IsDir() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "libraryRoot is not an existing directory",
		})
		return
	}

	if err := config.SaveLibraryRoot(settings.LibraryRoot); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to save settings",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "settings saved",
		"libraryRoot": settings.LibraryRoot,
	})
}
