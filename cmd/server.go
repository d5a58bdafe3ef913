package cmd

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"muviz/handlers"
	"muviz/middleware"
	"muviz/services"
	"muviz/websocket"
)

// StartWebServer starts the preview server: the visualisation assets and
// JSON output are served statically, and a small API exposes the latest
// statistics plus rescan control. Blocks until the server exits.
func StartWebServer(port int, webRoot, outputDir, defaultRoot string, store *services.StatsStore, scanWorkers int) {
	// Set production mode if not specified
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := NewRouter(webRoot, outputDir, defaultRoot, store, scanWorkers)

	// Start server
	portStr := strconv.Itoa(port)
	if serverPort := os.Getenv("SERVER_PORT"); serverPort != "" {
		portStr = serverPort
	}

	log.Printf("muviz preview server starting on port %s", portStr)
	if err := r.Run("localhost:" + portStr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// NewRouter builds the gin engine with all services wired up.
func NewRouter(webRoot, outputDir, defaultRoot string, store *services.StatsStore, scanWorkers int) *gin.Engine {
	// Initialize services
	hub := websocket.NewHub()
	go hub.Run()

	jobQueue := services.NewJobQueue(1, scanWorkers, outputDir, store, hub)
	jobQueue.Start()

	// Initialize handlers
	scanHandler := handlers.NewScanHandler(jobQueue, hub, defaultRoot)
	statsHandler := handlers.NewStatsHandler(store)
	healthHandler := handlers.NewHealthHandler()
	settingsHandler := handlers.NewSettingsHandler(defaultRoot)

	// Setup router
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply middleware
	r.Use(middleware.CORS())
	r.Use(middleware.Logging())

	// Setup routes
	setupRoutes(r, scanHandler, statsHandler, healthHandler, settingsHandler, webRoot)

	return r
}

// setupRoutes configures all the HTTP routes
func setupRoutes(r *gin.Engine, scanHandler *handlers.ScanHandler, statsHandler *handlers.StatsHandler, healthHandler *handlers.HealthHandler, settingsHandler *handlers.SettingsHandler, webRoot string) {
	// Health check endpoint
	r.GET("/health", healthHandler.HealthCheck)

	// API routes group
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/status", healthHandler.APIStatus)

		// Latest scan results
		apiGroup.GET("/stats", statsHandler.GetStats)
		apiGroup.GET("/files", statsHandler.GetFiles)

		// Rescan management endpoints
		scanGroup := apiGroup.Group("/scan")
		{
			scanGroup.POST("", scanHandler.QueueScan)
			scanGroup.GET("", scanHandler.GetAllJobs)
			scanGroup.GET("/:jobId", scanHandler.GetJob)
			scanGroup.DELETE("/:jobId", scanHandler.CancelJob)
		}

		// WebSocket endpoints for real-time progress
		wsGroup := apiGroup.Group("/ws")
		{
			// WebSocket endpoint for specific scan progress
			wsGroup.GET("/scan/:jobId", scanHandler.HandleWebSocketConnection)

			// WebSocket endpoint for all scan progress
			wsGroup.GET("/scan", scanHandler.HandleWebSocketAllConnection)
		}

		// Settings endpoints
		apiGroup.GET("/settings", settingsHandler.GetSettings)
		apiGroup.POST("/settings", settingsHandler.UpdateSettings)
	}

	// Everything else is the static visualisation front end (index.html,
	// D3 assets, and the data/ directory with files.json and stats.json).
	r.NoRoute(gin.WrapH(http.FileServer(http.Dir(webRoot))))
}
