package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muviz/services"
	"muviz/types"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// testServer spins up the full router over httptest. The library root
// holds unparseable audio files, so scans complete quickly with every
// file unrecognized.
func testServer(t *testing.T, store *services.StatsStore) (*httptest.Server, string, string) {
	t.Helper()

	webRoot := t.TempDir()
	libraryRoot := t.TempDir()
	for _, name := range []string{"a.wma", "b.wma"} {
		content := strings.Repeat("not audio. ", 10)
		require.NoError(t, os.WriteFile(filepath.Join(libraryRoot, name), []byte(content), 0644))
	}

	router := NewRouter(webRoot, filepath.Join(webRoot, "data"), libraryRoot, store, 2)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, webRoot, libraryRoot
}

func getJSON(t *testing.T, url string, target any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if target != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	}
	return resp.StatusCode
}

// TestHealthEndpoints tests /health and /api/status
func TestHealthEndpoints(t *testing.T) {
	server, _, _ := testServer(t, services.NewStatsStore())

	var health map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/health", &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "muviz", health["service"])

	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/status", nil))
}

// TestStatsEndpointLifecycle tests 404-before-scan then 200-after
func TestStatsEndpointLifecycle(t *testing.T) {
	store := services.NewStatsStore()
	server, _, _ := testServer(t, store)

	assert.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/api/stats", nil))
	assert.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/api/files", nil))

	records := []*types.FileRecord{
		{Path: "/m/a.mp3", Title: "A", Genre: "Rock", Duration: 100},
	}
	store.Set(records, services.Analyze(records))

	var statsDoc struct {
		Stats *types.Stats `json:"stats"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/stats", &statsDoc))
	require.NotNil(t, statsDoc.Stats)
	assert.Equal(t, 1, statsDoc.Stats.Summary.FilesScanned)

	var filesDoc struct {
		Files []*types.FileRecord `json:"files"`
		Count int                 `json:"count"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/files", &filesDoc))
	assert.Equal(t, 1, filesDoc.Count)
}

// TestStaticFileServing tests that unmatched routes fall through to the
// web root file server
func TestStaticFileServing(t *testing.T) {
	server, webRoot, _ := testServer(t, services.NewStatsStore())

	require.NoError(t, os.WriteFile(
		filepath.Join(webRoot, "index.html"),
		[]byte("<html><body>muviz preview</body></html>"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(webRoot, "data"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(webRoot, "data", "stats.json"),
		[]byte(`{"stats": {}}`), 0644))

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "muviz preview")

	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/data/stats.json", nil))
	assert.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/data/missing.json", nil))
}

// waitForJob polls a job until it reaches a terminal status.
func waitForJob(t *testing.T, serverURL, jobID string) *types.ScanJob {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		var doc struct {
			Job *types.ScanJob `json:"job"`
		}
		status := getJSON(t, fmt.Sprintf("%s/api/scan/%s", serverURL, jobID), &doc)
		require.Equal(t, http.StatusOK, status)
		switch doc.Job.Status {
		case types.JobStatusCompleted, types.JobStatusFailed, types.JobStatusCancelled:
			return doc.Job
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal status", jobID)
	return nil
}

// TestScanJobLifecycle tests queueing a rescan through to completion
func TestScanJobLifecycle(t *testing.T) {
	store := services.NewStatsStore()
	server, webRoot, libraryRoot := testServer(t, store)

	body, err := json.Marshal(map[string]string{"root": libraryRoot})
	require.NoError(t, err)
	resp, err := http.Post(server.URL+"/api/scan", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var queued struct {
		Job *types.ScanJob `json:"job"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&queued))
	require.NotNil(t, queued.Job)
	assert.NotEmpty(t, queued.Job.ID)
	assert.Equal(t, libraryRoot, queued.Job.Root)

	job := waitForJob(t, server.URL, queued.Job.ID)
	require.Equal(t, types.JobStatusCompleted, job.Status)
	assert.Equal(t, 2, job.Total)
	assert.Equal(t, 2, job.Processed)

	// A completed scan populates the store and writes the JSON outputs.
	stats := store.Stats()
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.Summary.TotalFilesFound)
	assert.Equal(t, 0, stats.Summary.FilesScanned)

	assert.FileExists(t, filepath.Join(webRoot, "data", "files.json"))
	assert.FileExists(t, filepath.Join(webRoot, "data", "stats.json"))

	var listing struct {
		Jobs  []*types.ScanJob `json:"jobs"`
		Total int              `json:"total"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/scan", &listing))
	assert.GreaterOrEqual(t, listing.Total, 1)

	// A finished job can no longer be cancelled.
	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/scan/"+job.ID, nil)
	require.NoError(t, err)
	cancelResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer cancelResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, cancelResp.StatusCode)
}

// TestGetUnknownJob tests the 404 path
func TestGetUnknownJob(t *testing.T) {
	server, _, _ := testServer(t, services.NewStatsStore())

	assert.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/api/scan/no-such-job", nil))
}

// TestScanProgressWebSocket tests that a subscribed client receives scan
// updates
func TestScanProgressWebSocket(t *testing.T) {
	server, _, libraryRoot := testServer(t, services.NewStatsStore())

	wsURL := strings.Replace(server.URL, "http", "ws", 1) + "/api/ws/scan"
	conn, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the hub a moment to register the client before work starts.
	time.Sleep(100 * time.Millisecond)

	body, err := json.Marshal(map[string]string{"root": libraryRoot})
	require.NoError(t, err)
	resp, err := http.Post(server.URL+"/api/scan", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	var msg types.ProgressMessage
	require.NoError(t, conn.ReadJSON(&msg))

	assert.NotEmpty(t, msg.JobID)
	assert.NotEmpty(t, msg.Type)
	assert.False(t, msg.Timestamp.IsZero())
}

// TestSettingsEndpoints tests reading and updating the library root
func TestSettingsEndpoints(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	server, _, libraryRoot := testServer(t, services.NewStatsStore())

	var settings map[string]string
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/settings", &settings))
	assert.Equal(t, libraryRoot, settings["libraryRoot"])

	t.Run("rejects missing directory", func(t *testing.T) {
		body := []byte(`{"libraryRoot": "/no/such/directory"}`)
		resp, err := http.Post(server.URL+"/api/settings", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("persists a valid directory", func(t *testing.T) {
		newRoot := t.TempDir()
		body, err := json.Marshal(map[string]string{"libraryRoot": newRoot})
		require.NoError(t, err)
		resp, err := http.Post(server.URL+"/api/settings", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated map[string]string
		require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/api/settings", &updated))
		assert.Equal(t, newRoot, updated["libraryRoot"])
	})
}
