package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetWebRoot tests the web root default and override
func TestGetWebRoot(t *testing.T) {
	original := Env["MUVIZ_WEB_ROOT"]
	defer func() { Env["MUVIZ_WEB_ROOT"] = original }()

	Env["MUVIZ_WEB_ROOT"] = ""
	assert.Equal(t, "web", GetWebRoot())
	assert.Equal(t, filepath.Join("web", "data"), GetOutputDir())

	Env["MUVIZ_WEB_ROOT"] = "/srv/muviz"
	assert.Equal(t, "/srv/muviz", GetWebRoot())
	assert.Equal(t, filepath.Join("/srv/muviz", "data"), GetOutputDir())
}

// TestGetServerPort tests the port default and override
func TestGetServerPort(t *testing.T) {
	original := Env["MUVIZ_PORT"]
	defer func() { Env["MUVIZ_PORT"] = original }()

	Env["MUVIZ_PORT"] = ""
	assert.Equal(t, 8000, GetServerPort())

	Env["MUVIZ_PORT"] = "9100"
	assert.Equal(t, 9100, GetServerPort())

	Env["MUVIZ_PORT"] = "not-a-port"
	assert.Equal(t, 8000, GetServerPort())
}

// TestLibraryRootSettings tests saving and loading the library root
func TestLibraryRootSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.Equal(t, "/fallback", GetLibraryRoot("/fallback"))

	require.NoError(t, SaveLibraryRoot("/music/library"))
	assert.Equal(t, "/music/library", GetLibraryRoot("/fallback"))

	// An empty saved root still falls back.
	require.NoError(t, SaveLibraryRoot(""))
	assert.Equal(t, "/fallback", GetLibraryRoot("/fallback"))
}
