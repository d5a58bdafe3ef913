package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

var Env = map[string]string{
	"MUVIZ_WEB_ROOT": os.Getenv("MUVIZ_WEB_ROOT"),
	"MUVIZ_PORT":     os.Getenv("MUVIZ_PORT"),
}

// GetWebRoot returns the directory holding the visualisation assets. The
// JSON output goes into its data/ subdirectory.
func GetWebRoot() string {
	if root := Env["MUVIZ_WEB_ROOT"]; root != "" {
		return root
	}
	return "web"
}

// GetOutputDir returns where files.json and stats.json are written.
func GetOutputDir() string {
	return filepath.Join(GetWebRoot(), "data")
}

// GetServerPort returns the preview server port.
func GetServerPort() int {
	if p := Env["MUVIZ_PORT"]; p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			return port
		}
	}
	return 8000
}

// UserSettings represents the user's personal settings
type UserSettings struct {
	LibraryRoot string `json:"libraryRoot"`
}

// GetSettingsFilePath returns the path to the settings file
func GetSettingsFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".muviz-settings.json")
	}
	return filepath.Join(homeDir, ".muviz-settings.json")
}

// GetLibraryRoot loads the user's saved library root, falling back when no
// setting exists or the file is unreadable.
func GetLibraryRoot(fallback string) string {
	data, err := os.ReadFile(GetSettingsFilePath())
	if err != nil {
		return fallback
	}

	var settings UserSettings
	if err := json.Unmarshal(data, &settings); err != nil || settings.LibraryRoot == "" {
		return fallback
	}

	return settings.LibraryRoot
}

// SaveLibraryRoot persists the library root to the settings file
func SaveLibraryRoot(root string) error {
	data, err := json.MarshalIndent(&UserSettings{LibraryRoot: root}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(GetSettingsFilePath(), data, 0644)
}
