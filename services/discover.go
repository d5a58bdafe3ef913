package services

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"muviz/types"
)

// FindAudioFiles recursively walks rootPath and returns every file whose
// extension (case-insensitive) is in exts. A nil exts uses the default
// audio extension set. Entries that cannot be accessed are logged and
// skipped; the walk itself never fails.
func FindAudioFiles(rootPath string, exts map[string]bool) []string {
	if exts == nil {
		exts = types.AudioExtensions
	}

	var files []string
	filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("Error accessing path %s: %v", path, err)
			return nil // Continue walking, don't fail entire scan
		}
		if info.IsDir() {
			return nil
		}
		if exts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})

	return files
}
