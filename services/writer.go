package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"muviz/types"
)

// WriteJSON writes v to path as pretty-printed UTF-8 JSON (2-space indent,
// no HTML escaping), creating parent directories as needed.
func WriteJSON(v any, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return f.Close()
}

// WriteOutputs writes files.json (the raw per-file records, unrecognized
// files serialized as null) and stats.json (the statistics document) into
// outputDir.
func WriteOutputs(outputDir string, records []*types.FileRecord, stats *types.Stats) error {
	if err := WriteJSON(map[string]any{"files": records}, filepath.Join(outputDir, "files.json")); err != nil {
		return err
	}
	return WriteJSON(map[string]any{"stats": stats}, filepath.Join(outputDir, "stats.json"))
}
