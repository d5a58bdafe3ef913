package services

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFindAudioFiles tests recursive discovery with the extension allow-list
func TestFindAudioFiles(t *testing.T) {
	root := writeLibrary(t,
		"a.mp3",
		"b.FLAC", // extension match is case-insensitive
		"notes.txt",
		"cover.jpg",
		"noextension",
		filepath.Join("sub", "c.ogg"),
		filepath.Join("sub", "deep", "d.Wav"),
		filepath.Join("sub", "deep", "e.m4a"),
		filepath.Join("sub", "playlist.m3u"),
	)

	found := FindAudioFiles(root, nil)

	rel := make([]string, len(found))
	for i, path := range found {
		r, err := filepath.Rel(root, path)
		require.NoError(t, err)
		rel[i] = r
	}
	sort.Strings(rel)

	assert.Equal(t, []string{
		"a.mp3",
		"b.FLAC",
		filepath.Join("sub", "c.ogg"),
		filepath.Join("sub", "deep", "d.Wav"),
		filepath.Join("sub", "deep", "e.m4a"),
	}, rel)
}

// TestFindAudioFilesCustomExtensions tests overriding the allow-list
func TestFindAudioFilesCustomExtensions(t *testing.T) {
	root := writeLibrary(t, "a.mp3", "b.opus", "c.opus")

	found := FindAudioFiles(root, map[string]bool{".opus": true})

	assert.Len(t, found, 2)
	for _, path := range found {
		assert.Equal(t, ".opus", filepath.Ext(path))
	}
}

// TestFindAudioFilesMissingRoot tests that an unreadable root yields an
// empty list rather than an error
func TestFindAudioFilesMissingRoot(t *testing.T) {
	found := FindAudioFiles(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	assert.Empty(t, found)
}
