package services

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"github.com/simonhull/audiometa"

	"muviz/types"
)

// Extractor reads tag and audio stream metadata from a single file.
// Extraction is side-effect-free and safe to run from many goroutines.
type Extractor struct{}

// NewExtractor creates a new extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses one audio file and builds its metadata record. Outcomes:
//
//   - (record, nil): tags and/or stream info were read
//   - (nil, err): the file looked like audio but could not be read or parsed
//   - (nil, nil): no parser recognized the file as audio at all
//
// Multi-valued tag fields are joined with ";". A zero duration or bitrate
// means the stream info was unavailable and the field is left absent.
func (e *Extractor) Extract(path string) (*types.FileRecord, error) {
	f, err := audiometa.Open(path)
	if err != nil {
		var unsupported *audiometa.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			return e.extractFallback(path)
		}
		return nil, err
	}
	defer f.Close()

	rec := &types.FileRecord{
		Path:  path,
		Title: f.Tags.Title,
		Album: f.Tags.Album,
		Genre: strings.Join(f.Tags.Genres, ";"),
		Date:  f.Tags.Date,
	}

	if len(f.Tags.Artists) > 0 {
		rec.Artist = strings.Join(f.Tags.Artists, ";")
	} else {
		rec.Artist = f.Tags.Artist
	}
	if rec.Date == "" && f.Tags.Year != 0 {
		rec.Date = strconv.Itoa(f.Tags.Year)
	}
	if seconds := f.Audio.Duration.Seconds(); seconds > 0 {
		rec.Duration = seconds
	}
	if f.Audio.Bitrate > 0 {
		rec.Bitrate = f.Audio.Bitrate
	}

	return rec, nil
}

// extractFallback reads tags with the dhowden/tag parser for containers the
// primary parser does not support (notably MP4/AAC container variants). Stream
// info is unavailable on this path, so duration and bitrate stay absent. If the
// fallback cannot read tags either, the file is not recognized as audio.
func (e *Extractor) extractFallback(path string) (*types.FileRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	md, err := tag.ReadFrom(file)
	if err != nil {
		return nil, nil
	}

	rec := &types.FileRecord{
		Path:   path,
		Title:  md.Title(),
		Artist: md.Artist(),
		Album:  md.Album(),
		Genre:  md.Genre(),
	}
	if year := md.Year(); year != 0 {
		rec.Date = strconv.Itoa(year)
	}

	return rec, nil
}
