package types

import (
	"encoding/json"
	"fmt"
)

// NumericStats summarizes a list of float samples. Stdev is the sample
// standard deviation, 0.0 when fewer than two samples exist.
type NumericStats struct {
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Stdev  float64 `json:"stdev"`
}

// RankedCount is one entry of a ranked count list. It serializes as a
// two-element ["name", count] array, which is the shape the D3 front end
// consumes for top/bottom lists.
type RankedCount struct {
	Name  string
	Count int
}

// MarshalJSON encodes the entry as ["name", count].
func (rc RankedCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{rc.Name, rc.Count})
}

// UnmarshalJSON decodes a ["name", count] pair.
func (rc *RankedCount) UnmarshalJSON(data []byte) error {
	var pair []any
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("ranked count: expected 2 elements, got %d", len(pair))
	}
	name, ok := pair[0].(string)
	if !ok {
		return fmt.Errorf("ranked count: first element is not a string")
	}
	count, ok := pair[1].(float64)
	if !ok {
		return fmt.Errorf("ranked count: second element is not a number")
	}
	rc.Name = name
	rc.Count = int(count)
	return nil
}

// PairCount is one genre co-occurrence entry: an unordered pair (stored
// lexicographically) and the number of records in which both appeared.
type PairCount struct {
	Pair  [2]string `json:"pair"`
	Count int       `json:"count"`
}

// Summary holds the top-level scan counts. files_scanned plus
// files_with_errors never exceeds total_files_found; the difference is the
// number of files no parser recognized.
type Summary struct {
	TotalFilesFound int `json:"total_files_found"`
	FilesScanned    int `json:"files_scanned"`
	FilesWithErrors int `json:"files_with_errors"`
	UniqueGenres    int `json:"unique_genres"`
	UniqueArtists   int `json:"unique_artists"`
	UniqueAlbums    int `json:"unique_albums"`
}

// Stats is the aggregated statistics document written to stats.json.
// It is recomputed from scratch on every run and never mutated afterwards.
type Stats struct {
	Summary               Summary                   `json:"summary"`
	TopGenres             []RankedCount             `json:"top_genres"`
	LeastCommonGenres     []RankedCount             `json:"least_common_genres"`
	GenreCounts           map[string]int            `json:"genre_counts"`
	ArtistCounts          map[string]int            `json:"artist_counts"`
	AlbumCounts           map[string]int            `json:"album_counts"`
	YearCounts            map[string]int            `json:"year_counts"`
	Durations             *NumericStats             `json:"durations"`
	PerGenreDurationStats map[string]*NumericStats  `json:"per_genre_duration_stats"`
	TopArtistsPerGenre    map[string][]RankedCount  `json:"top_artists_per_genre"`
	DurationBins          map[string]int            `json:"duration_bins"`
	PerGenreDurationBins  map[string]map[string]int `json:"per_genre_duration_bins"`
	GenreCooccurrence     []PairCount               `json:"genre_cooccurrence"`
	Errors                []*FileRecord             `json:"errors"`
}
