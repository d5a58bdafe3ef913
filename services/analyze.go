package services

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"muviz/types"
)

// genreSeparators are applied successively, not simultaneously: the string
// is split on ";" first, every piece then on "/", and so on.
var genreSeparators = []string{";", "/", ",", "|"}

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// Duration bin bounds in seconds. Each bin is [lower, upper); anything at
// or past the final bound still lands in the last label.
var (
	durationBinBounds = []float64{0, 120, 240, 360, 720, 36000}
	durationBinLabels = []string{"<2m", "2-4m", "4-6m", "6-12m", "12m+"}
)

// errorSampleCap limits how many error records the statistics document
// carries; the summary counter still reflects the true total.
const errorSampleCap = 50

// NormalizeGenres splits a raw genre string on the common separators,
// trims whitespace, discards empty parts, and title-cases each survivor.
// An absent or empty genre yields ["Unknown"]; the result is never empty.
//
// The result is NOT deduplicated: "Rock;rock" normalizes to
// ["Rock", "Rock"], and the genre counter counts both entries.
func NormalizeGenres(genre string) []string {
	if genre == "" {
		return []string{"Unknown"}
	}

	parts := []string{genre}
	for _, sep := range genreSeparators {
		var next []string
		for _, part := range parts {
			for _, piece := range strings.Split(part, sep) {
				if piece = strings.TrimSpace(piece); piece != "" {
					next = append(next, piece)
				}
			}
		}
		parts = next
	}
	if len(parts) == 0 {
		return []string{"Unknown"}
	}

	caser := cases.Title(language.Und)
	normalized := make([]string, len(parts))
	for i, part := range parts {
		normalized[i] = caser.String(part)
	}
	return normalized
}

// DurationBinLabel maps a duration in seconds to its labeled range.
func DurationBinLabel(seconds float64) string {
	for i := 0; i < len(durationBinBounds)-1; i++ {
		if seconds >= durationBinBounds[i] && seconds < durationBinBounds[i+1] {
			return durationBinLabels[i]
		}
	}
	return durationBinLabels[len(durationBinLabels)-1]
}

// NumericSummary computes count, sum, mean, median, min, max, and the
// sample standard deviation of samples. An empty slice yields nil; a
// single sample yields a stdev of 0.0.
func NumericSummary(samples []float64) *types.NumericStats {
	n := len(samples)
	if n == 0 {
		return nil
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	stdev := 0.0
	if n > 1 {
		var sumSquares float64
		for _, v := range sorted {
			diff := v - mean
			sumSquares += diff * diff
		}
		stdev = math.Sqrt(sumSquares / float64(n-1))
	}

	return &types.NumericStats{
		Count:  n,
		Sum:    sum,
		Mean:   mean,
		Median: median,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Stdev:  stdev,
	}
}

// counter accumulates occurrence counts by name.
type counter map[string]int

// mostCommon returns entries in descending count order. Ties are broken by
// name so repeated runs over the same input produce identical documents.
// A negative n returns all entries.
func (c counter) mostCommon(n int) []types.RankedCount {
	ranked := make([]types.RankedCount, 0, len(c))
	for name, count := range c {
		ranked = append(ranked, types.RankedCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// leastCommon returns up to n entries in ascending count order: the tail
// of the descending order, reversed. A universe smaller than n comes back
// whole.
func (c counter) leastCommon(n int) []types.RankedCount {
	ranked := c.mostCommon(-1)
	if len(ranked) > n {
		ranked = ranked[len(ranked)-n:]
	}
	for i, j := 0, len(ranked)-1; i < j; i, j = i+1, j-1 {
		ranked[i], ranked[j] = ranked[j], ranked[i]
	}
	return ranked
}

// topCounts returns the top n entries as a plain name-to-count map.
func (c counter) topCounts(n int) map[string]int {
	out := make(map[string]int)
	for _, rc := range c.mostCommon(n) {
		out[rc.Name] = rc.Count
	}
	return out
}

// dedupSorted returns the distinct values in lexicographic order.
func dedupSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	set := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			set = append(set, v)
		}
	}
	sort.Strings(set)
	return set
}

// Analyze folds the complete per-file result list into a statistics
// document in a single pass. nil entries (unrecognized files) count toward
// total_files_found and nothing else; error-shaped records are collected
// and excluded from all other aggregation.
//
// Analyze is a pure function of its input: every accumulator is local, and
// all ranked output uses a stable order, so re-running over the same list
// yields an identical document.
func Analyze(records []*types.FileRecord) *types.Stats {
	genreCounter := counter{}
	artistCounter := counter{}
	albumCounter := counter{}
	yearCounter := counter{}

	var durations []float64
	perGenreDurations := map[string][]float64{}
	perGenreArtist := map[string]counter{}
	durationBinCounts := counter{}
	perGenreDurationBins := map[string]counter{}

	cooccurrence := map[[2]string]int{}
	var cooccurrenceOrder [][2]string

	errorRecords := make([]*types.FileRecord, 0)
	scanned := 0

	for _, rec := range records {
		if rec == nil {
			continue
		}
		if rec.IsError() {
			errorRecords = append(errorRecords, rec)
			continue
		}
		scanned++

		// Genres may be multiple; duplicates after normalization count
		// individually here (only co-occurrence dedups).
		genres := NormalizeGenres(rec.Genre)
		for _, g := range genres {
			genreCounter[g]++
		}

		if rec.Artist != "" {
			artistCounter[rec.Artist]++
			for _, g := range genres {
				if perGenreArtist[g] == nil {
					perGenreArtist[g] = counter{}
				}
				perGenreArtist[g][rec.Artist]++
			}
		}
		if rec.Album != "" {
			albumCounter[rec.Album]++
		}

		// Years: first 4-digit run anywhere in the date string.
		if rec.Date != "" {
			if year := yearPattern.FindString(rec.Date); year != "" {
				yearCounter[year]++
			}
		}

		if rec.Duration > 0 {
			durations = append(durations, rec.Duration)
			label := DurationBinLabel(rec.Duration)
			durationBinCounts[label]++
			for _, g := range genres {
				perGenreDurations[g] = append(perGenreDurations[g], rec.Duration)
				if perGenreDurationBins[g] == nil {
					perGenreDurationBins[g] = counter{}
				}
				perGenreDurationBins[g][label]++
			}
		}

		// Genre co-occurrence over the deduplicated, sorted genre set:
		// each unordered pair counts once per record.
		if len(genres) > 1 {
			set := dedupSorted(genres)
			for i := 0; i < len(set); i++ {
				for j := i + 1; j < len(set); j++ {
					pair := [2]string{set[i], set[j]}
					if _, seen := cooccurrence[pair]; !seen {
						cooccurrenceOrder = append(cooccurrenceOrder, pair)
					}
					cooccurrence[pair]++
				}
			}
		}
	}

	perGenreStats := make(map[string]*types.NumericStats, len(perGenreDurations))
	for g, samples := range perGenreDurations {
		perGenreStats[g] = NumericSummary(samples)
	}

	topArtistsPerGenre := make(map[string][]types.RankedCount, len(perGenreArtist))
	for g, artists := range perGenreArtist {
		topArtistsPerGenre[g] = artists.mostCommon(20)
	}

	perGenreBins := make(map[string]map[string]int, len(perGenreDurationBins))
	for g, bins := range perGenreDurationBins {
		perGenreBins[g] = map[string]int(bins)
	}

	cooccurrenceList := make([]types.PairCount, 0, len(cooccurrenceOrder))
	for _, pair := range cooccurrenceOrder {
		cooccurrenceList = append(cooccurrenceList, types.PairCount{Pair: pair, Count: cooccurrence[pair]})
	}

	errorSample := errorRecords
	if len(errorSample) > errorSampleCap {
		errorSample = errorSample[:errorSampleCap]
	}

	return &types.Stats{
		Summary: types.Summary{
			TotalFilesFound: len(records),
			FilesScanned:    scanned,
			FilesWithErrors: len(errorRecords),
			UniqueGenres:    len(genreCounter),
			UniqueArtists:   len(artistCounter),
			UniqueAlbums:    len(albumCounter),
		},
		TopGenres:             genreCounter.mostCommon(30),
		LeastCommonGenres:     genreCounter.leastCommon(30),
		GenreCounts:           map[string]int(genreCounter),
		ArtistCounts:          artistCounter.topCounts(200),
		AlbumCounts:           albumCounter.topCounts(200),
		YearCounts:            map[string]int(yearCounter),
		Durations:             NumericSummary(durations),
		PerGenreDurationStats: perGenreStats,
		TopArtistsPerGenre:    topArtistsPerGenre,
		DurationBins:          map[string]int(durationBinCounts),
		PerGenreDurationBins:  perGenreBins,
		GenreCooccurrence:     cooccurrenceList,
		Errors:                errorSample,
	}
}
