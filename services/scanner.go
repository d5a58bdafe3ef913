package services

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"muviz/types"
)

// ProgressFunc observes scan progress. It is called on the collection
// goroutine after every completed file.
type ProgressFunc func(types.Progress)

// Scanner dispatches metadata extraction across a fixed-size worker pool
// and collects results in completion order.
type Scanner struct {
	Workers    int
	Extensions map[string]bool // nil means types.AudioExtensions
	Quiet      bool            // suppress the console progress bar
	OnProgress ProgressFunc

	// extract is swappable so tests can inject failing or panicking tasks.
	extract func(path string) (*types.FileRecord, error)
}

// NewScanner creates a scanner with the given pool size. A non-positive
// value falls back to DefaultWorkers.
func NewScanner(workers int) *Scanner {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	extractor := NewExtractor()
	return &Scanner{
		Workers: workers,
		extract: extractor.Extract,
	}
}

// DefaultWorkers returns max(4, 2x the logical CPU count).
func DefaultWorkers() int {
	if n := 2 * runtime.NumCPU(); n > 4 {
		return n
	}
	return 4
}

// Scan discovers every audio file under rootPath and extracts metadata from
// each across the worker pool. The returned list has one entry per
// discovered file in completion order: a metadata record, an error-shaped
// record, or nil when no parser recognized the file. A single file's
// failure never aborts the scan, and there are no retries.
func (s *Scanner) Scan(rootPath string) []*types.FileRecord {
	files := FindAudioFiles(rootPath, s.Extensions)
	total := len(files)
	log.Printf("Found %d audio files under %s", total, rootPath)

	results := make([]*types.FileRecord, 0, total)
	if total == 0 {
		return results
	}

	var bar *progressbar.ProgressBar
	if !s.Quiet {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Scanning"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("file"),
		)
	}

	jobs := make(chan string)
	out := make(chan *types.FileRecord)

	var wg sync.WaitGroup
	for i := 0; i < s.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				out <- s.runTask(path)
			}
		}()
	}
	go func() {
		for _, path := range files {
			jobs <- path
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(out)
	}()

	start := time.Now()
	processed := 0
	errorCount := 0

	for rec := range out {
		results = append(results, rec)
		processed++
		if rec != nil && rec.IsError() {
			errorCount++
		}

		obs := types.Progress{
			Processed: processed,
			Total:     total,
			Errors:    errorCount,
			Elapsed:   time.Since(start).Seconds(),
		}
		if obs.Elapsed > 0 {
			obs.Rate = float64(processed) / obs.Elapsed
		}
		if obs.Rate > 0 {
			eta := float64(total-processed) / obs.Rate
			obs.ETASeconds = &eta
		}

		if bar != nil {
			bar.Add(1)
		}
		if s.OnProgress != nil {
			s.OnProgress(obs)
		}
	}

	if bar != nil {
		bar.Finish()
	}
	return results
}

// runTask executes one extraction task. A parser error or an unexpected
// panic inside the task both become error-shaped records for that path, so
// one bad file can never take down the scan.
func (s *Scanner) runTask(path string) (rec *types.FileRecord) {
	defer func() {
		if r := recover(); r != nil {
			rec = types.NewErrorRecord(path, fmt.Sprintf("unexpected task failure: %v", r))
		}
	}()

	result, err := s.extract(path)
	if err != nil {
		return types.NewErrorRecord(path, err.Error())
	}
	return result
}
