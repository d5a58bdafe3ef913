package services

import (
	"sync"

	"muviz/types"
)

// StatsStore holds the most recent scan results for the preview API.
// Each completed scan replaces the previous results wholesale; nothing is
// updated in place.
type StatsStore struct {
	mu      sync.RWMutex
	records []*types.FileRecord
	stats   *types.Stats
}

// NewStatsStore creates an empty store
func NewStatsStore() *StatsStore {
	return &StatsStore{}
}

// Set replaces the stored results with those of a completed scan.
func (s *StatsStore) Set(records []*types.FileRecord, stats *types.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.stats = stats
}

// Stats returns the latest statistics document, or nil before the first
// scan completes.
func (s *StatsStore) Stats() *types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Records returns the latest per-file records.
func (s *StatsStore) Records() []*types.FileRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}
