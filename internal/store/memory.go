package store

import (
	"fmt"
	"sync"

	"github.com/i474232898/river-conditions/internal/river"
)

var (
	// ErrNotFound is returned when no payload is cached for a station.
	ErrNotFound = fmt.Errorf("%w: no cached payload for station", river.ErrCacheMiss)
)

// MemoryStore is a concurrency-safe in-memory implementation of river.PayloadStore.
type MemoryStore struct {
	mu sync.RWMutex

	// key: station id
	data map[string]river.CacheEntry

	// number of successful Put calls, for tests and diagnostics
	writes int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]river.CacheEntry),
	}
}

// Put replaces the entry for a station. The payload is copied so callers may
// reuse their buffer.
func (s *MemoryStore) Put(entry river.CacheEntry) error {
	if entry.StationID == "" {
		return fmt.Errorf("store: empty station id")
	}
	entry.Payload = append([]byte(nil), entry.Payload...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[entry.StationID] = entry
	s.writes++
	return nil
}

// Get returns the entry for a station.
func (s *MemoryStore) Get(stationID string) (river.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[stationID]
	if !ok {
		return river.CacheEntry{}, ErrNotFound
	}
	entry.Payload = append([]byte(nil), entry.Payload...)
	return entry, nil
}

// Writes reports how many entries have been stored.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
