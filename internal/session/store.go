package session

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// StoreStats holds aggregate figures for one store, used by the
// sessions stats resource.
type StoreStats struct {
	Sessions int   `json:"sessions"`
	Bytes    int64 `json:"bytes"`
}

// Store defines the persistence interface for session records.
// Abstracted for testability and to permit durable backends (DIP).
//
// Implementations must hand out independent deep copies: a caller
// mutating a returned record must never affect stored state, and a
// record passed to Set must not stay aliased to caller memory. A miss
// is not an error — Get returns (nil, nil).
type Store[T any] interface {
	Get(key string) (*Record[T], error)
	Set(key string, rec *Record[T]) error
	Delete(key string) error
	// Cleanup removes every record whose LastAccessed predates
	// now - maxAge and returns the number evicted. Each eviction
	// is logged.
	Cleanup(maxAge time.Duration) (int, error)
	Stats() (StoreStats, error)
}

// MemoryStore implements Store with an in-process map. This is the
// default backend: nothing survives a restart.
type MemoryStore[T any] struct {
	mu      sync.Mutex
	records map[string]*Record[T]
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{records: make(map[string]*Record[T])}
}

// Get returns a deep copy of the record under key, or nil if absent.
func (s *MemoryStore[T]) Get(key string) (*Record[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return cloneRecord(rec)
}

// Set stores a deep copy of rec under key, replacing any previous record.
func (s *MemoryStore[T]) Set(key string, rec *Record[T]) error {
	clone, err := cloneRecord(rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = clone
	return nil
}

// Delete removes the record under key. Deleting an absent key is a no-op.
func (s *MemoryStore[T]) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// Cleanup evicts every record idle longer than maxAge.
func (s *MemoryStore[T]) Cleanup(maxAge time.Duration) (int, error) {
	cutoff := timeNow().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, rec := range s.records {
		if rec.Meta.LastAccessed.Before(cutoff) {
			log.Printf("session: evicted %q (idle since %s)", key, rec.Meta.LastAccessed.Format(time.RFC3339))
			delete(s.records, key)
			evicted++
		}
	}
	return evicted, nil
}

// Stats returns the record count and summed payload sizes.
func (s *MemoryStore[T]) Stats() (StoreStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := StoreStats{Sessions: len(s.records)}
	for _, rec := range s.records {
		stats.Bytes += int64(rec.Meta.Size)
	}
	return stats, nil
}

// cloneRecord deep-copies a record through its canonical JSON form.
// Payloads are plain data structs, so a JSON round trip is a faithful
// copy and keeps the isolation guarantee backend-independent.
func cloneRecord[T any](rec *Record[T]) (*Record[T], error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("cloning session record: %w", err)
	}
	var out Record[T]
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("cloning session record: %w", err)
	}
	return &out, nil
}
