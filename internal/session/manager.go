package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

// Default lifecycle policy. Sessions idle for a day are evicted by a
// sweep that runs every hour; a single session payload may not exceed
// 5 MiB of canonical JSON.
const (
	DefaultMaxSessionAge   = 24 * time.Hour
	DefaultMaxSessionBytes = 5 << 20
	DefaultCleanupInterval = time.Hour
)

// Policy bundles the lifecycle configuration shared by all managers.
type Policy struct {
	MaxSessionAge   time.Duration
	MaxSessionBytes int
	// CleanupInterval is the cadence of the background eviction
	// sweep. Zero disables the sweep entirely (useful in tests).
	CleanupInterval time.Duration
}

// DefaultPolicy returns the stock lifecycle policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxSessionAge:   DefaultMaxSessionAge,
		MaxSessionBytes: DefaultMaxSessionBytes,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// PolicyFromEnv returns the default policy with any overrides from
// the environment applied:
//
//	DRAFTSMITH_SESSION_MAX_AGE    Go duration, e.g. "48h"
//	DRAFTSMITH_SESSION_MAX_BYTES  integer byte count
//	DRAFTSMITH_CLEANUP_INTERVAL   Go duration, e.g. "30m"
//
// Unparseable values are ignored in favor of the defaults.
func PolicyFromEnv() Policy {
	p := DefaultPolicy()
	if v := os.Getenv("DRAFTSMITH_SESSION_MAX_AGE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			p.MaxSessionAge = d
		}
	}
	if v := os.Getenv("DRAFTSMITH_SESSION_MAX_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.MaxSessionBytes = n
		}
	}
	if v := os.Getenv("DRAFTSMITH_CLEANUP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			p.CleanupInterval = d
		}
	}
	return p
}

// Manager wraps a Store with lifecycle policy: lazy creation on read,
// size bounds on write, and a periodic eviction sweep.
//
// Manager calls are not transactional with each other — two callers
// interleaving GetSession/UpdateSession on the same key get
// last-write-wins semantics. Each key represents one conversation
// driven by one caller at a time, so no locking is layered on top.
type Manager[T any] struct {
	store  Store[T]
	policy Policy

	done    chan struct{}
	stopped sync.Once
}

// NewManager creates a Manager over the given store. If the policy
// has a nonzero CleanupInterval, a background sweep starts
// immediately; Destroy must be called during shutdown to stop it.
func NewManager[T any](store Store[T], policy Policy) *Manager[T] {
	m := &Manager[T]{
		store:  store,
		policy: policy,
		done:   make(chan struct{}),
	}
	if policy.CleanupInterval > 0 {
		go m.sweep()
	}
	return m
}

// GetSession loads the record under key, refreshing its LastAccessed.
// A miss is not an error: an empty-payload record with version 1 is
// created, persisted, and returned. Repeated calls on an unseen key
// are idempotent — the second call sees the first call's record.
func (m *Manager[T]) GetSession(key string) (*Record[T], error) {
	rec, err := m.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("loading session %q: %w", key, err)
	}

	now := timeNow()
	if rec == nil {
		rec = &Record[T]{
			Meta: Metadata{
				CreatedAt:    now,
				LastAccessed: now,
				Size:         0,
				Version:      1,
			},
		}
	} else {
		rec.Meta.LastAccessed = now
	}

	if err := m.store.Set(key, rec); err != nil {
		return nil, fmt.Errorf("persisting session %q: %w", key, err)
	}
	return rec, nil
}

// UpdateSession replaces the payload under key, creating the session
// if absent. The new payload's canonical JSON form must fit within
// MaxSessionBytes; otherwise a CapacityError is returned and the
// stored data is left unchanged.
func (m *Manager[T]) UpdateSession(key string, data T) error {
	rec, err := m.GetSession(key)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("serializing session %q: %w", key, err)
	}
	if len(payload) > m.policy.MaxSessionBytes {
		return &CapacityError{Key: key, Size: len(payload), Limit: m.policy.MaxSessionBytes}
	}

	rec.Data = data
	rec.Meta.Size = len(payload)
	rec.Meta.LastAccessed = timeNow()

	if err := m.store.Set(key, rec); err != nil {
		return fmt.Errorf("persisting session %q: %w", key, err)
	}
	return nil
}

// DeleteSession removes the record under key.
func (m *Manager[T]) DeleteSession(key string) error {
	if err := m.store.Delete(key); err != nil {
		return fmt.Errorf("deleting session %q: %w", key, err)
	}
	return nil
}

// Stats reports the backing store's aggregate figures.
func (m *Manager[T]) Stats() (StoreStats, error) {
	return m.store.Stats()
}

// Destroy stops the background eviction sweep. Safe to call more
// than once; must be called during shutdown so the process can exit.
func (m *Manager[T]) Destroy() {
	m.stopped.Do(func() { close(m.done) })
}

// sweep runs the periodic eviction pass until Destroy is called.
// A failed pass is logged, not fatal, and does not stop future passes.
func (m *Manager[T]) sweep() {
	ticker := time.NewTicker(m.policy.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanupPass()
		case <-m.done:
			return
		}
	}
}

// cleanupPass runs one eviction sweep against the store.
func (m *Manager[T]) cleanupPass() {
	if _, err := m.store.Cleanup(m.policy.MaxSessionAge); err != nil {
		log.Printf("WARNING: session cleanup failed: %v", err)
	}
}
