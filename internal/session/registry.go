package session

import (
	"database/sql"
	"sync"

	"github.com/draftsmith/draftsmith/internal/docs"
)

// Registry holds one Manager per document kind, all sharing the same
// lifecycle policy. It is process-wide state: the composition root
// initializes it once and calls Cleanup during graceful shutdown to
// stop every eviction sweep.
type Registry struct {
	Reasoning  *Manager[docs.ReasoningState]
	APIDesigns *Manager[docs.APIDesignState]
	Decisions  *Manager[docs.DecisionState]
	Reviews    *Manager[docs.ReviewState]
	Strategies *Manager[docs.StrategyState]

	cleanupOnce sync.Once
}

// Options configures registry construction.
type Options struct {
	Policy Policy
	// DB, when non-nil, selects the durable SQLite backend for every
	// manager. Nil selects the in-memory default.
	DB *sql.DB
}

// NewRegistry constructs a registry with one manager per document
// kind. Callers own the lifecycle: Cleanup stops the managers but
// does not close the database handle.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		Reasoning:  NewManager(newStore[docs.ReasoningState](opts.DB, "reasoning"), opts.Policy),
		APIDesigns: NewManager(newStore[docs.APIDesignState](opts.DB, "api_design"), opts.Policy),
		Decisions:  NewManager(newStore[docs.DecisionState](opts.DB, "decision"), opts.Policy),
		Reviews:    NewManager(newStore[docs.ReviewState](opts.DB, "review"), opts.Policy),
		Strategies: NewManager(newStore[docs.StrategyState](opts.DB, "strategy"), opts.Policy),
	}
}

// newStore picks the backend for one document kind.
func newStore[T any](db *sql.DB, kind string) Store[T] {
	if db != nil {
		return NewSQLiteStore[T](db, kind)
	}
	return NewMemoryStore[T]()
}

// KindStats pairs a document kind with its store figures.
type KindStats struct {
	Kind string `json:"kind"`
	StoreStats
}

// Stats returns per-kind session counts and byte totals.
func (r *Registry) Stats() ([]KindStats, error) {
	var out []KindStats
	for _, entry := range []struct {
		kind  string
		stats func() (StoreStats, error)
	}{
		{"reasoning", r.Reasoning.Stats},
		{"api_design", r.APIDesigns.Stats},
		{"decision", r.Decisions.Stats},
		{"review", r.Reviews.Stats},
		{"strategy", r.Strategies.Stats},
	} {
		s, err := entry.stats()
		if err != nil {
			return nil, err
		}
		out = append(out, KindStats{Kind: entry.kind, StoreStats: s})
	}
	return out, nil
}

// Cleanup tears down every managed session manager, stopping their
// eviction timers. Safe to call more than once.
func (r *Registry) Cleanup() {
	r.cleanupOnce.Do(func() {
		r.Reasoning.Destroy()
		r.APIDesigns.Destroy()
		r.Decisions.Destroy()
		r.Reviews.Destroy()
		r.Strategies.Destroy()
	})
}

// --- Process-wide singleton ---

var (
	defaultMu  sync.Mutex
	defaultReg *Registry
)

// Init constructs the process-wide registry on first call and returns
// it; later calls return the existing instance regardless of opts.
// Construction is mutex-guarded so concurrent first accesses are safe.
func Init(opts Options) *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultReg == nil {
		defaultReg = NewRegistry(opts)
	}
	return defaultReg
}

// Default returns the process-wide registry, lazily constructing it
// with the environment-derived policy and the in-memory backend if
// Init was never called explicitly.
func Default() *Registry {
	return Init(Options{Policy: PolicyFromEnv()})
}

// resetDefault clears the singleton. Test use only.
func resetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultReg != nil {
		defaultReg.Cleanup()
		defaultReg = nil
	}
}
