package session

import (
	"testing"

	"github.com/draftsmith/draftsmith/internal/docs"
)

func quietOptions() Options {
	return Options{Policy: quietPolicy()}
}

// --- Construction ---

func TestNewRegistry_AllManagersPresent(t *testing.T) {
	r := NewRegistry(quietOptions())
	t.Cleanup(r.Cleanup)

	if r.Reasoning == nil || r.APIDesigns == nil || r.Decisions == nil || r.Reviews == nil || r.Strategies == nil {
		t.Fatal("registry has nil managers")
	}
}

func TestRegistry_ManagersAreIsolated(t *testing.T) {
	setNow(t, testEpoch)
	r := NewRegistry(quietOptions())
	t.Cleanup(r.Cleanup)

	if err := r.Reviews.UpdateSession("rev-1", docs.ReviewState{
		History: []docs.ReviewDocument{{ReviewID: "rev-1"}},
	}); err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}

	// The same key in a different kind's manager is a fresh session.
	rec, err := r.Strategies.GetSession("rev-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(rec.Data.History) != 0 {
		t.Errorf("strategy session shares review state: %+v", rec.Data)
	}
}

// --- Stats ---

func TestRegistry_Stats_CountsPerKind(t *testing.T) {
	setNow(t, testEpoch)
	r := NewRegistry(quietOptions())
	t.Cleanup(r.Cleanup)

	if err := r.Reviews.UpdateSession("rev-1", docs.ReviewState{}); err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}

	stats, err := r.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if len(stats) != 5 {
		t.Fatalf("Stats returned %d kinds, want 5", len(stats))
	}

	byKind := make(map[string]KindStats, len(stats))
	for _, s := range stats {
		byKind[s.Kind] = s
	}
	if byKind["review"].Sessions != 1 {
		t.Errorf("review sessions = %d, want 1", byKind["review"].Sessions)
	}
	if byKind["strategy"].Sessions != 0 {
		t.Errorf("strategy sessions = %d, want 0", byKind["strategy"].Sessions)
	}
}

// --- Cleanup ---

func TestRegistry_Cleanup_Idempotent(t *testing.T) {
	r := NewRegistry(Options{Policy: DefaultPolicy()})

	r.Cleanup()
	r.Cleanup() // must not panic
}

// --- Singleton ---

func TestDefault_ReturnsSameInstance(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)

	a := Default()
	b := Default()
	if a != b {
		t.Error("Default returned different registries")
	}
}

func TestInit_FirstCallWins(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)

	a := Init(quietOptions())
	b := Init(Options{Policy: DefaultPolicy()})
	if a != b {
		t.Error("Init constructed a second registry")
	}
	if Default() != a {
		t.Error("Default did not return the Init-constructed registry")
	}
}
