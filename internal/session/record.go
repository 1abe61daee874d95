// Package session implements the per-conversation state engine shared
// by every drafting tool: a generic keyed store with deep-copy
// isolation, a manager layer that adds size bounds, lazy creation and
// age-based background eviction, and a process-wide registry holding
// one manager per document kind.
//
// Design principles:
// - SRP: record, store, manager, and registry in separate files
// - DIP: Store is an interface; the manager depends on the abstraction
// - OCP: new backends (see sqlite.go) plug in without touching the manager
package session

import (
	"fmt"
	"time"
)

// timeNow is a package-level var to allow test injection of a frozen clock.
var timeNow = time.Now

// Metadata tracks the lifecycle of a session record.
type Metadata struct {
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
	Size         int       `json:"size"`
	Version      int       `json:"version"`
}

// Record is a stored session: a domain payload plus its metadata.
// Size reflects the serialized byte length of Data as of the last
// successful UpdateSession; LastAccessed is refreshed on every read
// or write.
type Record[T any] struct {
	Data T        `json:"data"`
	Meta Metadata `json:"metadata"`
}

// CapacityError reports a payload that would exceed the configured
// maximum session size. The previously stored data is left unchanged;
// the caller must shrink the document.
type CapacityError struct {
	Key   string
	Size  int
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("session %q payload is %d bytes, exceeding the %d byte limit", e.Key, e.Size, e.Limit)
}
