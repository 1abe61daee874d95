package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	kind          TEXT    NOT NULL,
	key           TEXT    NOT NULL,
	data          BLOB    NOT NULL,
	created_at    TEXT    NOT NULL,
	last_accessed TEXT    NOT NULL,
	size          INTEGER NOT NULL,
	version       INTEGER NOT NULL,
	PRIMARY KEY (kind, key)
);
CREATE INDEX IF NOT EXISTS idx_sessions_last_accessed ON sessions(kind, last_accessed);
`

// OpenDB opens (creating if needed) the SQLite database used by the
// durable session backend, applies pragmas, and runs the schema.
// The caller owns the returned handle and must close it on shutdown.
func OpenDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("session: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("session: pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("session: init schema: %w", err)
	}
	return db, nil
}

// SQLiteStore implements Store on a shared SQLite database. Records
// of different document kinds share one table, partitioned by the
// kind column. Deep-copy isolation comes for free: payloads are
// serialized to JSON on every write and reparsed on every read.
type SQLiteStore[T any] struct {
	db   *sql.DB
	kind string
}

// NewSQLiteStore creates a store partition for one document kind on
// an already-open database.
func NewSQLiteStore[T any](db *sql.DB, kind string) *SQLiteStore[T] {
	return &SQLiteStore[T]{db: db, kind: kind}
}

// Get returns the record under key, or nil if absent.
func (s *SQLiteStore[T]) Get(key string) (*Record[T], error) {
	row := s.db.QueryRow(
		`SELECT data, created_at, last_accessed, size, version FROM sessions WHERE kind = ? AND key = ?`,
		s.kind, key,
	)

	var (
		data                    []byte
		createdAt, lastAccessed string
		rec                     Record[T]
	)
	err := row.Scan(&data, &createdAt, &lastAccessed, &rec.Meta.Size, &rec.Meta.Version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: read %q: %w", key, err)
	}

	if err := json.Unmarshal(data, &rec.Data); err != nil {
		return nil, fmt.Errorf("session: parse payload for %q: %w", key, err)
	}
	if rec.Meta.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("session: parse created_at for %q: %w", key, err)
	}
	if rec.Meta.LastAccessed, err = time.Parse(time.RFC3339Nano, lastAccessed); err != nil {
		return nil, fmt.Errorf("session: parse last_accessed for %q: %w", key, err)
	}
	return &rec, nil
}

// Set writes the record under key, replacing any previous row.
func (s *SQLiteStore[T]) Set(key string, rec *Record[T]) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("session: serialize %q: %w", key, err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO sessions (kind, key, data, created_at, last_accessed, size, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.kind, key, data,
		rec.Meta.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.Meta.LastAccessed.UTC().Format(time.RFC3339Nano),
		rec.Meta.Size, rec.Meta.Version,
	)
	if err != nil {
		return fmt.Errorf("session: write %q: %w", key, err)
	}
	return nil
}

// Delete removes the record under key. Deleting an absent key is a no-op.
func (s *SQLiteStore[T]) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE kind = ? AND key = ?`, s.kind, key); err != nil {
		return fmt.Errorf("session: delete %q: %w", key, err)
	}
	return nil
}

// Cleanup evicts every record of this kind idle longer than maxAge.
func (s *SQLiteStore[T]) Cleanup(maxAge time.Duration) (int, error) {
	cutoff := timeNow().Add(-maxAge).UTC().Format(time.RFC3339Nano)

	rows, err := s.db.Query(
		`SELECT key, last_accessed FROM sessions WHERE kind = ? AND last_accessed < ?`,
		s.kind, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("session: scan for eviction: %w", err)
	}
	for rows.Next() {
		var key, lastAccessed string
		if err := rows.Scan(&key, &lastAccessed); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("session: scan for eviction: %w", err)
		}
		log.Printf("session: evicted %q (idle since %s)", key, lastAccessed)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, fmt.Errorf("session: scan for eviction: %w", err)
	}
	_ = rows.Close()

	res, err := s.db.Exec(
		`DELETE FROM sessions WHERE kind = ? AND last_accessed < ?`,
		s.kind, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("session: evict: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Stats returns the record count and summed payload sizes for this kind.
func (s *SQLiteStore[T]) Stats() (StoreStats, error) {
	row := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM sessions WHERE kind = ?`,
		s.kind,
	)
	var stats StoreStats
	if err := row.Scan(&stats.Sessions, &stats.Bytes); err != nil {
		return StoreStats{}, fmt.Errorf("session: stats: %w", err)
	}
	return stats, nil
}
