package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"moodlog/client"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Local History Cache
//
// A small DuckDB file that holds the last mood history fetched from the
// journal service plus a stable device identity. The dashboard falls back
// to this cache when the service is unreachable, so the chart still
// renders offline with the most recent data.
//
// The cache is refresh-on-fetch: every successful history fetch replaces
// the whole table. Row positions preserve the service's chronological
// ordering — the cache never re-sorts.
// ============================================================================

// Store wraps the local cache database.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

const ddl = `
CREATE TABLE IF NOT EXISTS mood_history (
    position   INTEGER NOT NULL,
    entry_date VARCHAR NOT NULL,
    mood       DOUBLE  NOT NULL
);
CREATE TABLE IF NOT EXISTS device_state (
    id            INTEGER PRIMARY KEY,
    device_id     VARCHAR NOT NULL,
    last_fetch_at TIMESTAMP
);
`

// Open opens (creating if needed) the cache database at path.
// Use ":memory:" or an empty path for an in-memory cache in tests.
func Open(path string) (*Store, error) {
	if path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, serr.Wrap(err, "failed to create cache directory")
		}
	}
	if path == ":memory:" {
		path = ""
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open cache database")
	}

	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, serr.Wrap(err, "failed to migrate cache database")
	}

	if err := ensureDeviceState(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// ensureDeviceState creates the device identity row on first open so
// later updates can assume it exists.
func ensureDeviceState(db *sql.DB) error {
	var id string
	err := db.QueryRow(`SELECT device_id FROM device_state WHERE id = 1`).Scan(&id)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return serr.Wrap(err, "failed to query device state")
	}

	id = uuid.New().String()
	if _, err := db.Exec(
		`INSERT INTO device_state (id, device_id) VALUES (1, ?)`, id); err != nil {
		return serr.Wrap(err, "failed to persist device ID")
	}
	logger.Info("Created device identity", "device_id", id)
	return nil
}

// Close closes the cache database.
func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// DeviceID returns this installation's stable identifier. The service
// does not need it yet, but snapshot files carry it so an import can
// tell which machine produced the data.
func (s *Store) DeviceID() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id string
	if err := s.db.QueryRow(`SELECT device_id FROM device_state WHERE id = 1`).Scan(&id); err != nil {
		return "", serr.Wrap(err, "failed to query device ID")
	}
	return id, nil
}

// ReplaceHistory swaps the cached history for the given records and
// stamps the fetch time. The whole swap is one transaction so a reader
// never sees a half-replaced cache.
func (s *Store) ReplaceHistory(records []client.MoodRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return serr.Wrap(err, "failed to begin cache transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM mood_history`); err != nil {
		return serr.Wrap(err, "failed to clear cached history")
	}

	for i, r := range records {
		if _, err := tx.Exec(
			`INSERT INTO mood_history (position, entry_date, mood) VALUES (?, ?, ?)`,
			i, r.Date, r.Mood); err != nil {
			return serr.Wrap(err, "failed to insert cached record")
		}
	}

	if _, err := tx.Exec(
		`UPDATE device_state SET last_fetch_at = ? WHERE id = 1`, time.Now()); err != nil {
		return serr.Wrap(err, "failed to stamp fetch time")
	}

	if err := tx.Commit(); err != nil {
		return serr.Wrap(err, "failed to commit cache replacement")
	}
	return nil
}

// History returns the cached records in the order they were fetched.
func (s *Store) History() ([]client.MoodRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT entry_date, mood FROM mood_history ORDER BY position`)
	if err != nil {
		return nil, serr.Wrap(err, "failed to query cached history")
	}
	defer rows.Close()

	var records []client.MoodRecord
	for rows.Next() {
		var r client.MoodRecord
		if err := rows.Scan(&r.Date, &r.Mood); err != nil {
			return nil, serr.Wrap(err, "failed to scan cached record")
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.Wrap(err, "failed to read cached history")
	}
	return records, nil
}

// LastFetchedAt reports when the cache was last refreshed.
// ok is false when no fetch has happened yet.
func (s *Store) LastFetchedAt() (t time.Time, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fetched sql.NullTime
	qerr := s.db.QueryRow(`SELECT last_fetch_at FROM device_state WHERE id = 1`).Scan(&fetched)
	if qerr == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if qerr != nil {
		return time.Time{}, false, serr.Wrap(qerr, "failed to query fetch time")
	}
	if !fetched.Valid {
		return time.Time{}, false, nil
	}
	return fetched.Time, true, nil
}
