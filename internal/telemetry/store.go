// store.go persists completed search sessions to SQLite.
//
// The full record is stored as JSON alongside a few indexed columns used for
// listing and pruning. Sessions are addressed by their UUID; lookups accept
// any unique prefix so IDs can be shortened on the command line.

package telemetry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when no session matches an ID.
	ErrNotFound = errors.New("session not found")
	// ErrAmbiguous is returned when an ID prefix matches several sessions.
	ErrAmbiguous = errors.New("session id is ambiguous")
)

// Store is a SQLite-backed session archive.
type Store struct {
	db *sql.DB
}

// DefaultStorePath returns ~/.seek/telemetry/sessions.db, or a path relative
// to the working directory when the home directory is unknown.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".seek", "telemetry", "sessions.db")
	}
	return filepath.Join(home, ".seek", "telemetry", "sessions.db")
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening telemetry store: %w", err)
	}
	// modernc sqlite serialises writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := configure(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating telemetry store: %w", err)
	}
	return &Store{db: db}, nil
}

// configure applies connection pragmas. WAL lets "seek history" read while an
// MCP server is recording; the busy timeout covers the two processes meeting
// on the write lock.
func configure(db *sql.DB) error {
	for _, p := range []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`PRAGMA synchronous=NORMAL`,
	} {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			search_type TEXT NOT NULL,
			pattern     TEXT,
			target      TEXT,
			strategy    TEXT,
			results     INTEGER NOT NULL,
			record      TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_session_timestamp ON session(timestamp);
	`)
	return err
}

// Save inserts r, replacing any record with the same ID.
func (s *Store) Save(ctx context.Context, r Record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", r.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO session (id, timestamp, search_type, pattern, target, strategy, results, record)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Timestamp.UnixMilli(), r.SearchType, r.Pattern, r.TargetPath,
		r.Strategy, r.ResultsFound, string(b),
	)
	return err
}

// List returns up to limit sessions, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	q := `SELECT record FROM session ORDER BY timestamp DESC, id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get returns the session whose ID equals or starts with id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return Record{}, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM session WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		id, escapeLike(id)+"%")
	if err != nil {
		return Record{}, err
	}
	defer rows.Close()

	var found []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return Record{}, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return Record{}, err
	}

	switch {
	case len(found) == 0:
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case len(found) > 1 && found[0].ID != id:
		// An exact match sorts before any longer ID it prefixes.
		return Record{}, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
	return found[0], nil
}

// Prune deletes sessions recorded before cutoff and returns how many went.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE timestamp < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountBefore returns how many sessions Prune(cutoff) would delete.
func (s *Store) CountBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM session WHERE timestamp < ?`, cutoff.UnixMilli()).Scan(&n)
	return n, err
}

// Compact rebuilds the database file so space freed by Prune is returned to
// the filesystem.
func (s *Store) Compact(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return fmt.Errorf("compacting telemetry store: %w", err)
	}
	return nil
}

// Close flushes the WAL into the main file and closes the database, leaving
// no -wal or -shm files behind.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	_, cerr := s.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`)
	if err := s.db.Close(); err != nil {
		return err
	}
	if cerr != nil {
		return fmt.Errorf("WAL checkpoint: %w", cerr)
	}
	return nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var raw string
	if err := rows.Scan(&raw); err != nil {
		return Record{}, err
	}
	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Record{}, fmt.Errorf("decoding session: %w", err)
	}
	return r, nil
}

// escapeLike escapes LIKE wildcards so id is matched literally.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
