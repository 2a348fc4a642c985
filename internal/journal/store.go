package journal

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id   TEXT NOT NULL,
    seq          INTEGER NOT NULL,
    phase        TEXT NOT NULL,
    show_key     TEXT NOT NULL DEFAULT '',
    title        TEXT NOT NULL DEFAULT '',
    watched_date TEXT NOT NULL DEFAULT '',
    decision     TEXT NOT NULL,
    decided_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_decisions_session ON decisions(session_id, seq);
`

// Store is the append-only decision journal backed by SQLite. It records what
// the operator decided, never session state: a new run always starts fresh.
type Store struct {
	db   *sql.DB
	path string
}

// Entry is one journaled decision. Group decisions carry the show key; film
// decisions carry the title and watch date.
type Entry struct {
	SessionID   string
	Seq         int64
	Phase       string
	ShowKey     string
	Title       string
	WatchedDate string
	Decision    string
	DecidedAt   time.Time
}

// Open initializes or connects to the journal database under dir.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "decisions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}
	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append writes one decision row.
func (s *Store) Append(ctx context.Context, entry Entry) error {
	decidedAt := entry.DecidedAt
	if decidedAt.IsZero() {
		decidedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO decisions (session_id, seq, phase, show_key, title, watched_date, decision, decided_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID,
		entry.Seq,
		entry.Phase,
		entry.ShowKey,
		entry.Title,
		entry.WatchedDate,
		entry.Decision,
		decidedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append decision: %w", err)
	}
	return nil
}

// Session returns every decision of one session in append order.
func (s *Store) Session(ctx context.Context, sessionID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT session_id, seq, phase, show_key, title, watched_date, decision, decided_at
         FROM decisions WHERE session_id = ? ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var decidedAt string
		if err := rows.Scan(
			&entry.SessionID,
			&entry.Seq,
			&entry.Phase,
			&entry.ShowKey,
			&entry.Title,
			&entry.WatchedDate,
			&entry.Decision,
			&decidedAt,
		); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(time.RFC3339Nano, decidedAt); err == nil {
			entry.DecidedAt = parsed
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
