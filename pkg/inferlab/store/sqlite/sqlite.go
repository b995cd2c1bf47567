// Package sqlite implements store.Store on SQLite. The default
// ":memory:" path keeps run history scoped to the process lifetime.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/inferlab/inferlab/pkg/inferlab/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite-backed run store. An empty path means
// ":memory:"; a file path makes the history survive restarts.
func Open(ctx context.Context, path string) (store.Store, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// A single connection: the in-memory database exists per
	// connection, and run recording is low-volume anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	success INTEGER NOT NULL,
	goals TEXT NOT NULL,
	final_facts TEXT NOT NULL,
	rule_ids TEXT NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	trace TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run record.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	goals, err := json.Marshal(r.Goals)
	if err != nil {
		return err
	}
	facts, err := json.Marshal(r.FinalFacts)
	if err != nil {
		return err
	}
	ruleIDs, err := json.Marshal(r.RuleIDs)
	if err != nil {
		return err
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO runs (id, mode, success, goals, final_facts, rule_ids, elapsed_ns, created_at, trace)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Mode, boolToInt(r.Success), string(goals), string(facts),
		string(ruleIDs), r.Elapsed.Nanoseconds(), createdAt.Format(time.RFC3339Nano), r.TraceJSON)
	return err
}

// GetRun returns a run record by id.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, mode, success, goals, final_facts, rule_ids, elapsed_ns, created_at, trace
FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	return run, true, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, mode, success, goals, final_facts, rule_ids, elapsed_ns, created_at, trace
FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (store.Run, error) {
	var (
		run       store.Run
		success   int
		goals     string
		facts     string
		ruleIDs   string
		elapsedNS int64
		createdAt string
	)
	if err := row.Scan(&run.ID, &run.Mode, &success, &goals, &facts,
		&ruleIDs, &elapsedNS, &createdAt, &run.TraceJSON); err != nil {
		return store.Run{}, err
	}
	run.Success = success != 0
	run.Elapsed = time.Duration(elapsedNS)
	if err := json.Unmarshal([]byte(goals), &run.Goals); err != nil {
		return store.Run{}, err
	}
	if err := json.Unmarshal([]byte(facts), &run.FinalFacts); err != nil {
		return store.Run{}, err
	}
	if err := json.Unmarshal([]byte(ruleIDs), &run.RuleIDs); err != nil {
		return store.Run{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.Run{}, err
	}
	run.CreatedAt = ts
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
