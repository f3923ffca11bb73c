// Package store persists aggregated benchmark timings in SQLite so runs
// can be compared over time.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"perfbench/internal/logging"
	"perfbench/internal/timing"
)

// Run is one stored summary.
type Run struct {
	ID         string
	Program    string
	Source     string // data file path, or "run" for in-process timings
	Runs       int
	Total      float64
	Mean       float64
	RecordedAt time.Time
}

// Store manages the result database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// NewStore creates or opens the result store in dir.
func NewStore(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "perfbench.db")

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.StoreDebug("opened result store at %s", dbPath)
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		program TEXT NOT NULL,
		source TEXT NOT NULL,
		runs INTEGER NOT NULL,
		total_seconds REAL NOT NULL,
		mean_seconds REAL NOT NULL,
		recorded_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_program ON runs(program);
	CREATE INDEX IF NOT EXISTS idx_runs_recorded_at ON runs(recorded_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores every summary with at least one sample in a single
// transaction and returns the stored rows.
func (s *Store) Record(ctx context.Context, source string, sums []timing.Summary) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO runs (id, program, source, runs, total_seconds, mean_seconds, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	var stored []Run
	for _, sum := range sums {
		if sum.Runs == 0 {
			continue
		}
		r := Run{
			ID:         uuid.NewString(),
			Program:    sum.Program,
			Source:     source,
			Runs:       sum.Runs,
			Total:      sum.Total,
			Mean:       sum.Mean,
			RecordedAt: now,
		}
		if _, err := stmt.ExecContext(ctx, r.ID, r.Program, r.Source, r.Runs, r.Total, r.Mean, r.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to record %s: %w", sum.Program, err)
		}
		stored = append(stored, r)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit runs: %w", err)
	}

	logging.StoreDebug("recorded %d runs from %s", len(stored), source)
	return stored, nil
}

// History returns stored runs newest first. An empty program returns all
// programs; a limit of zero or less returns every row.
func (s *Store) History(ctx context.Context, program string, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}

	query := `
		SELECT id, program, source, runs, total_seconds, mean_seconds, recorded_at
		FROM runs`
	args := []interface{}{}
	if program != "" {
		query += ` WHERE program = ?`
		args = append(args, program)
	}
	query += ` ORDER BY recorded_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Program, &r.Source, &r.Runs, &r.Total, &r.Mean, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return runs, nil
}
