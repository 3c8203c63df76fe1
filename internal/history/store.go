// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists scoring runs in a local SQLite database so that
// score changes of a skill can be tracked over time.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/skillscore/internal/logger"
	"github.com/pdiddy/skillscore/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20

	// timeLayout is fixed width so scored_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			name TEXT,
			score REAL NOT NULL,
			threshold REAL NOT NULL,
			passed INTEGER NOT NULL,
			issues TEXT,
			checks TEXT,
			scored_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_path ON runs(path)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_scored_at ON runs(scored_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one run per report in a single transaction and returns the
// number of runs written. Reports without a path are rejected.
func (s *Store) Record(ctx context.Context, reports []types.ScoreReport, threshold float64) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO runs (path, name, score, threshold, passed, issues, checks, scored_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range reports {
		if r.Path == "" {
			return 0, fmt.Errorf("recording run: report has no path")
		}
		scoredAt := r.ScoredAt
		if scoredAt.IsZero() {
			scoredAt = time.Now()
		}
		issuesJSON, err := json.Marshal(r.Issues)
		if err != nil {
			return 0, fmt.Errorf("encoding issues for %s: %w", r.Path, err)
		}
		checksJSON, err := json.Marshal(r.Checks)
		if err != nil {
			return 0, fmt.Errorf("encoding checks for %s: %w", r.Path, err)
		}
		_, err = stmt.ExecContext(ctx,
			r.Path, r.Name, r.Score, threshold, r.Passed(threshold),
			string(issuesJSON), string(checksJSON),
			scoredAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting run for %s: %w", r.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing runs: %w", err)
	}
	logger.G(ctx).WithField("runs", len(reports)).Debug("recorded scoring runs")
	return len(reports), nil
}
