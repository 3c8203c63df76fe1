// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pdiddy/skillscore/pkg/types"
)

// QueryOptions filters history queries.
type QueryOptions struct {
	// Path restricts runs to one skill file.
	Path string

	// Issue restricts runs to those reporting an issue containing this text.
	Issue string

	// FailingOnly restricts runs to those below their threshold.
	FailingOnly bool

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Run is one recorded scoring of a skill file.
type Run struct {
	ID        int64              `json:"id" yaml:"id"`
	Path      string             `json:"path" yaml:"path"`
	Name      string             `json:"name,omitempty" yaml:"name,omitempty"`
	Score     float64            `json:"score" yaml:"score"`
	Threshold float64            `json:"threshold" yaml:"threshold"`
	Passed    bool               `json:"passed" yaml:"passed"`
	Issues    []string           `json:"issues" yaml:"issues"`
	Checks    []types.CheckScore `json:"checks" yaml:"checks"`
	ScoredAt  time.Time          `json:"scored_at" yaml:"scored_at"`
}

// TrendPoint is one run in a skill's score series.
type TrendPoint struct {
	ScoredAt time.Time `json:"scored_at" yaml:"scored_at"`
	Score    float64   `json:"score" yaml:"score"`
	// Delta is the change from the previous run; zero for the first run.
	Delta  float64 `json:"delta" yaml:"delta"`
	Issues int     `json:"issues" yaml:"issues"`
}

// List returns matching runs, most recent first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Run, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, path, name, score, threshold, passed, issues, checks, scored_at
		FROM runs WHERE 1=1`)
	if opts.Path != "" {
		qb.WriteString(` AND path = ?`)
		args = append(args, opts.Path)
	}
	if opts.Issue != "" {
		qb.WriteString(` AND issues LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(opts.Issue)+"%")
	}
	if opts.FailingOnly {
		qb.WriteString(` AND passed = 0`)
	}
	qb.WriteString(` ORDER BY scored_at DESC, id DESC LIMIT ?`)
	args = append(args, maxResults)

	return s.queryRuns(ctx, qb.String(), args...)
}

// Latest returns the most recent run of every recorded path, ordered by path.
func (s *Store) Latest(ctx context.Context) ([]Run, error) {
	return s.queryRuns(ctx,
		`SELECT r.id, r.path, r.name, r.score, r.threshold, r.passed, r.issues, r.checks, r.scored_at
		FROM runs r
		WHERE r.id = (
			SELECT id FROM runs WHERE path = r.path ORDER BY scored_at DESC, id DESC LIMIT 1
		)
		ORDER BY r.path`)
}

// Trend returns the score series of path, oldest first, with the change
// from each run to the next.
func (s *Store) Trend(ctx context.Context, path string) ([]TrendPoint, error) {
	runs, err := s.queryRuns(ctx,
		`SELECT id, path, name, score, threshold, passed, issues, checks, scored_at
		FROM runs WHERE path = ? ORDER BY scored_at ASC, id ASC`, path)
	if err != nil {
		return nil, err
	}

	points := make([]TrendPoint, len(runs))
	for i, r := range runs {
		points[i] = TrendPoint{ScoredAt: r.ScoredAt, Score: r.Score, Issues: len(r.Issues)}
		if i > 0 {
			points[i].Delta = roundDelta(r.Score - runs[i-1].Score)
		}
	}
	return points, nil
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		r          Run
		name       sql.NullString
		issuesJSON sql.NullString
		checksJSON sql.NullString
		scoredAt   string
	)
	if err := rows.Scan(&r.ID, &r.Path, &name, &r.Score, &r.Threshold, &r.Passed,
		&issuesJSON, &checksJSON, &scoredAt); err != nil {
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}
	r.Name = name.String

	if issuesJSON.Valid && issuesJSON.String != "" {
		if err := json.Unmarshal([]byte(issuesJSON.String), &r.Issues); err != nil {
			return Run{}, fmt.Errorf("decoding issues of run %d: %w", r.ID, err)
		}
	}
	if checksJSON.Valid && checksJSON.String != "" {
		if err := json.Unmarshal([]byte(checksJSON.String), &r.Checks); err != nil {
			return Run{}, fmt.Errorf("decoding checks of run %d: %w", r.ID, err)
		}
	}

	t, err := time.Parse(timeLayout, scoredAt)
	if err != nil {
		return Run{}, fmt.Errorf("parsing time of run %d: %w", r.ID, err)
	}
	r.ScoredAt = t
	return r, nil
}

// escapeLike escapes LIKE wildcards so the filter matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func roundDelta(d float64) float64 {
	return math.Round(d*10) / 10
}
