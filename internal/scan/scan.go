// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan scores every skill document in a directory tree. Files are
// scored concurrently by a bounded pool of workers; results keep the
// discovery order.
package scan

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/skillscore/internal/logger"
	"github.com/pdiddy/skillscore/internal/skillfile"
	"github.com/pdiddy/skillscore/pkg/types"
)

// Result is the outcome for one file. Err is set when the file could not be
// read; Report is then zero.
type Result struct {
	Path   string            `json:"path" yaml:"path"`
	Report types.ScoreReport `json:"report" yaml:"report"`
	Err    error             `json:"-" yaml:"-"`
}

// Summary counts the outcomes of a scan.
type Summary struct {
	Total  int `json:"total" yaml:"total"`
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
	Errors int `json:"errors" yaml:"errors"`
}

// OK reports whether every file was read and passed.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Errors == 0
}

// scoreFunc is replaced in tests.
var scoreFunc = skillfile.Score

// Run scores files with at most cfg.Workers concurrent workers. A file that
// cannot be read is recorded in its Result and does not stop the scan.
// Cancelling ctx stops workers from starting new files and returns ctx.Err().
func Run(ctx context.Context, files []string, cfg types.ScanConfig) ([]Result, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(files))
	for i, path := range files {
		results[i].Path = path
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := scoreFunc(path)
			results[i].Report, results[i].Err = report, err
			if err != nil {
				logger.G(gctx).WithError(err).WithField("path", path).Warn("skipping unreadable skill")
				return nil
			}
			logger.G(gctx).WithField("path", path).WithField("score", report.Score).Debug("scored skill")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// Summarize counts passes, failures, and read errors against threshold.
func Summarize(results []Result, threshold float64) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Errors++
		case r.Report.Passed(threshold):
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

// Reports returns the reports of the results that were scored.
func Reports(results []Result) []types.ScoreReport {
	reports := make([]types.ScoreReport, 0, len(results))
	for _, r := range results {
		if r.Err == nil && r.Report.Path != "" {
			reports = append(reports, r.Report)
		}
	}
	return reports
}
