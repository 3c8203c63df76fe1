// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders score reports, scan results, and score history as
// text, JSON, or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/skillscore/internal/history"
	"github.com/pdiddy/skillscore/internal/quality"
	"github.com/pdiddy/skillscore/internal/scan"
	"github.com/pdiddy/skillscore/pkg/types"
)

var (
	passLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	errLabel  = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// FormatScore renders a score the way the CLI prints it, e.g. "8.0/10".
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f/10", score)
}

// Write renders one report in the given format.
func Write(w io.Writer, r types.ScoreReport, format types.OutputFormat) error {
	switch format {
	case types.FormatJSON:
		return writeJSON(w, r)
	case types.FormatYAML:
		return writeYAML(w, r)
	case types.FormatText, "":
		return WriteText(w, r)
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}
}

// WriteText prints the score line and, when there are issues, a blank line,
// an "Issues found:" header and one dashed line per issue.
func WriteText(w io.Writer, r types.ScoreReport) error {
	var b strings.Builder
	b.WriteString(FormatScore(r.Score))
	b.WriteString("\n")
	if r.HasIssues() {
		b.WriteString("\nIssues found:\n")
		for _, issue := range r.Issues {
			fmt.Fprintf(&b, "  - %s\n", issue)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteBreakdown prints the partial score of every check and the fixed
// bonuses, one per line, under the score line.
func WriteBreakdown(w io.Writer, r types.ScoreReport, bonuses []quality.Bonus) error {
	var b strings.Builder
	for _, c := range r.Checks {
		fmt.Fprintf(&b, "  %-24s %4.2f / %.2f\n", c.Name, c.Score, c.Max)
	}
	for _, bonus := range bonuses {
		fmt.Fprintf(&b, "  %-24s %4.2f (assumed)\n", bonus.Criterion, bonus.Points)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// scanEntry is the serialized form of one scan result.
type scanEntry struct {
	Path   string             `json:"path" yaml:"path"`
	Passed bool               `json:"passed" yaml:"passed"`
	Error  string             `json:"error,omitempty" yaml:"error,omitempty"`
	Report *types.ScoreReport `json:"report,omitempty" yaml:"report,omitempty"`
}

// scanOutput is the serialized form of a whole scan.
type scanOutput struct {
	Threshold float64      `json:"threshold" yaml:"threshold"`
	Summary   scan.Summary `json:"summary" yaml:"summary"`
	Results   []scanEntry  `json:"results" yaml:"results"`
}

// WriteScan renders scan results in the given format.
func WriteScan(w io.Writer, results []scan.Result, threshold float64, format types.OutputFormat) error {
	summary := scan.Summarize(results, threshold)

	switch format {
	case types.FormatJSON, types.FormatYAML:
		out := scanOutput{Threshold: threshold, Summary: summary, Results: make([]scanEntry, len(results))}
		for i, r := range results {
			e := scanEntry{Path: r.Path}
			if r.Err != nil {
				e.Error = r.Err.Error()
			} else {
				rep := r.Report
				e.Report = &rep
				e.Passed = rep.Passed(threshold)
			}
			out.Results[i] = e
		}
		if format == types.FormatJSON {
			return writeJSON(w, out)
		}
		return writeYAML(w, out)
	case types.FormatText, "":
		return writeScanText(w, results, summary, threshold)
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}
}

func writeScanText(w io.Writer, results []scan.Result, summary scan.Summary, threshold float64) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No skills found.")
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-7s  %-6s  %-6s  %s\n", "Score", "Status", "Issues", "Path")
	b.WriteString(strings.Repeat("-", 60))
	b.WriteString("\n")

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&b, "%-7s  %-6s  %-6s  %s (%v)\n", "-", errLabel("ERROR"), "-", r.Path, r.Err)
			continue
		}
		status := failLabel("FAIL")
		if r.Report.Passed(threshold) {
			status = passLabel("PASS")
		}
		fmt.Fprintf(&b, "%-7s  %-6s  %-6d  %s\n", FormatScore(r.Report.Score), status, len(r.Report.Issues), r.Path)
	}

	fmt.Fprintf(&b, "\n%d/%d skills passed", summary.Passed, summary.Total)
	if summary.Errors > 0 {
		fmt.Fprintf(&b, " (%d unreadable)", summary.Errors)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteRuns renders recorded history runs, most recent first.
func WriteRuns(w io.Writer, runs []history.Run, format types.OutputFormat) error {
	switch format {
	case types.FormatJSON:
		return writeJSON(w, nonNil(runs))
	case types.FormatYAML:
		return writeYAML(w, nonNil(runs))
	case types.FormatText, "":
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}

	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-20s  %-7s  %-6s  %-6s  %s\n", "Scored", "Score", "Status", "Issues", "Path")
	b.WriteString(strings.Repeat("-", 70))
	b.WriteString("\n")
	for _, r := range runs {
		status := failLabel("FAIL")
		if r.Passed {
			status = passLabel("PASS")
		}
		fmt.Fprintf(&b, "%-20s  %-7s  %-6s  %-6d  %s\n",
			r.ScoredAt.Local().Format(time.DateTime), FormatScore(r.Score), status, len(r.Issues), r.Path)
	}
	fmt.Fprintf(&b, "\n%d runs\n", len(runs))

	_, err := io.WriteString(w, b.String())
	return err
}

// trendOutput is the serialized form of a score trend.
type trendOutput struct {
	Path   string               `json:"path" yaml:"path"`
	Points []history.TrendPoint `json:"points" yaml:"points"`
}

// WriteTrend renders the score series of one skill, oldest first.
func WriteTrend(w io.Writer, path string, points []history.TrendPoint, format types.OutputFormat) error {
	switch format {
	case types.FormatJSON:
		return writeJSON(w, trendOutput{Path: path, Points: nonNil(points)})
	case types.FormatYAML:
		return writeYAML(w, trendOutput{Path: path, Points: nonNil(points)})
	case types.FormatText, "":
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}

	if len(points) == 0 {
		_, err := fmt.Fprintf(w, "No runs recorded for %s.\n", path)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", path)
	fmt.Fprintf(&b, "%-20s  %-7s  %-6s  %s\n", "Scored", "Score", "Delta", "Issues")
	b.WriteString(strings.Repeat("-", 48))
	b.WriteString("\n")
	for i, p := range points {
		delta := "-"
		if i > 0 {
			delta = fmt.Sprintf("%+.1f", p.Delta)
		}
		fmt.Fprintf(&b, "%-20s  %-7s  %-6s  %d\n",
			p.ScoredAt.Local().Format(time.DateTime), FormatScore(p.Score), delta, p.Issues)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
