// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for skillscore: the
// frontmatter mapping, per-check results, the aggregate score report, the
// fixed weight table, and CLI configuration.
package types

import "time"

// Frontmatter is the flat key/value mapping pulled from the leading
// `---` block of a skill document. Keys and values are trimmed.
type Frontmatter map[string]string

// Get returns the value for key, or "" when the key is absent.
func (f Frontmatter) Get(key string) string {
	return f[key]
}

// CheckResult is the outcome of one check: a partial score bounded by the
// check's maximum weight and the issues it found, in detection order.
type CheckResult struct {
	// Score is in [0, max] for the check that produced it.
	Score float64 `json:"score" yaml:"score"`

	// Issues are human-readable deficiencies without the check label.
	Issues []string `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// CheckScore labels a CheckResult with the check that produced it.
type CheckScore struct {
	// Name is the check label used as the issue prefix (e.g. "Description").
	Name string `json:"name" yaml:"name"`

	// Max is the check's maximum weight.
	Max float64 `json:"max" yaml:"max"`

	CheckResult `yaml:",inline"`
}

// ScoreReport is the aggregate result of scoring one skill document.
type ScoreReport struct {
	// Path is the file the document was read from. Empty when scored from text.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Name is the frontmatter name, if any.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Score is the total in [0, 10], rounded to one decimal place.
	Score float64 `json:"score" yaml:"score"`

	// Issues lists every issue prefixed with "<CheckName>: ", in check order.
	Issues []string `json:"issues" yaml:"issues"`

	// Checks holds the partial results of the six inspected checks, in order.
	Checks []CheckScore `json:"checks" yaml:"checks"`

	// ScoredAt is when the document was scored. Zero when scored from text.
	ScoredAt time.Time `json:"scored_at,omitzero" yaml:"scored_at,omitempty"`
}

// Passed reports whether the score meets threshold. The comparison is
// inclusive: a score equal to the threshold passes.
func (r ScoreReport) Passed(threshold float64) bool {
	return r.Score >= threshold
}

// HasIssues reports whether any check found a deficiency.
func (r ScoreReport) HasIssues() bool {
	return len(r.Issues) > 0
}
