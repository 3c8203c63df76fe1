// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quality scores a skill document against a fixed battery of
// checks. Six checks inspect the frontmatter or the raw text; a fixed bonus
// stands in for criteria that cannot be verified mechanically. Scoring is a
// pure function of the document text and never fails.
package quality

import (
	"math"
	"strconv"

	"github.com/pdiddy/skillscore/internal/frontmatter"
	"github.com/pdiddy/skillscore/pkg/types"
)

// Document is the input every checker selects from.
type Document struct {
	Text        string
	Frontmatter types.Frontmatter
}

// NewDocument extracts the frontmatter of text once for all checkers.
func NewDocument(text string) Document {
	return Document{Text: text, Frontmatter: frontmatter.Extract(text)}
}

// Checker describes one inspected check: its label, its maximum weight,
// and how it reads the document.
type Checker struct {
	Name string
	Max  float64
	Run  func(Document) types.CheckResult
}

// onFrontmatter adapts a frontmatter check to a Checker input.
func onFrontmatter(check func(types.Frontmatter) types.CheckResult) func(Document) types.CheckResult {
	return func(d Document) types.CheckResult { return check(d.Frontmatter) }
}

// onText adapts a raw-text check to a Checker input.
func onText(check func(string) types.CheckResult) func(Document) types.CheckResult {
	return func(d Document) types.CheckResult { return check(d.Text) }
}

// checkers is the fixed, ordered check battery. Report issues follow this order.
var checkers = []Checker{
	{Name: types.CheckDescription, Max: types.MaxDescription, Run: onFrontmatter(CheckDescription)},
	{Name: types.CheckName, Max: types.MaxName, Run: onFrontmatter(CheckName)},
	{Name: types.CheckConciseness, Max: types.MaxConciseness, Run: onText(CheckConciseness)},
	{Name: types.CheckExamples, Max: types.MaxExamples, Run: onText(CheckExamples)},
	{Name: types.CheckStructure, Max: types.MaxStructure, Run: onText(CheckStructure)},
	{Name: types.CheckAntiPatterns, Max: types.MaxAntiPatterns, Run: onText(CheckAntiPatterns)},
}

// Checkers returns a copy of the ordered check battery.
func Checkers() []Checker {
	return append([]Checker(nil), checkers...)
}

// Bonus is a fixed credit granted to every document.
type Bonus struct {
	Criterion string  `json:"criterion" yaml:"criterion"`
	Points    float64 `json:"points" yaml:"points"`
}

// fixedBonuses are added in this order after the checks.
var fixedBonuses = []Bonus{
	{Criterion: "progressive disclosure", Points: types.BonusProgressiveDisclosure},
	{Criterion: "degree of freedom", Points: types.BonusDegreeOfFreedom},
	{Criterion: "dependencies", Points: types.BonusDependencies},
	{Criterion: "error handling", Points: types.BonusErrorHandling},
	{Criterion: "testing", Points: types.BonusTesting},
}

// FixedBonuses returns a copy of the fixed bonus table.
func FixedBonuses() []Bonus {
	return append([]Bonus(nil), fixedBonuses...)
}

// FixedBonusTotal returns the sum of the fixed bonuses (3.0).
func FixedBonusTotal() float64 {
	total := 0.0
	for _, b := range fixedBonuses {
		total += b.Points
	}
	return total
}

// Score runs every checker over text and aggregates the result.
func Score(text string) types.ScoreReport {
	return ScoreDocument(NewDocument(text))
}

// ScoreDocument runs every checker over doc. The total is the sum of the
// partial scores plus the fixed bonuses, rounded to one decimal place.
// Issues are prefixed with their check label, in check order.
func ScoreDocument(doc Document) types.ScoreReport {
	report := types.ScoreReport{
		Name:   doc.Frontmatter.Get("name"),
		Issues: []string{},
		Checks: make([]types.CheckScore, 0, len(checkers)),
	}

	total := 0.0
	for _, c := range checkers {
		res := c.Run(doc)
		total += res.Score
		for _, issue := range res.Issues {
			report.Issues = append(report.Issues, c.Name+": "+issue)
		}
		report.Checks = append(report.Checks, types.CheckScore{
			Name: c.Name,
			Max:  c.Max,
			CheckResult: types.CheckResult{
				Score:  roundTo(res.Score, 2),
				Issues: res.Issues,
			},
		})
	}

	for _, b := range fixedBonuses {
		total += b.Points
	}

	report.Score = roundTo(total, 1)
	return report
}

// roundTo rounds x to the given number of decimal places using the exact
// decimal value of x, with ties going to the even digit.
func roundTo(x float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return math.Round(x*math.Pow10(places)) / math.Pow10(places)
	}
	return r
}
