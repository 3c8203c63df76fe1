// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/skillscore/pkg/types"
)

const minDescriptionLength = 50

var (
	// vaguePhrases mark a description that says little about what the skill does.
	vaguePhrases = []string{"helps with", "tool for", "useful", "handles"}

	// usageCues mark a description that says when the skill applies.
	usageCues = []string{"when ", "use when"}

	// secondPersonCues mark a description not written in the third person.
	secondPersonCues = []string{"you", "your", "i ", "i'm"}

	// genericNames are names too broad to identify a skill.
	genericNames = []string{"helper", "utils", "tool", "skill"}
)

// Line-count steps for conciseness. The first bound the count falls under wins.
const (
	linesIdeal  = 300
	linesLimit  = 500
	linesExcess = 800
	scoreLimit  = 1.0
	scoreExcess = 0.5
)

const (
	minExamples     = 3
	scoreFewExample = 0.5
)

// codeFencePattern matches a fence line: three backticks, an optional
// language tag, then a newline.
var codeFencePattern = regexp.MustCompile("```[\\p{L}\\p{N}_]*\n")

// timeSensitivePatterns are tried in order; the first match is enough.
var timeSensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`(?i)last updated`),
	regexp.MustCompile(`(?i)as of \d{4}`),
}

// Structure and anti-pattern penalties.
const (
	penaltyMissingOverview = 0.3
	penaltyMissingUsage    = 0.3
	penaltyWindowsPaths    = 0.4
	penaltyTimeSensitive   = 0.5
	penaltyTerminology     = 0.5
)

// CheckDescription scores the frontmatter description (max 2.0). A missing
// description scores zero with a single issue and no further sub-checks.
func CheckDescription(fm types.Frontmatter) types.CheckResult {
	desc := fm.Get("description")
	if desc == "" {
		return types.CheckResult{Issues: []string{"Missing description"}}
	}

	var r types.CheckResult
	lower := strings.ToLower(desc)

	if utf8.RuneCountInString(desc) < minDescriptionLength {
		r.Issues = append(r.Issues, "Description too short (< 50 chars)")
	} else {
		r.Score += 0.5
	}

	if containsAny(lower, vaguePhrases) {
		r.Issues = append(r.Issues, "Description contains vague phrases")
	} else {
		r.Score += 0.5
	}

	if containsAny(lower, usageCues) {
		r.Score += 0.5
	} else {
		r.Issues = append(r.Issues, "Description missing 'when to use' guidance")
	}

	if containsAny(lower, secondPersonCues) {
		r.Issues = append(r.Issues, "Description should be third person")
	} else {
		r.Score += 0.5
	}

	r.Score = clamp(r.Score, types.MaxDescription)
	return r
}

// CheckName scores the frontmatter name (max 0.5). A missing name scores
// zero with a single issue.
func CheckName(fm types.Frontmatter) types.CheckResult {
	name := fm.Get("name")
	if name == "" {
		return types.CheckResult{Issues: []string{"Missing name"}}
	}

	var r types.CheckResult

	if name == strings.ToLower(name) && strings.Contains(name, "-") {
		r.Score += 0.25
	} else {
		r.Issues = append(r.Issues, "Name should be lowercase-with-hyphens")
	}

	if slices.Contains(genericNames, name) {
		r.Issues = append(r.Issues, "Name too generic")
	} else {
		r.Score += 0.25
	}

	r.Score = clamp(r.Score, types.MaxName)
	return r
}

// CheckConciseness scores document length (max 1.5), counting newline
// characters: under 300 scores 1.5, under 500 scores 1.0, under 800 scores
// 0.5, anything longer scores 0.
func CheckConciseness(text string) types.CheckResult {
	lines := strings.Count(text, "\n")

	switch {
	case lines < linesIdeal:
		return types.CheckResult{Score: types.MaxConciseness}
	case lines < linesLimit:
		return types.CheckResult{Score: scoreLimit}
	case lines < linesExcess:
		return types.CheckResult{
			Score:  scoreExcess,
			Issues: []string{fmt.Sprintf("SKILL.md is %d lines (recommend <500)", lines)},
		}
	default:
		return types.CheckResult{
			Issues: []string{fmt.Sprintf("SKILL.md is %d lines (way over 500 limit)", lines)},
		}
	}
}

// CheckExamples scores the number of fenced code blocks (max 1.0). Only
// opening fences are counted.
func CheckExamples(text string) types.CheckResult {
	blocks := CountCodeBlocks(text)

	switch {
	case blocks == 0:
		return types.CheckResult{Issues: []string{"No code examples found"}}
	case blocks < minExamples:
		return types.CheckResult{
			Score:  scoreFewExample,
			Issues: []string{fmt.Sprintf("Only %d code examples (recommend 5+)", blocks)},
		}
	default:
		return types.CheckResult{Score: types.MaxExamples}
	}
}

// CheckStructure scores required sections and path style (max 1.0).
// Penalties are independent and stack; the result never drops below 0.
func CheckStructure(text string) types.CheckResult {
	r := types.CheckResult{Score: types.MaxStructure}

	if !strings.Contains(text, "## Overview") && !strings.Contains(text, "## What") {
		r.Issues = append(r.Issues, "Missing overview section")
		r.Score -= penaltyMissingOverview
	}

	if !strings.Contains(text, "## Usage") && !strings.Contains(text, "## How") {
		r.Issues = append(r.Issues, "Missing usage section")
		r.Score -= penaltyMissingUsage
	}

	if strings.Contains(text, `\`) && strings.Contains(text, `C:\`) {
		r.Issues = append(r.Issues, "Contains Windows-style paths (use Unix /)")
		r.Score -= penaltyWindowsPaths
	}

	r.Score = clamp(r.Score, types.MaxStructure)
	return r
}

// CheckAntiPatterns scores time-sensitive wording and mixed terminology
// (max 1.0). Both penalties can apply; the result never drops below 0.
//
// The terminology check fires on any co-occurrence of "skill" and "plugin",
// including inside code fences and longer words.
func CheckAntiPatterns(text string) types.CheckResult {
	r := types.CheckResult{Score: types.MaxAntiPatterns}

	for _, p := range timeSensitivePatterns {
		if p.MatchString(text) {
			r.Issues = append(r.Issues, "Contains time-sensitive information")
			r.Score -= penaltyTimeSensitive
			break
		}
	}

	skills := strings.Count(text, "skill") + strings.Count(text, "Skill")
	plugins := strings.Count(text, "plugin") + strings.Count(text, "Plugin")
	if skills > 0 && plugins > 0 {
		r.Issues = append(r.Issues, "Inconsistent terminology (skill vs plugin)")
		r.Score -= penaltyTerminology
	}

	r.Score = clamp(r.Score, types.MaxAntiPatterns)
	return r
}

// CountCodeBlocks returns the number of fenced code blocks opened in text.
// Fence lines alternate between opening and closing a block.
func CountCodeBlocks(text string) int {
	blocks := 0
	open := false
	for range codeFencePattern.FindAllStringIndex(text, -1) {
		if !open {
			blocks++
		}
		open = !open
	}
	return blocks
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// clamp bounds score into [0, limit].
func clamp(score, limit float64) float64 {
	return min(max(score, 0), limit)
}
