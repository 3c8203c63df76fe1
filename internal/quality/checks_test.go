// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/skillscore/pkg/types"
)

const goodDescription = "Extracts tables and text from PDF files. Use when the task involves reading PDF documents."

func TestCheckDescription(t *testing.T) {
	tests := []struct {
		name       string
		fm         types.Frontmatter
		wantScore  float64
		wantIssues []string
	}{
		{
			name:       "missing",
			fm:         types.Frontmatter{},
			wantScore:  0,
			wantIssues: []string{"Missing description"},
		},
		{
			name:       "empty value",
			fm:         types.Frontmatter{"description": ""},
			wantScore:  0,
			wantIssues: []string{"Missing description"},
		},
		{
			name:      "all sub-checks pass",
			fm:        types.Frontmatter{"description": goodDescription},
			wantScore: 2.0,
		},
		{
			name:      "too short",
			fm:        types.Frontmatter{"description": "Reads PDFs. Use when parsing."},
			wantScore: 1.5,
			wantIssues: []string{
				"Description too short (< 50 chars)",
			},
		},
		{
			name:      "quoted vague short description",
			fm:        types.Frontmatter{"description": `"A tool for parsing files"`},
			wantScore: 0.5,
			wantIssues: []string{
				"Description too short (< 50 chars)",
				"Description contains vague phrases",
				"Description missing 'when to use' guidance",
			},
		},
		{
			name:      "vague phrase is case-insensitive",
			fm:        types.Frontmatter{"description": "HELPS WITH spreadsheets of every shape and size. Use when editing sheets."},
			wantScore: 1.5,
			wantIssues: []string{
				"Description contains vague phrases",
			},
		},
		{
			name:      "second person",
			fm:        types.Frontmatter{"description": "Formats your Go code with gofmt and goimports. Use when code is saved."},
			wantScore: 1.5,
			wantIssues: []string{
				"Description should be third person",
			},
		},
		{
			name:      "first person",
			fm:        types.Frontmatter{"description": "I'm the formatter for Go source files in this repository when saving."},
			wantScore: 1.5,
			wantIssues: []string{
				"Description should be third person",
			},
		},
		{
			name: "every sub-check fails",
			fm:   types.Frontmatter{"description": "Useful for you"},
			wantIssues: []string{
				"Description too short (< 50 chars)",
				"Description contains vague phrases",
				"Description missing 'when to use' guidance",
				"Description should be third person",
			},
		},
		{
			name:      "length counts characters not bytes",
			fm:        types.Frontmatter{"description": strings.Repeat("é", 30) + " when it runs"},
			wantScore: 1.5,
			wantIssues: []string{
				"Description too short (< 50 chars)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckDescription(tt.fm)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantIssues, got.Issues)
		})
	}
}

func TestCheckName(t *testing.T) {
	tests := []struct {
		name       string
		value      *string
		wantScore  float64
		wantIssues []string
	}{
		{name: "missing", wantScore: 0, wantIssues: []string{"Missing name"}},
		{name: "empty", value: ptr(""), wantScore: 0, wantIssues: []string{"Missing name"}},
		{name: "lowercase with hyphen", value: ptr("pdf-tools"), wantScore: 0.5},
		{name: "no hyphen", value: ptr("pdftools"), wantScore: 0.25, wantIssues: []string{"Name should be lowercase-with-hyphens"}},
		{name: "uppercase", value: ptr("PDF-Tools"), wantScore: 0.25, wantIssues: []string{"Name should be lowercase-with-hyphens"}},
		{
			name:      "generic word",
			value:     ptr("helper"),
			wantScore: 0,
			wantIssues: []string{
				"Name should be lowercase-with-hyphens",
				"Name too generic",
			},
		},
		{name: "generic match is exact", value: ptr("skill-helper"), wantScore: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := types.Frontmatter{}
			if tt.value != nil {
				fm["name"] = *tt.value
			}
			got := CheckName(fm)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantIssues, got.Issues)
		})
	}
}

func TestCheckConcisenessBoundaries(t *testing.T) {
	tests := []struct {
		lines      int
		wantScore  float64
		wantIssues []string
	}{
		{lines: 0, wantScore: 1.5},
		{lines: 299, wantScore: 1.5},
		{lines: 300, wantScore: 1.0},
		{lines: 499, wantScore: 1.0},
		{lines: 500, wantScore: 0.5, wantIssues: []string{"SKILL.md is 500 lines (recommend <500)"}},
		{lines: 799, wantScore: 0.5, wantIssues: []string{"SKILL.md is 799 lines (recommend <500)"}},
		{lines: 800, wantScore: 0, wantIssues: []string{"SKILL.md is 800 lines (way over 500 limit)"}},
		{lines: 1200, wantScore: 0, wantIssues: []string{"SKILL.md is 1200 lines (way over 500 limit)"}},
	}

	for _, tt := range tests {
		got := CheckConciseness(strings.Repeat("line\n", tt.lines))
		assert.InDelta(t, tt.wantScore, got.Score, 1e-9, "lines=%d", tt.lines)
		assert.Equal(t, tt.wantIssues, got.Issues, "lines=%d", tt.lines)
	}
}

func TestCheckConcisenessCountsNewlinesOnly(t *testing.T) {
	// 299 newlines plus a final unterminated line still counts as 299.
	got := CheckConciseness(strings.Repeat("x\n", 299) + "tail without newline")
	assert.Equal(t, 1.5, got.Score)
}

// codeBlock returns a complete fenced block with the given language tag.
func codeBlock(lang string) string {
	return "```" + lang + "\nfmt.Println(1)\n```\n"
}

func TestCheckExamples(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantScore  float64
		wantIssues []string
	}{
		{name: "none", text: "# Title\nno code here\n", wantScore: 0, wantIssues: []string{"No code examples found"}},
		{name: "one", text: codeBlock("go"), wantScore: 0.5, wantIssues: []string{"Only 1 code examples (recommend 5+)"}},
		{name: "two", text: codeBlock("go") + codeBlock(""), wantScore: 0.5, wantIssues: []string{"Only 2 code examples (recommend 5+)"}},
		{name: "three", text: codeBlock("go") + codeBlock("bash") + codeBlock(""), wantScore: 1.0},
		{name: "many", text: strings.Repeat(codeBlock("python"), 6), wantScore: 1.0},
		{name: "fence without newline is not an opening", text: "inline ```go code``` only", wantScore: 0, wantIssues: []string{"No code examples found"}},
		{name: "tag with punctuation is not an opening", text: "```c++\nint x;\n```", wantScore: 0, wantIssues: []string{"No code examples found"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckExamples(tt.text)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantIssues, got.Issues)
		})
	}
}

func TestCountCodeBlocks(t *testing.T) {
	assert.Equal(t, 0, CountCodeBlocks(""))
	assert.Equal(t, 1, CountCodeBlocks("```yaml\na: 1\n```\n"))
	assert.Equal(t, 1, CountCodeBlocks("```yaml\na: 1\n```"), "unterminated final fence")
	assert.Equal(t, 2, CountCodeBlocks(codeBlock("go")+"text\n"+codeBlock("sh")))
	assert.Equal(t, 1, CountCodeBlocks("```\nopen block never closed\n"))
}

func TestCheckStructure(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantScore  float64
		wantIssues []string
	}{
		{name: "overview and usage", text: "## Overview\n...\n## Usage\n...", wantScore: 1.0},
		{name: "what and how variants", text: "## What it does\n## How to use\n", wantScore: 1.0},
		{name: "missing overview", text: "## Usage\n", wantScore: 0.7, wantIssues: []string{"Missing overview section"}},
		{name: "missing usage", text: "## Overview\n", wantScore: 0.7, wantIssues: []string{"Missing usage section"}},
		{
			name:      "empty text stacks both penalties",
			text:      "",
			wantScore: 0.4,
			wantIssues: []string{
				"Missing overview section",
				"Missing usage section",
			},
		},
		{
			name:       "windows path",
			text:       "## Overview\n## Usage\nRun C:\\tools\\fmt.exe\n",
			wantScore:  0.6,
			wantIssues: []string{"Contains Windows-style paths (use Unix /)"},
		},
		{
			name:      "every penalty floors at zero",
			text:      `C:\Users`,
			wantScore: 0,
			wantIssues: []string{
				"Missing overview section",
				"Missing usage section",
				"Contains Windows-style paths (use Unix /)",
			},
		},
		{name: "backslash without drive is fine", text: "## Overview\n## Usage\nescape \\n here\n", wantScore: 1.0},
		{name: "heading match is case-sensitive", text: "## overview\n## usage\n", wantScore: 0.4, wantIssues: []string{"Missing overview section", "Missing usage section"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckStructure(tt.text)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantIssues, got.Issues)
			assert.GreaterOrEqual(t, got.Score, 0.0)
			assert.LessOrEqual(t, got.Score, 1.0)
		})
	}
}

func TestCheckAntiPatterns(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantScore  float64
		wantIssues []string
	}{
		{name: "clean", text: "Formats Go code.", wantScore: 1.0},
		{name: "iso date", text: "Released 2024-03-01.", wantScore: 0.5, wantIssues: []string{"Contains time-sensitive information"}},
		{name: "last updated", text: "Last Updated: March", wantScore: 0.5, wantIssues: []string{"Contains time-sensitive information"}},
		{name: "as of year", text: "As of 2023 the API changed.", wantScore: 0.5, wantIssues: []string{"Contains time-sensitive information"}},
		{name: "several time cues count once", text: "2024-01-01, last updated, as of 2024", wantScore: 0.5, wantIssues: []string{"Contains time-sensitive information"}},
		{name: "skill and plugin", text: "This Skill ships as a plugin.", wantScore: 0.5, wantIssues: []string{"Inconsistent terminology (skill vs plugin)"}},
		{name: "skill only", text: "This skill formats code.", wantScore: 1.0},
		{name: "plugin only", text: "This Plugin formats code.", wantScore: 1.0},
		{name: "terminology count is case-sensitive", text: "SKILL and PLUGIN", wantScore: 1.0},
		{name: "substring inside longer word", text: "skills and plugins", wantScore: 0.5, wantIssues: []string{"Inconsistent terminology (skill vs plugin)"}},
		{
			name:      "both penalties reach zero",
			text:      "skill plugin as of 2025",
			wantScore: 0,
			wantIssues: []string{
				"Contains time-sensitive information",
				"Inconsistent terminology (skill vs plugin)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckAntiPatterns(tt.text)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantIssues, got.Issues)
		})
	}
}

func ptr(s string) *string { return &s }
