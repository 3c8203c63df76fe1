// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/skillscore/pkg/types"
)

func TestWeightsSumToMaxScore(t *testing.T) {
	total := 0.0
	for _, c := range Checkers() {
		total += c.Max
	}
	total += FixedBonusTotal()
	assert.InDelta(t, types.MaxScore, total, 1e-9)
	assert.InDelta(t, 3.0, FixedBonusTotal(), 1e-9)
}

func TestCheckerOrder(t *testing.T) {
	var names []string
	for _, c := range Checkers() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"Description", "Name", "Conciseness", "Examples", "Structure", "Anti-patterns",
	}, names)
}

func TestCheckersReturnsCopy(t *testing.T) {
	cs := Checkers()
	cs[0].Name = "changed"
	assert.Equal(t, types.CheckDescription, Checkers()[0].Name)

	bs := FixedBonuses()
	bs[0].Points = 99
	assert.InDelta(t, 3.0, FixedBonusTotal(), 1e-9)
}

func TestScoreEmptyDocument(t *testing.T) {
	report := Score("")

	assert.Equal(t, 5.9, report.Score)
	assert.False(t, report.Passed(types.PassThreshold))
	assert.Equal(t, []string{
		"Description: Missing description",
		"Name: Missing name",
		"Examples: No code examples found",
		"Structure: Missing overview section",
		"Structure: Missing usage section",
	}, report.Issues)

	want := map[string]float64{
		"Description":   0.0,
		"Name":          0.0,
		"Conciseness":   1.5,
		"Examples":      0.0,
		"Structure":     0.4,
		"Anti-patterns": 1.0,
	}
	require.Len(t, report.Checks, 6)
	for _, c := range report.Checks {
		assert.Equal(t, want[c.Name], c.Score, c.Name)
	}
}

// endToEndDoc builds the document from the worked example: a lowercase
// hyphenated name, a short vague quoted description, one code block, both
// required headings, and 250 newline characters in total.
func endToEndDoc() string {
	head := "---\nname: my-tool\ndescription: \"A tool for parsing files\"\n---\n" +
		"# My Tool\n\n## Overview\n\nParses files.\n\n## Usage\n\n" +
		"```bash\nmy-tool input.txt\n```\n"
	pad := 250 - strings.Count(head, "\n")
	return head + strings.Repeat("\n", pad)
}

func TestScoreEndToEnd(t *testing.T) {
	doc := endToEndDoc()
	require.Equal(t, 250, strings.Count(doc, "\n"))

	report := Score(doc)

	want := map[string]float64{
		"Description":   0.5,
		"Name":          0.5,
		"Conciseness":   1.5,
		"Examples":      0.5,
		"Structure":     1.0,
		"Anti-patterns": 1.0,
	}
	for _, c := range report.Checks {
		assert.Equal(t, want[c.Name], c.Score, c.Name)
	}
	assert.Equal(t, 8.0, report.Score)
	assert.True(t, report.Passed(types.PassThreshold))
	assert.Equal(t, "my-tool", report.Name)
	assert.Equal(t, []string{
		"Description: Description too short (< 50 chars)",
		"Description: Description contains vague phrases",
		"Description: Description missing 'when to use' guidance",
		"Examples: Only 1 code examples (recommend 5+)",
	}, report.Issues)
}

func TestScorePerfectDocument(t *testing.T) {
	var b strings.Builder
	b.WriteString("---\nname: pdf-tools\ndescription: " + goodDescription + "\n---\n")
	b.WriteString("## Overview\nExtracts text.\n## Usage\n")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "```bash\npdf-tools extract %d.pdf\n```\n", i)
	}

	report := Score(b.String())
	assert.Equal(t, 10.0, report.Score)
	assert.Empty(t, report.Issues)
	assert.NotNil(t, report.Issues)
}

func TestScoreIsSumOfChecksPlusBonus(t *testing.T) {
	docs := []string{
		"",
		endToEndDoc(),
		"---\nname: Helper\n---\nskill plugin 2024-01-01 C:\\x\n",
		strings.Repeat("line\n", 900),
		"---\ndescription: Use when you need it\nname: a-b\n---\n## What\n## How\n" + strings.Repeat(codeBlock("go"), 4),
	}

	for i, doc := range docs {
		report := Score(doc)
		sum := 0.0
		for _, c := range report.Checks {
			sum += c.Score
		}
		assert.InDelta(t, roundTo(sum+3.0, 1), report.Score, 1e-9, "doc %d", i)
		assert.GreaterOrEqual(t, report.Score, 0.0, "doc %d", i)
		assert.LessOrEqual(t, report.Score, 10.0, "doc %d", i)
	}
}

func TestScoreIssuesArePrefixedInCheckOrder(t *testing.T) {
	report := Score("---\nname: Helper\n---\nskill plugin 2024-01-01 C:\\x\n")

	assert.Equal(t, []string{
		"Description: Missing description",
		"Name: Name should be lowercase-with-hyphens",
		"Examples: No code examples found",
		"Structure: Missing overview section",
		"Structure: Missing usage section",
		"Structure: Contains Windows-style paths (use Unix /)",
		"Anti-patterns: Contains time-sensitive information",
		"Anti-patterns: Inconsistent terminology (skill vs plugin)",
	}, report.Issues)
	// 0 + 0.25 + 1.5 + 0 + 0 + 0 + 3.0 = 4.75, a tie that rounds to even.
	assert.Equal(t, 4.8, report.Score)
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{5.9, 5.9},
		{0.39999999999999997 + 5.5, 5.9},
		{7.25, 7.2},
		{7.35, 7.3},
		{8.05, 8.1},
		{7.75, 7.8},
		{10.0, 10.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundTo(tt.in, 1), "roundTo(%v)", tt.in)
	}
}
