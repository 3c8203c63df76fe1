// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frontmatter pulls the flat key/value block out of the head of a
// skill document. The parser is line-oriented and lenient: it never fails,
// it only recognizes fewer keys when the block is malformed.
package frontmatter

import (
	"regexp"
	"strings"

	"github.com/pdiddy/skillscore/pkg/types"
)

// blockPattern matches a `---` delimited block at the very start of the
// text. The interior is non-greedy so the first closing line ends the block.
var blockPattern = regexp.MustCompile(`(?s)\A---\s*\n(.*?)\n---\s*\n`)

// Extract returns the key/value pairs of the leading frontmatter block.
// Text without a block yields an empty, non-nil mapping. Each line holding a
// colon is split on its first colon; both halves are trimmed and later
// duplicates overwrite earlier ones. Lines without a colon are skipped.
func Extract(text string) types.Frontmatter {
	fm := types.Frontmatter{}

	m := blockPattern.FindStringSubmatch(text)
	if m == nil {
		return fm
	}

	for _, line := range strings.Split(m[1], "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fm[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fm
}
