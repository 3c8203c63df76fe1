// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package skillfile reads skill documents from disk and discovers them in a
// directory tree. It is the only part of skillscore that touches the
// filesystem on the scoring path; the scorer itself works on text.
package skillfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/skillscore/internal/quality"
	"github.com/pdiddy/skillscore/pkg/types"
)

// FileName is the conventional name of a skill document.
const FileName = "SKILL.md"

// DefaultPattern matches skill documents at any depth below the scan root.
const DefaultPattern = "**/" + FileName

// ErrNotFound is returned when a skill path does not exist.
var ErrNotFound = errors.New("not found")

// Read returns the full text of the skill document at path. A missing path
// yields an error wrapping ErrNotFound.
func Read(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s %w", path, ErrNotFound)
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Score reads the document at path and scores it. The report carries the
// path and the time it was scored.
func Score(path string) (types.ScoreReport, error) {
	text, err := Read(path)
	if err != nil {
		return types.ScoreReport{}, err
	}
	report := quality.Score(text)
	report.Path = path
	report.ScoredAt = time.Now().UTC()
	return report, nil
}

// DiscoverOptions controls which files Discover returns.
type DiscoverOptions struct {
	// Pattern is a doublestar glob matched against slash-separated paths
	// relative to the root. Empty uses DefaultPattern.
	Pattern string

	// SkipDirs lists directory names never descended into. Hidden
	// directories are always skipped.
	SkipDirs []string
}

// Discover returns the skill documents below root in lexical order. When
// root is itself a file it is returned as the only result, whatever its name.
// A missing root yields an error wrapping ErrNotFound.
func Discover(root string, opts DiscoverOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s %w", root, ErrNotFound)
		}
		return nil, fmt.Errorf("checking %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	skip := make(map[string]bool, len(opts.SkipDirs))
	for _, d := range opts.SkipDirs {
		skip[d] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || skip[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
