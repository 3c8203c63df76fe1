//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main contains Mage build targets for skillscore developer tooling.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/skillscore/internal/report"
	"github.com/pdiddy/skillscore/internal/scan"
	"github.com/pdiddy/skillscore/internal/skillfile"
	"github.com/pdiddy/skillscore/pkg/types"
)

const (
	binDir  = "bin"
	binName = "skillscore"
	cmdPkg  = "./cmd/skillscore"
)

// Build compiles the CLI binary into bin/, stamping the version from
// SKILLSCORE_VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	args := []string{"build", "-o", out}
	if v := os.Getenv("SKILLSCORE_VERSION"); v != "" {
		args = append(args, "-ldflags", "-X main.version="+v)
	}
	args = append(args, cmdPkg)
	if err := sh.RunV("go", args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// CI vets, tests, and builds.
func CI() {
	mg.SerialDeps(Vet, Test, Build)
}

// Check scores every SKILL.md under SKILLS_DIR (default ".") and fails when
// any of them is below the pass threshold.
func Check(ctx context.Context) error {
	root := os.Getenv("SKILLS_DIR")
	if root == "" {
		root = "."
	}

	cfg := types.DefaultConfig()
	files, err := skillfile.Discover(root, skillfile.DiscoverOptions{SkipDirs: cfg.Scan.SkipDirs})
	if err != nil {
		return err
	}
	results, err := scan.Run(ctx, files, cfg.Scan)
	if err != nil {
		return err
	}
	if err := report.WriteScan(os.Stdout, results, cfg.MinScore, types.FormatText); err != nil {
		return err
	}

	summary := scan.Summarize(results, cfg.MinScore)
	if !summary.OK() {
		return mg.Fatalf(1, "%d skill(s) below %.1f, %d unreadable", summary.Failed, cfg.MinScore, summary.Errors)
	}
	return nil
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// walkProject visits regular files below root, skipping hidden directories
// and the reference tree.
func walkProject(root string, visit func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		return visit(path)
	})
}

// countGoLines counts non-blank lines in Go files. If testOnly is true, count
// only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := walkProject(root, func(path string) error {
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countDocWords counts words in Markdown and YAML files.
func countDocWords(root string) (int, error) {
	total := 0
	err := walkProject(root, func(path string) error {
		switch filepath.Ext(path) {
		case ".md", ".yaml", ".yml":
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(bytes.Fields(data))
		return nil
	})
	return total, err
}
