// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/skillscore/internal/logger"
	"github.com/pdiddy/skillscore/internal/report"
	"github.com/pdiddy/skillscore/internal/scan"
	"github.com/pdiddy/skillscore/internal/skillfile"
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Score every SKILL.md below a directory",
	Long: `Scan walks dir (default ".") for SKILL.md files, skipping hidden
directories and the configured skip list (node_modules and scripts by
default), and scores them concurrently.

It prints one row per skill and a pass summary. The exit status is 1 when any
skill scores below --min-score or cannot be read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	ctx := cmd.Context()

	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	pattern, _ := cmd.Flags().GetString("pattern")

	files, err := skillfile.Discover(root, skillfile.DiscoverOptions{
		Pattern:  pattern,
		SkipDirs: cfg.Scan.SkipDirs,
	})
	if err != nil {
		return err
	}
	logger.G(ctx).WithField("root", root).WithField("files", len(files)).Debug("discovered skills")

	results, err := scan.Run(ctx, files, cfg.Scan)
	if err != nil {
		return err
	}

	if err := report.WriteScan(cmd.OutOrStdout(), results, cfg.MinScore, cfg.Format); err != nil {
		return err
	}

	if record, _ := cmd.Flags().GetBool("record"); record {
		if reports := scan.Reports(results); len(reports) > 0 {
			if err := recordRuns(ctx, cfg, reports); err != nil {
				return err
			}
		}
	}

	if !scan.Summarize(results, cfg.MinScore).OK() {
		return &exitError{code: 1}
	}
	return nil
}

func init() {
	scanCmd.Flags().String("pattern", skillfile.DefaultPattern, "glob of files to score, relative to dir")
	scanCmd.Flags().Int("workers", 0, "files scored concurrently (0 = number of CPUs)")
	scanCmd.Flags().Bool("record", false, "append every run to the score history")

	rootCmd.AddCommand(scanCmd)
}
