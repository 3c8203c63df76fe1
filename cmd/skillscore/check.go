// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/skillscore/internal/history"
	"github.com/pdiddy/skillscore/internal/logger"
	"github.com/pdiddy/skillscore/internal/quality"
	"github.com/pdiddy/skillscore/internal/report"
	"github.com/pdiddy/skillscore/internal/skillfile"
	"github.com/pdiddy/skillscore/pkg/types"
)

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	path := args[0]

	r, err := skillfile.Score(path)
	if err != nil {
		return err
	}
	logger.G(cmd.Context()).WithField("path", path).WithField("score", r.Score).Debug("scored skill")

	out := cmd.OutOrStdout()
	if err := report.Write(out, r, cfg.Format); err != nil {
		return err
	}

	breakdown, _ := cmd.Flags().GetBool("breakdown")
	if breakdown && cfg.Format == types.FormatText {
		fmt.Fprintln(out, "\nBreakdown:")
		if err := report.WriteBreakdown(out, r, quality.FixedBonuses()); err != nil {
			return err
		}
	}

	if record, _ := cmd.Flags().GetBool("record"); record {
		if err := recordRuns(cmd.Context(), cfg, []types.ScoreReport{r}); err != nil {
			return err
		}
	}

	if !r.Passed(cfg.MinScore) {
		return &exitError{code: 1}
	}
	return nil
}

// recordRuns appends reports to the history store.
func recordRuns(ctx context.Context, cfg types.Config, reports []types.ScoreReport) error {
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Record(ctx, reports, cfg.MinScore)
	if err != nil {
		return err
	}
	logger.G(ctx).WithField("runs", n).WithField("dir", cfg.History.Dir).Info("recorded history")
	return nil
}

func init() {
	rootCmd.Flags().Bool("breakdown", false, "print the partial score of every check (text format only)")
	rootCmd.Flags().Bool("record", false, "append the run to the score history")
}
