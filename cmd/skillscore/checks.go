// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/skillscore/internal/quality"
	"github.com/pdiddy/skillscore/pkg/types"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the checks, their weights, and the fixed bonus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var b strings.Builder
		total := 0.0
		for _, c := range quality.Checkers() {
			fmt.Fprintf(&b, "  %-24s %4.2f\n", c.Name, c.Max)
			total += c.Max
		}
		b.WriteString("\nCredited without inspection:\n")
		for _, bonus := range quality.FixedBonuses() {
			fmt.Fprintf(&b, "  %-24s %4.2f\n", bonus.Criterion, bonus.Points)
			total += bonus.Points
		}
		fmt.Fprintf(&b, "\nMaximum score %.1f, pass threshold %.1f\n", total, types.PassThreshold)

		_, err := fmt.Fprint(cmd.OutOrStdout(), "Inspected checks:\n"+b.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(checksCmd)
}
