// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/skillscore/internal/history"
	"github.com/pdiddy/skillscore/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the score history (list, latest, trend, export)",
	Long: `History reads the SQLite database of scoring runs kept in --history-dir.
Runs are added by passing --record to the root command or to scan.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(appConfig.History)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), queryOptsFromFlags(cmd))
	if err != nil {
		return err
	}
	return report.WriteRuns(cmd.OutOrStdout(), runs, appConfig.Format)
}

// --- latest subcommand ---

var historyLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recent run of every recorded skill",
	Args:  cobra.NoArgs,
	RunE:  runHistoryLatest,
}

func runHistoryLatest(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(appConfig.History)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Latest(cmd.Context())
	if err != nil {
		return err
	}
	return report.WriteRuns(cmd.OutOrStdout(), runs, appConfig.Format)
}

// --- trend subcommand ---

var historyTrendCmd = &cobra.Command{
	Use:   "trend <path>",
	Short: "Show the score series of one skill with run-to-run deltas",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryTrend,
}

func runHistoryTrend(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(appConfig.History)
	if err != nil {
		return err
	}
	defer store.Close()

	points, err := store.Trend(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return report.WriteTrend(cmd.OutOrStdout(), args[0], points, appConfig.Format)
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to YAML or JSON",
	Long: `Export writes recorded runs (or a filtered subset) to export.yaml or
export.json in the history directory. Supports the same filter flags as list.`,
	Args: cobra.NoArgs,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := history.NewStore(appConfig.History)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command) history.QueryOptions {
	path, _ := cmd.Flags().GetString("path")
	issue, _ := cmd.Flags().GetString("issue")
	failing, _ := cmd.Flags().GetBool("failing")
	limit, _ := cmd.Flags().GetInt("limit")

	return history.QueryOptions{
		Path:        path,
		Issue:       issue,
		FailingOnly: failing,
		MaxResults:  limit,
	}
}

func addQueryFlags(cmd *cobra.Command, limitUsage string) {
	cmd.Flags().String("path", "", "filter by skill path")
	cmd.Flags().String("issue", "", "filter by text contained in an issue")
	cmd.Flags().Bool("failing", false, "only runs below their threshold")
	cmd.Flags().Int("limit", 0, limitUsage)
}

func init() {
	addQueryFlags(historyListCmd, "maximum runs (0 = use history.max_results)")
	addQueryFlags(historyExportCmd, "maximum runs to export (0 = all)")

	// Shadows the persistent --format, which also accepts text.
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyLatestCmd)
	historyCmd.AddCommand(historyTrendCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
