// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the skillscore CLI.
// The root command scores one SKILL.md; subcommands scan a tree of skills,
// query the score history, and describe the checks.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/skillscore/internal/logger"
	"github.com/pdiddy/skillscore/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const usageLine = "Usage: skillscore <path-to-SKILL.md>"

// errUsage is returned when the root command is not given exactly one path.
var errUsage = errors.New("expected exactly one path")

// exitError carries a non-zero exit status that needs no message, such as a
// score below the threshold.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// appConfig holds the configuration resolved before any command runs.
var appConfig = types.DefaultConfig()

// configErr is set when an explicitly requested config file cannot be read.
var configErr error

// rootCmd is the base command for the skillscore CLI.
var rootCmd = &cobra.Command{
	Use:   "skillscore <path-to-SKILL.md>",
	Short: "Score the quality of a SKILL.md document",
	Long: `skillscore statically inspects a SKILL.md document and prints a 0-10
quality score followed by the issues it found.

Six checks inspect the frontmatter description and name, the document length,
the number of code examples, the presence of overview and usage sections, and
common anti-patterns. Five further criteria are credited as a fixed bonus.

The exit status is 0 when the score meets --min-score (default 8.0) and 1
otherwise, so skillscore can gate a commit or a CI job.`,
	Args:          exactlyOnePath,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := logger.SetLogLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("setting log level: %w", err)
		}
		logger.SetLogFormat(cfg.Log.Format)
		if f := viper.ConfigFileUsed(); f != "" {
			logger.G(cmd.Context()).WithField("file", f).Debug("using config file")
		}
		appConfig = cfg
		return nil
	},
	RunE: runCheck,
}

func exactlyOnePath(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := types.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./skillscore.yaml or ~/.config/skillscore/config.yaml)")
	pf.String("format", string(defaults.Format), "output format: text, json, or yaml")
	pf.Float64("min-score", defaults.MinScore, "minimum passing score")
	pf.String("history-dir", defaults.History.Dir, "directory holding the score history database")
	pf.String("log-level", defaults.Log.Level, "log level: debug, info, warn, error")
	pf.String("log-format", defaults.Log.Format, "log format: text or json")
}

// flagBindings maps config keys to the persistent flags that override them.
var flagBindings = map[string]string{
	"format":      "format",
	"min_score":   "min-score",
	"history.dir": "history-dir",
	"log.level":   "log-level",
	"log.format":  "log-format",
}

func initConfig() {
	setDefaults(types.DefaultConfig())

	for key, flag := range flagBindings {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			configErr = fmt.Errorf("binding flag %s: %w", flag, err)
			return
		}
	}
	if err := viper.BindPFlag("scan.workers", scanCmd.Flags().Lookup("workers")); err != nil {
		configErr = fmt.Errorf("binding flag workers: %w", err)
		return
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("skillscore")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "skillscore"))
		}
	}

	viper.SetEnvPrefix("SKILLSCORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}
}

// setDefaults registers every config key so that environment variables are
// honoured for keys without a flag.
func setDefaults(d types.Config) {
	viper.SetDefault("min_score", d.MinScore)
	viper.SetDefault("format", string(d.Format))
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
	viper.SetDefault("scan.workers", d.Scan.Workers)
	viper.SetDefault("scan.skip_dirs", d.Scan.SkipDirs)
	viper.SetDefault("history.dir", d.History.Dir)
	viper.SetDefault("history.max_results", d.History.MaxResults)
}

// loadConfig decodes the merged flag, env, file, and default settings.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if !cfg.Format.Valid() {
		return cfg, fmt.Errorf("unsupported format %q: use text, json, or yaml", cfg.Format)
	}
	return cfg, nil
}

// run executes the CLI with args and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	configErr = nil
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return exitCode(rootCmd.ExecuteContext(ctx), stderr)
}

// exitCode maps a command error to an exit status, printing the message
// unless the error is a silent exitError.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.code
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, usageLine)
	default:
		fmt.Fprintln(stderr, "Error:", err)
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
