// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects how reports are rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Valid reports whether f is a known output format.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a logrus level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ScanConfig holds settings for scanning a directory tree of skills.
type ScanConfig struct {
	// Workers bounds the number of files scored concurrently. Zero uses the CPU count.
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// SkipDirs lists directory names that are never descended into.
	// Hidden directories are always skipped.
	SkipDirs []string `json:"skip_dirs" yaml:"skip_dirs" mapstructure:"skip_dirs"`
}

// HistoryConfig holds settings for the score history store.
type HistoryConfig struct {
	// Dir is the directory holding history.db and exports (default ".skillscore").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of runs returned by list queries (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all skillscore settings.
type Config struct {
	// MinScore is the pass threshold (default PassThreshold).
	MinScore float64 `json:"min_score" yaml:"min_score" mapstructure:"min_score"`

	// Format is the report output format.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Scan    ScanConfig    `json:"scan" yaml:"scan" mapstructure:"scan"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}

// DefaultSkipDirs are the directory names a scan ignores besides hidden ones.
var DefaultSkipDirs = []string{"node_modules", "scripts"}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		MinScore: PassThreshold,
		Format:   FormatText,
		Log:      LogConfig{Level: "warn", Format: "text"},
		Scan:     ScanConfig{SkipDirs: append([]string(nil), DefaultSkipDirs...)},
		History:  HistoryConfig{Dir: ".skillscore", MaxResults: 20},
	}
}
