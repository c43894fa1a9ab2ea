// Package config provides configuration types and defaults for outbreak.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for outbreak.
type Config struct {
	// StateDir is the directory holding the snapshot files, the card
	// catalog, and the history ledger. Relative paths resolve against the
	// working directory of the invocation.
	StateDir  string `mapstructure:"state_dir"`
	StateFile string `mapstructure:"state_file"`
	SaveFile  string `mapstructure:"save_file"`
	CardsFile string `mapstructure:"cards_file"`

	History HistoryConfig `mapstructure:"history"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Trace   TraceConfig   `mapstructure:"trace"`
	Log     LogConfig     `mapstructure:"log"`
}

// HistoryConfig controls the sqlite event ledger behind `history` and `undo`.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	File    string `mapstructure:"file"`
}

// WatchConfig holds settings for the live watch view.
type WatchConfig struct {
	// Debounce coalesces the burst of filesystem events a single snapshot
	// save produces into one reload.
	Debounce time.Duration `mapstructure:"debounce"`
}

// TraceConfig holds OpenTelemetry settings. Tracing is off unless enabled.
type TraceConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects where spans go: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter"`
	// Endpoint is the OTLP gRPC target, used only with the otlp exporter.
	Endpoint string `mapstructure:"endpoint"`
}

// LogConfig controls the debug log sink. An empty File disables logging.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// StatePath returns the path of the working snapshot.
func (c Config) StatePath() string {
	return filepath.Join(c.StateDir, c.StateFile)
}

// SavePath returns the path of the save-slot snapshot.
func (c Config) SavePath() string {
	return filepath.Join(c.StateDir, c.SaveFile)
}

// CardsPath returns the path of the completion catalog.
func (c Config) CardsPath() string {
	return filepath.Join(c.StateDir, c.CardsFile)
}

// HistoryPath returns the path of the sqlite event ledger.
func (c Config) HistoryPath() string {
	return filepath.Join(c.StateDir, c.History.File)
}

// Validate checks the loaded configuration for errors a later stage would
// trip over anyway, so they surface at startup with a config-shaped message.
func (c Config) Validate() error {
	if c.StateFile == "" {
		return fmt.Errorf("state_file is required")
	}
	if c.SaveFile == "" {
		return fmt.Errorf("save_file is required")
	}
	switch c.Trace.Exporter {
	case "stdout", "otlp":
	default:
		return fmt.Errorf("trace.exporter must be \"stdout\" or \"otlp\", got %q", c.Trace.Exporter)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}

// Defaults returns a Config with sensible default values. The tool runs
// with no config file at all: everything lives in the current directory.
func Defaults() Config {
	return Config{
		StateDir:  ".",
		StateFile: "state.json",
		SaveFile:  "save.json",
		CardsFile: "cards.txt",
		History: HistoryConfig{
			Enabled: true,
			File:    "history.db",
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
		Trace: TraceConfig{
			Enabled:  false,
			Exporter: "stdout",
			Endpoint: "localhost:4317",
		},
		Log: LogConfig{
			File:  "",
			Level: "info",
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Outbreak Configuration

# Directory holding the snapshot files, card catalog and history ledger
# (default: current directory)
# state_dir: ~/.outbreak

# Snapshot file names inside state_dir
state_file: state.json
save_file: save.json

# Card catalog used for shell completion (one name per line).
# 'outbreak new --manifest game.yaml' rewrites it from the manifest.
cards_file: cards.txt

# Event ledger behind 'outbreak history' and 'outbreak undo'
history:
  enabled: true
  file: history.db

# Live view settings
watch:
  debounce: 250ms   # coalesce filesystem events into one reload

# Debug logging (disabled unless a file is set)
log:
  # file: outbreak.log
  level: info       # debug, info, warn, error

# OpenTelemetry tracing (off by default)
trace:
  enabled: false
  exporter: stdout  # stdout or otlp
  endpoint: localhost:4317
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
