// Package cmd wires the outbreak command tree.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/outbreak/internal/cards"
	"github.com/zjrosen/outbreak/internal/config"
	"github.com/zjrosen/outbreak/internal/deck/application"
	"github.com/zjrosen/outbreak/internal/deck/domain"
	"github.com/zjrosen/outbreak/internal/deck/infrastructure"
	"github.com/zjrosen/outbreak/internal/infrastructure/sqlite"
	"github.com/zjrosen/outbreak/internal/log"
	"github.com/zjrosen/outbreak/internal/trace"
	"github.com/zjrosen/outbreak/internal/ui/deckview"
	"github.com/zjrosen/outbreak/internal/ui/styles"
)

var (
	cfg     config.Config
	cfgFile string

	logCloser io.Closer
	traceStop func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "outbreak",
	Short: "Track the infection deck of a cooperative outbreak board game",
	Long: `outbreak tracks the infection deck of a cooperative outbreak board game.

The deck is modeled as a stack of segments: every epidemic shuffles the
discard pile back onto the top, so the cards that can come up next are
always a known set. Record draws as they happen at the table and print
the state whenever the group needs to reason about the odds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if cfg.Log.File != "" {
			level, err := log.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			closer, err := log.InitFile(cfg.Log.File, level)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			logCloser = closer
		}
		log.Debug(log.CatConfig, "Config loaded", "state_dir", cfg.StateDir, "history", cfg.History.Enabled)
		styles.ApplyColorProfile()
		stop, err := trace.Init(cmd.Context(), cfg.Trace)
		if err != nil {
			return err
		}
		traceStop = stop
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default ./config.yaml, then ~/.config/outbreak/config.yaml)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := rootCmd.Execute()
	shutdownAmbient()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// shutdownAmbient flushes pending spans and closes the log sink.
func shutdownAmbient() {
	if traceStop != nil {
		_ = traceStop(context.Background())
		traceStop = nil
	}
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// loadConfig resolves configuration: defaults first, then the config file,
// then OUTBREAK_* environment variables. A missing file is only an error
// when --config named it explicitly.
func loadConfig() error {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "outbreak"))
		}
	}
	v.SetEnvPrefix("OUTBREAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	seedDefaults(v)

	cfg = config.Defaults()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// seedDefaults registers every config key with viper. Environment overrides
// only apply to keys viper knows about, so each key is listed even though
// the values repeat config.Defaults.
func seedDefaults(v *viper.Viper) {
	def := config.Defaults()
	v.SetDefault("state_dir", def.StateDir)
	v.SetDefault("state_file", def.StateFile)
	v.SetDefault("save_file", def.SaveFile)
	v.SetDefault("cards_file", def.CardsFile)
	v.SetDefault("history.enabled", def.History.Enabled)
	v.SetDefault("history.file", def.History.File)
	v.SetDefault("watch.debounce", def.Watch.Debounce)
	v.SetDefault("trace.enabled", def.Trace.Enabled)
	v.SetDefault("trace.exporter", def.Trace.Exporter)
	v.SetDefault("trace.endpoint", def.Trace.Endpoint)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.level", def.Log.Level)
}

// newTracker builds the tracker over the configured snapshot paths. The
// returned cleanup closes the history database when one was opened. A
// ledger that cannot be opened downgrades to untracked mutations instead
// of blocking the game.
func newTracker() (*application.Tracker, func()) {
	store := infrastructure.NewFileSnapshotStore()

	var recorder application.EventRecorder
	cleanup := func() {}
	if cfg.History.Enabled {
		db, err := sqlite.NewDB(cfg.HistoryPath())
		if err != nil {
			log.Warn(log.CatDB, "History ledger unavailable", "path", cfg.HistoryPath(), "error", err.Error())
		} else {
			recorder = sqlite.NewRecorder(db.EventRepository())
			cleanup = func() { _ = db.Close() }
		}
	}

	return application.NewTracker(store, recorder, cfg.StatePath(), cfg.SavePath()), cleanup
}

// printState writes the rendered deck state to stdout.
func printState(state *domain.DeckState) {
	fmt.Print(deckview.Render(state))
}

// normalizeArgs canonicalizes card names given on the command line.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		out = append(out, cards.Normalize(arg))
	}
	return out
}

// completeCards suggests catalog entries for shell completion.
func completeCards(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return cards.Suggestions(cfg.CardsPath(), toComplete), cobra.ShellCompDirectiveNoFileComp
}
