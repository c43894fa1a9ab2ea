package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zjrosen/outbreak/internal/deck/application"
	"github.com/zjrosen/outbreak/internal/deck/infrastructure"
	histdomain "github.com/zjrosen/outbreak/internal/history/domain"
	"github.com/zjrosen/outbreak/internal/infrastructure/sqlite"
	"github.com/zjrosen/outbreak/internal/log"
	"github.com/zjrosen/outbreak/internal/ui/styles"
)

var (
	historyLimit int
	historyDiff  bool
	historyAll   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded commands, newest first",
	Long: `List the commands recorded in the history ledger for the current game,
newest first. --diff shows what each command changed in the snapshot,
--all includes earlier games.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Roll the working state back one recorded command",
	Long: `Restore the snapshot taken before the most recent recorded command and
pop that command off the ledger. Repeat to walk further back. The save
slot is untouched.`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum events to show")
	historyCmd.Flags().BoolVar(&historyDiff, "diff", false, "show snapshot changes per event")
	historyCmd.Flags().BoolVar(&historyAll, "all", false, "include events from earlier games")
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(undoCmd)
}

// openLedger connects to the history database, failing when the ledger is
// disabled in config.
func openLedger() (*sqlite.DB, error) {
	if !cfg.History.Enabled {
		return nil, errors.New("history is disabled (set history.enabled in the config)")
	}
	return sqlite.NewDB(cfg.HistoryPath())
}

func runHistory(_ *cobra.Command, _ []string) error {
	db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	repo := db.EventRepository()
	filter := histdomain.ListFilter{Limit: historyLimit}
	if !historyAll {
		gameID, err := repo.CurrentGameID()
		if err != nil {
			return err
		}
		filter.GameID = gameID
	}

	events, err := repo.List(filter)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No recorded commands.")
		return nil
	}

	width := commandColumnWidth(events)
	for _, event := range events {
		line := fmt.Sprintf("%4d  %s  %s  %s",
			event.ID,
			event.CreatedAt.Format("2006-01-02 15:04:05"),
			runewidth.FillRight(event.Command, width),
			event.Args)
		fmt.Println(strings.TrimRight(line, " "))
		if historyDiff {
			printSnapshotDiff(event.Before, event.After)
		}
	}
	return nil
}

func runUndo(cmd *cobra.Command, _ []string) error {
	db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	repo := db.EventRepository()
	event, err := repo.Latest()
	if err != nil {
		if errors.Is(err, histdomain.ErrNoEvents) {
			return errors.New("nothing to undo: the history ledger is empty")
		}
		return err
	}
	if event.Before == "" {
		return fmt.Errorf("cannot undo %q (event %d): no prior snapshot was recorded", event.Command, event.ID)
	}

	state, err := infrastructure.DecodeSnapshot([]byte(event.Before))
	if err != nil {
		return fmt.Errorf("failed to decode prior snapshot: %w", err)
	}

	store := infrastructure.NewFileSnapshotStore()
	tracker := application.NewTracker(store, nil, cfg.StatePath(), cfg.SavePath())
	restored, err := tracker.Restore(cmd.Context(), "undo", state)
	if err != nil {
		return err
	}

	if err := repo.Delete(event.ID); err != nil {
		log.Warn(log.CatDB, "Failed to pop undone event", "id", event.ID, "error", err.Error())
	}

	undone := strings.TrimSpace(event.Command + " " + event.Args)
	fmt.Printf("Undid %q\n\n", undone)
	printState(restored)
	return nil
}

// commandColumnWidth returns the display width of the widest command name.
func commandColumnWidth(events []*histdomain.Event) int {
	width := 0
	for _, event := range events {
		if w := runewidth.StringWidth(event.Command); w > width {
			width = w
		}
	}
	return width
}

// printSnapshotDiff renders the lines that changed between two snapshots,
// indented under the event line.
func printSnapshotDiff(before, after string) {
	if before == after {
		return
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, diff := range diffs {
		var prefix string
		var style lipgloss.Style
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix, style = "+", styles.DiffAddStyle
		case diffmatchpatch.DiffDelete:
			prefix, style = "-", styles.DiffRemoveStyle
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(diff.Text, "\n"), "\n") {
			fmt.Println(style.Render("      " + prefix + " " + line))
		}
	}
}
