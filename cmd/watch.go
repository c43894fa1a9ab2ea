package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/outbreak/internal/deck/infrastructure"
	"github.com/zjrosen/outbreak/internal/mode/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live full-screen view of the deck state",
	Long: `Open a full-screen view that refreshes whenever another invocation
changes the working snapshot. Meant for a second terminal propped up
next to the board.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	return watch.Run(infrastructure.NewFileSnapshotStore(), cfg.StatePath(), cfg.Watch.Debounce)
}
