package cmd

import (
	"github.com/spf13/cobra"
)

var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Shuffle the discard pile onto the top of the deck",
	Long: `Record an epidemic's intensify step: the discard pile becomes a new
topmost deck. Until that segment is drawn through, only its cards can
come up.`,
	Args: cobra.NoArgs,
	RunE: runShuffle,
}

func init() {
	rootCmd.AddCommand(shuffleCmd)
}

func runShuffle(cmd *cobra.Command, _ []string) error {
	tracker, cleanup := newTracker()
	defer cleanup()

	state, err := tracker.Shuffle(cmd.Context())
	if err != nil {
		return err
	}
	printState(state)
	return nil
}
