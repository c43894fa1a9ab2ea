package cmd

import (
	"github.com/spf13/cobra"
)

var drawCmd = &cobra.Command{
	Use:     "draw <card> [card...]",
	Aliases: []string{"dc", "draw_card"},
	Short:   "Draw cards from the topmost deck onto the discard pile",
	Long: `Move each named card from the topmost deck to the discard pile, in the
order given. A card missing from the topmost deck is discarded anyway, so
a mis-tracked game can catch back up with the table.`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeCards,
	RunE:              runDraw,
}

func init() {
	rootCmd.AddCommand(drawCmd)
}

func runDraw(cmd *cobra.Command, args []string) error {
	tracker, cleanup := newTracker()
	defer cleanup()

	state, err := tracker.Draw(cmd.Context(), normalizeArgs(args))
	if err != nil {
		return err
	}
	printState(state)
	return nil
}
