package cmd

import (
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <card> [card...]",
	Aliases: []string{"rd", "remove_discard"},
	Short:   "Remove cards from the discard pile",
	Long: `Take each named card out of the discard pile, for effects that remove a
card from the game and for correcting a draw that was recorded by mistake.
A card the discard does not hold is quietly skipped.`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeCards,
	RunE:              runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	tracker, cleanup := newTracker()
	defer cleanup()

	state, err := tracker.RemoveDiscard(cmd.Context(), normalizeArgs(args))
	if err != nil {
		return err
	}
	printState(state)
	return nil
}
