package cmd

import (
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Copy the working state into the save slot",
	Long: `Snapshot the working state into the single save slot, overwriting
whatever the slot held. Take one before a risky stretch of turns.`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Restore the working state from the save slot",
	Args:  cobra.NoArgs,
	RunE:  runLoad,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
}

func runSave(cmd *cobra.Command, _ []string) error {
	tracker, cleanup := newTracker()
	defer cleanup()

	state, err := tracker.SaveSlot(cmd.Context())
	if err != nil {
		return err
	}
	printState(state)
	return nil
}

func runLoad(cmd *cobra.Command, _ []string) error {
	tracker, cleanup := newTracker()
	defer cleanup()

	state, err := tracker.LoadSlot(cmd.Context())
	if err != nil {
		return err
	}
	printState(state)
	return nil
}
