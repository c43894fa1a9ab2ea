package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/outbreak/internal/deck/infrastructure"
)

var printCmd = &cobra.Command{
	Use:     "print",
	Aliases: []string{"p"},
	Short:   "Print the current deck state",
	Args:    cobra.NoArgs,
	RunE:    runPrint,
}

func init() {
	rootCmd.AddCommand(printCmd)
}

func runPrint(cmd *cobra.Command, _ []string) error {
	store := infrastructure.NewFileSnapshotStore()
	state, err := store.Load(cmd.Context(), cfg.StatePath())
	if err != nil {
		return err
	}
	printState(state)
	return nil
}
