package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/outbreak/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the infection deck reference",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(_ *cobra.Command, _ []string) error {
	out, err := rules.Render(100)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
