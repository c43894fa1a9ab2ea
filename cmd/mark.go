package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/outbreak/internal/deck/application"
	"github.com/zjrosen/outbreak/internal/ui/styles"
)

var markColor string

var markCmd = &cobra.Command{
	Use:   "mark --color <color> <card> [card...]",
	Short: "Color cards wherever they appear, or clear marks with --color none",
	Long: `Annotate cards with a color so they stand out in every rendering. Marks
survive draws and shuffles until cleared with --color none; clearing a
card that carries no mark is an error so typos surface immediately.`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeCards,
	RunE:              runMark,
}

func init() {
	markCmd.Flags().StringVarP(&markColor, "color", "c", "", `mark color, or "none" to clear`)
	_ = markCmd.MarkFlagRequired("color")
	_ = markCmd.RegisterFlagCompletionFunc("color", completeColors)
	rootCmd.AddCommand(markCmd)
}

func runMark(cmd *cobra.Command, args []string) error {
	tracker, cleanup := newTracker()
	defer cleanup()

	color := strings.ToLower(strings.TrimSpace(markColor))
	state, err := tracker.Mark(cmd.Context(), color, normalizeArgs(args))
	if err != nil {
		return err
	}
	printState(state)
	return nil
}

func completeColors(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	suggestions := append(styles.CardColors(), application.ColorNone)
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}
