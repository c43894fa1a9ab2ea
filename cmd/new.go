package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/outbreak/internal/cards"
	"github.com/zjrosen/outbreak/internal/deck/domain"
)

var newManifest string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new game",
	Long: `Reset the working state for a fresh game. With --manifest, the new state
starts from the manifest's full deck composition with its color
annotations applied, and the card catalog used for shell completion is
rewritten from the manifest. Without one the state starts empty and
cards become known as they are drawn.`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newManifest, "manifest", "m", "", "YAML manifest with card names, counts and colors")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
	var initial *domain.DeckState
	if newManifest != "" {
		manifest, err := cards.LoadManifest(newManifest)
		if err != nil {
			return err
		}
		if err := cards.WriteCatalog(cfg.CardsPath(), manifest.Names()); err != nil {
			return fmt.Errorf("failed to write card catalog: %w", err)
		}

		initial = domain.NewDeckState()
		initial.InfectionDecks = [][]string{manifest.Deck()}
		initial.CardColor = manifest.Colors()

		name := manifest.Game
		if name == "" {
			name = newManifest
		}
		fmt.Printf("New game from %s: %d cards in the deck\n\n", name, len(initial.InfectionDecks[0]))
	}

	tracker, cleanup := newTracker()
	defer cleanup()

	state, err := tracker.Reset(cmd.Context(), initial)
	if err != nil {
		return err
	}
	printState(state)
	return nil
}
