// Package deckview renders deck state for the terminal.
//
// The layout lists every non-empty infection deck topmost first, each card
// grouped with an occurrence count, then the discard pile. Deck numbering
// follows position in the sequence even when an empty deck is skipped, so a
// reader can tell the sentinel starting deck apart from a reshuffled one.
package deckview

import (
	"fmt"
	"strings"

	"github.com/zjrosen/outbreak/internal/deck/domain"
	"github.com/zjrosen/outbreak/internal/ui/styles"
)

// Render formats the full state as multi-line text ending in a newline.
func Render(state *domain.DeckState) string {
	var b strings.Builder

	b.WriteString("Infection decks (topmost first):\n")
	for i, deck := range state.InfectionDecks {
		if len(deck) == 0 {
			continue
		}

		fmt.Fprintf(&b, "deck %d: %d\n", i+1, len(deck))
		for _, group := range domain.GroupCards(deck) {
			fmt.Fprintf(&b, "\tx%d %s\n", group.Count, formatName(state, group.Name))
		}
	}

	fmt.Fprintf(&b, "\nDiscard: %d\n", len(state.DiscardPile))
	for _, group := range domain.GroupCards(state.DiscardPile) {
		fmt.Fprintf(&b, "\tx%d %s\n", group.Count, formatName(state, group.Name))
	}

	return b.String()
}

// formatName paints the card with its mark color when one is set.
func formatName(state *domain.DeckState, card string) string {
	if color, ok := state.CardColor[card]; ok {
		return styles.CardStyle(color).Render(card)
	}
	return card
}
