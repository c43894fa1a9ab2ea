// Package infrastructure implements snapshot persistence for deck state.
//
// Snapshots are human-readable JSON with a stable schema: "infection",
// "discard" and "card_to_color". The schema is the tool's public surface;
// people hand-edit these files and other scripts read them, so decoding is
// forgiving about absent fields and encoding always emits all three.
package infrastructure

import (
	"encoding/json"
	"fmt"

	"github.com/zjrosen/outbreak/internal/deck/domain"
)

// EncodeSnapshot serializes state into the snapshot format, 4-space
// indented. Nil fields encode as their empty values so every field is
// always present in the output.
func EncodeSnapshot(state *domain.DeckState) ([]byte, error) {
	normalized := *state
	if normalized.InfectionDecks == nil {
		normalized.InfectionDecks = [][]string{{}}
	}
	if normalized.DiscardPile == nil {
		normalized.DiscardPile = []string{}
	}
	if normalized.CardColor == nil {
		normalized.CardColor = map[string]string{}
	}

	data, err := json.MarshalIndent(&normalized, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeSnapshot parses snapshot JSON. Each absent field falls back to its
// default independently: no "infection" means the sentinel empty deck, no
// "discard" means an empty pile, no "card_to_color" means no annotations.
// Malformed JSON is an error.
func DecodeSnapshot(data []byte) (*domain.DeckState, error) {
	var state domain.DeckState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if state.InfectionDecks == nil {
		state.InfectionDecks = [][]string{{}}
	}
	if state.DiscardPile == nil {
		state.DiscardPile = []string{}
	}
	if state.CardColor == nil {
		state.CardColor = map[string]string{}
	}
	return &state, nil
}
