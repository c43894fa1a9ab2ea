package domain

import "sort"

// DeckState is everything known about the infection deck: the stack of known
// deck segments, the discard pile, and color annotations for individual cards.
//
// Invariants maintained by the methods here:
//   - DiscardPile is sorted ascending after every mutation that touches it.
//   - InfectionDecks holds no empty segment once a draw has run; the initial
//     sentinel state is a single empty segment.
type DeckState struct {
	InfectionDecks [][]string        `json:"infection"`
	DiscardPile    []string          `json:"discard"`
	CardColor      map[string]string `json:"card_to_color"`
}

// NewDeckState returns the empty state: one empty sentinel segment standing
// for the face-down deck, nothing discarded, no annotations.
func NewDeckState() *DeckState {
	return &DeckState{
		InfectionDecks: [][]string{{}},
		DiscardPile:    []string{},
		CardColor:      map[string]string{},
	}
}

// Clone returns a deep copy of the state. The copy shares no backing arrays
// with the original, so mutating one never changes the other.
func (s *DeckState) Clone() *DeckState {
	c := &DeckState{
		InfectionDecks: make([][]string, len(s.InfectionDecks)),
		DiscardPile:    make([]string, len(s.DiscardPile)),
		CardColor:      make(map[string]string, len(s.CardColor)),
	}
	for i, deck := range s.InfectionDecks {
		c.InfectionDecks[i] = make([]string, len(deck))
		copy(c.InfectionDecks[i], deck)
	}
	copy(c.DiscardPile, s.DiscardPile)
	for card, color := range s.CardColor {
		c.CardColor[card] = color
	}
	return c
}

// Draw records card leaving the top of the infection deck and entering the
// discard pile. The first occurrence of card is removed from the topmost
// segment when present; a segment left empty by the draw is dropped, as is
// the initial sentinel. The card always lands in the discard pile, so
// drawing a card the tracker has never seen still succeeds.
func (s *DeckState) Draw(card string) {
	if len(s.InfectionDecks) > 0 {
		top := s.InfectionDecks[0]
		for i, c := range top {
			if c == card {
				s.InfectionDecks[0] = append(top[:i], top[i+1:]...)
				break
			}
		}
		if len(s.InfectionDecks[0]) == 0 {
			s.InfectionDecks = s.InfectionDecks[1:]
		}
	}
	s.DiscardPile = append(s.DiscardPile, card)
	sort.Strings(s.DiscardPile)
}

// ReshuffleDiscard models the epidemic reshuffle: the entire discard pile
// goes back on top of the infection deck as a single known segment, keeping
// its sorted order, and the pile empties. With nothing discarded this is a
// no-op, so calling it twice in a row changes nothing.
func (s *DeckState) ReshuffleDiscard() {
	if len(s.DiscardPile) == 0 {
		return
	}
	segment := make([]string, len(s.DiscardPile))
	copy(segment, s.DiscardPile)
	s.InfectionDecks = append([][]string{segment}, s.InfectionDecks...)
	s.DiscardPile = []string{}
}

// RemoveDiscard removes the first occurrence of card from the discard pile,
// for cards pulled out of the game by an event. Removing an absent card is
// a silent no-op. Positional removal keeps the pile sorted.
func (s *DeckState) RemoveDiscard(card string) {
	for i, c := range s.DiscardPile {
		if c == card {
			s.DiscardPile = append(s.DiscardPile[:i], s.DiscardPile[i+1:]...)
			return
		}
	}
}

// MarkCard annotates card with a color, overwriting any existing annotation.
func (s *DeckState) MarkCard(card, color string) {
	if s.CardColor == nil {
		s.CardColor = map[string]string{}
	}
	s.CardColor[card] = color
}

// UnmarkCard clears the color annotation for card. Unlike MarkCard it is
// strict: clearing a card that carries no annotation returns
// CardNotMarkedError instead of silently succeeding.
func (s *DeckState) UnmarkCard(card string) error {
	if _, ok := s.CardColor[card]; !ok {
		return &CardNotMarkedError{Card: card}
	}
	delete(s.CardColor, card)
	return nil
}
