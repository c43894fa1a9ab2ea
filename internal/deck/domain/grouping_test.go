package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGroupCards(t *testing.T) {
	tests := []struct {
		name  string
		cards []string
		want  []CardGroup
	}{
		{
			name:  "counts descend with alphabetical ties",
			cards: []string{"b", "a", "b", "c", "a", "a"},
			want: []CardGroup{
				{Name: "a", Count: 3},
				{Name: "b", Count: 2},
				{Name: "c", Count: 1},
			},
		},
		{
			name:  "equal counts sort alphabetically",
			cards: []string{"zulu", "alpha", "mike"},
			want: []CardGroup{
				{Name: "alpha", Count: 1},
				{Name: "mike", Count: 1},
				{Name: "zulu", Count: 1},
			},
		},
		{
			name:  "single name",
			cards: []string{"alpha", "alpha", "alpha"},
			want:  []CardGroup{{Name: "alpha", Count: 3}},
		},
		{
			name:  "empty input",
			cards: []string{},
			want:  []CardGroup{},
		},
		{
			name:  "input order is irrelevant",
			cards: []string{"c", "a", "b", "a"},
			want: []CardGroup{
				{Name: "a", Count: 2},
				{Name: "b", Count: 1},
				{Name: "c", Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupCards(tt.cards))
		})
	}
}

// TestProperty_GroupCardsOrdering verifies the complete ordering contract on
// random inputs: counts are preserved, every name appears exactly once, and
// groups descend by count with alphabetical tie-breaks.
func TestProperty_GroupCardsOrdering(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cards := rapid.SliceOfN(rapid.SampledFrom(cardPool), 0, 40).Draw(t, "cards")

		groups := GroupCards(cards)

		total := 0
		seen := make(map[string]bool, len(groups))
		for i, g := range groups {
			total += g.Count
			if g.Count < 1 {
				t.Fatalf("group %q has non-positive count %d", g.Name, g.Count)
			}
			if seen[g.Name] {
				t.Fatalf("name %q appears in two groups", g.Name)
			}
			seen[g.Name] = true

			if i > 0 {
				prev := groups[i-1]
				if prev.Count < g.Count {
					t.Fatalf("counts not descending: %v before %v", prev, g)
				}
				if prev.Count == g.Count && prev.Name >= g.Name {
					t.Fatalf("tie not alphabetical: %v before %v", prev, g)
				}
			}
		}
		if total != len(cards) {
			t.Fatalf("group counts sum to %d, want %d", total, len(cards))
		}
	})
}
