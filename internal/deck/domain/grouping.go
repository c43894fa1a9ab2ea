package domain

import "sort"

// CardGroup is one line of a rendered card listing: Count copies of Name.
type CardGroup struct {
	Name  string
	Count int
}

// GroupCards collapses a card list into per-name counts ordered for display:
// highest count first, ties broken alphabetically. The input order carries
// no information (piles are sets with multiplicity), so the composite sort
// key fully determines the output.
func GroupCards(cards []string) []CardGroup {
	counts := make(map[string]int, len(cards))
	for _, card := range cards {
		counts[card]++
	}
	groups := make([]CardGroup, 0, len(counts))
	for name, count := range counts {
		groups = append(groups, CardGroup{Name: name, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Name < groups[j].Name
	})
	return groups
}
