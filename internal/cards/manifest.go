package cards

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Manifest describes a game's card pool, used by `outbreak new` to seed a
// fresh state and install the completion catalog.
type Manifest struct {
	Game  string         `yaml:"game"`
	Cards []ManifestCard `yaml:"cards"`
}

// ManifestCard is one entry in the pool. Count defaults to 1 and sets how
// many copies the physical deck holds; Color, when set, pre-marks the card.
type ManifestCard struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
	Color string `yaml:"color"`
}

// LoadManifest parses and validates a game manifest. Card names are
// normalized into canonical IDs; empty names and duplicates (post
// normalization) are rejected so a manifest cannot silently merge two cards.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	seen := make(map[string]bool, len(m.Cards))
	for i := range m.Cards {
		card := &m.Cards[i]
		card.Name = Normalize(card.Name)
		if card.Name == "" {
			return nil, fmt.Errorf("manifest %s: card %d has an empty name", path, i+1)
		}
		if seen[card.Name] {
			return nil, fmt.Errorf("manifest %s: duplicate card %q", path, card.Name)
		}
		seen[card.Name] = true
		if card.Count == 0 {
			card.Count = 1
		}
		if card.Count < 0 {
			return nil, fmt.Errorf("manifest %s: card %q has negative count %d", path, card.Name, card.Count)
		}
	}
	return &m, nil
}

// Names returns the canonical card IDs in manifest order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Cards))
	for _, card := range m.Cards {
		names = append(names, card.Name)
	}
	return names
}

// Colors returns the card to color annotations declared in the manifest.
// Cards without a color are absent from the map.
func (m *Manifest) Colors() map[string]string {
	colors := make(map[string]string)
	for _, card := range m.Cards {
		if card.Color != "" {
			colors[card.Name] = card.Color
		}
	}
	return colors
}

// Deck expands the pool into the physical deck contents: each card repeated
// by its count, sorted for stable output.
func (m *Manifest) Deck() []string {
	var deck []string
	for _, card := range m.Cards {
		for i := 0; i < card.Count; i++ {
			deck = append(deck, card.Name)
		}
	}
	sort.Strings(deck)
	return deck
}
