// Package cards handles card naming: normalizing user input into canonical
// card IDs, the completion catalog, and the YAML game manifest.
//
// Canonical IDs are lowercase with single spaces between words. Shell
// completion offers the underscore form (spaces are hostile to tab
// completion); Normalize folds either form back to the canonical ID, so
// "City_Alpha", "city-alpha" and "  city  alpha " all name the same card.
package cards

import "strings"

// Normalize folds a user-supplied card name into its canonical ID:
// lowercase, separators and whitespace runs collapsed to single spaces,
// no leading or trailing space.
func Normalize(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-':
			return ' '
		}
		return r
	}, name)
	return strings.Join(strings.Fields(strings.ToLower(mapped)), " ")
}

// Slug converts a canonical card ID into its shell-friendly completion
// token, replacing spaces with underscores.
func Slug(id string) string {
	return strings.ReplaceAll(id, " ", "_")
}
