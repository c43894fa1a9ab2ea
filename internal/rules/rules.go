// Package rules renders the built-in play reference.
package rules

import (
	_ "embed"

	"github.com/charmbracelet/glamour"
)

//go:embed rules.md
var rulesMarkdown string

// Markdown returns the raw reference text.
func Markdown() string {
	return rulesMarkdown
}

// Render formats the reference for a terminal of the given width.
func Render(width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(rulesMarkdown)
}
