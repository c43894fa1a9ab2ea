// Package styles contains Lip Gloss style definitions.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Chrome colors adapt to the terminal background.
var (
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#DDDDDD"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#777777"}
	HeadingColor     = lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#66B2FF"}
	BorderColor      = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#444444"}
	StatusErrorColor = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
)

var (
	HeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(HeadingColor)
	MutedStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(StatusErrorColor)

	DiffAddStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DiffRemoveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// cardBackgrounds maps mark color names to terminal styles. The palette
// covers the four stock disease colors plus the extras a homebrew manifest
// might use. Backgrounds stay in the 8-color ANSI range so marks survive
// basic terminals.
var cardBackgrounds = map[string]lipgloss.Style{
	"blue":    lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15")),
	"yellow":  lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0")),
	"black":   lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("15")),
	"red":     lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15")),
	"green":   lipgloss.NewStyle().Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0")),
	"white":   lipgloss.NewStyle().Background(lipgloss.Color("7")).Foreground(lipgloss.Color("0")),
	"cyan":    lipgloss.NewStyle().Background(lipgloss.Color("6")).Foreground(lipgloss.Color("0")),
	"magenta": lipgloss.NewStyle().Background(lipgloss.Color("5")).Foreground(lipgloss.Color("15")),
}

// CardStyle returns the render style for a card marked with the given color.
// Unknown names return the zero style so a stray mark never breaks output.
func CardStyle(color string) lipgloss.Style {
	if style, ok := cardBackgrounds[color]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// KnownColor reports whether a mark color has a defined style.
func KnownColor(color string) bool {
	_, ok := cardBackgrounds[color]
	return ok
}

// CardColors lists the mark colors with a defined style, sorted.
func CardColors() []string {
	colors := make([]string, 0, len(cardBackgrounds))
	for color := range cardBackgrounds {
		colors = append(colors, color)
	}
	sort.Strings(colors)
	return colors
}

// ApplyColorProfile downgrades rendering to plain text when the environment
// opts out of color (NO_COLOR, CLICOLOR=0).
func ApplyColorProfile() {
	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
