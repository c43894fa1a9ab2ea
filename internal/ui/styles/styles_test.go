package styles

import (
	"sort"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

// forceANSIProfile makes styles emit escape sequences even though tests run
// without a terminal, restoring the previous profile afterwards.
func forceANSIProfile(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func TestCardStyle_KnownColorsPaint(t *testing.T) {
	forceANSIProfile(t)

	for _, color := range CardColors() {
		t.Run(color, func(t *testing.T) {
			rendered := CardStyle(color).Render("x")
			assert.NotEqual(t, "x", rendered, "style should add escape sequences")
			assert.Equal(t, "x", ansi.Strip(rendered), "stripped output should be the bare text")
		})
	}
}

func TestCardStyle_UnknownColorIsPlain(t *testing.T) {
	forceANSIProfile(t)

	assert.Equal(t, "x", CardStyle("chartreuse").Render("x"))
	assert.Equal(t, "x", CardStyle("").Render("x"))
}

func TestKnownColor(t *testing.T) {
	tests := []struct {
		color string
		known bool
	}{
		{"blue", true},
		{"yellow", true},
		{"black", true},
		{"red", true},
		{"none", false},
		{"", false},
		{"BLUE", false}, // names are matched after normalization lowercases them
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			assert.Equal(t, tt.known, KnownColor(tt.color))
		})
	}
}

func TestCardColors_Sorted(t *testing.T) {
	colors := CardColors()
	assert.True(t, sort.StringsAreSorted(colors))
	assert.Subset(t, colors, []string{"blue", "yellow", "black", "red"})
}

func TestApplyColorProfile_NoColor(t *testing.T) {
	forceANSIProfile(t)
	t.Setenv("NO_COLOR", "1")

	ApplyColorProfile()

	assert.Equal(t, "hi", HeadingStyle.Render("hi"), "NO_COLOR should disable styling")
}
