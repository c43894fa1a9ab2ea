package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderTitledBorder renders content inside a rounded border, embedding title
// in the top edge and note in the bottom edge. Pass "" to omit either label.
// Output is width cells wide and height lines tall; content that does not fit
// is clipped. Degenerate sizes clamp to one inner cell rather than panic.
func RenderTitledBorder(content, title, note string, width, height int) string {
	borderStyle := lipgloss.NewStyle().Foreground(BorderColor)

	innerWidth := max(width-2, 1)
	contentHeight := max(height-2, 1)

	top := buildEdge(borderTopLeft, borderTopRight, title, innerWidth, borderStyle, HeadingStyle)
	bottom := buildEdge(borderBottomLeft, borderBottomRight, note, innerWidth, borderStyle, MutedStyle)

	// Constrain content width; the row loop below clips overflow lines
	constrained := lipgloss.NewStyle().Width(innerWidth).Render(content)
	contentLines := strings.Split(constrained, "\n")

	rows := make([]string, contentHeight)
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}

		// Pad to innerWidth so the right border aligns
		if pad := innerWidth - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}

		rows[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var result strings.Builder
	result.WriteString(top)
	result.WriteString("\n")
	result.WriteString(strings.Join(rows, "\n"))
	result.WriteString("\n")
	result.WriteString(bottom)

	return result.String()
}

// buildEdge renders one horizontal border edge with an optional embedded label.
// Format: ╭─ Label ──────╮
func buildEdge(left, right, label string, innerWidth int, borderStyle, labelStyle lipgloss.Style) string {
	if innerWidth < 1 {
		return borderStyle.Render(left + right)
	}

	// Too narrow for the "─ x ─" framing; drop the label
	if label == "" || innerWidth < 5 {
		return borderStyle.Render(left + strings.Repeat(borderHorizontal, innerWidth) + right)
	}

	display := truncate.StringWithTail(label, uint(innerWidth-4), "…")

	// "─ " + label + " " + trailing dashes fills innerWidth exactly
	trailing := max(innerWidth-3-lipgloss.Width(display), 1)

	return borderStyle.Render(left+borderHorizontal+" ") +
		labelStyle.Render(display) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, trailing)+right)
}
