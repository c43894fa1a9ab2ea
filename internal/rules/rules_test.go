package rules

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown_CoversEveryCommand(t *testing.T) {
	md := Markdown()

	require.NotEmpty(t, md)
	for _, command := range []string{"new", "draw", "shuffle", "remove", "mark", "save", "load", "watch", "undo", "history", "print"} {
		assert.Contains(t, md, "outbreak "+command, "reference should mention the %s command", command)
	}
}

func TestRender_FormatsForTerminal(t *testing.T) {
	out, err := Render(80)
	require.NoError(t, err)

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Infection deck reference")
	assert.Contains(t, plain, "Epidemic")
	assert.Contains(t, plain, "Intensify")
}
