package cards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	t.Run("normalizes sorts and dedupes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cards.txt")
		require.NoError(t, os.WriteFile(path, []byte("Zulu City\ncity_alpha\n\nCITY ALPHA\nmike\n"), 0644))

		names, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"city alpha", "mike", "zulu city"}, names)
	})

	t.Run("missing file is empty not an error", func(t *testing.T) {
		names, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.txt"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestWriteCatalog_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.txt")
	require.NoError(t, WriteCatalog(path, []string{"zulu", "alpha", "mike"}))

	names, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mike", "zulu"}, names)
}

func TestSuggestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.txt")
	require.NoError(t, WriteCatalog(path, []string{"city alpha", "city beta", "epidemic"}))

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{name: "empty prefix offers everything", prefix: "", want: []string{"city_alpha", "city_beta", "epidemic"}},
		{name: "prefix filters on slug form", prefix: "city_a", want: []string{"city_alpha"}},
		{name: "prefix is case-insensitive", prefix: "CITY_B", want: []string{"city_beta"}},
		{name: "no matches", prefix: "zzz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggestions(path, tt.prefix))
		})
	}
}

func TestSuggestions_MissingCatalog(t *testing.T) {
	assert.Nil(t, Suggestions(filepath.Join(t.TempDir(), "absent.txt"), "city"))
}
