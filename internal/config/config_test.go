package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, ".", cfg.StateDir)
	assert.Equal(t, "state.json", cfg.StateFile)
	assert.Equal(t, "save.json", cfg.SaveFile)
	assert.Equal(t, "cards.txt", cfg.CardsFile)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "history.db", cfg.History.File)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.False(t, cfg.Trace.Enabled)
	assert.Equal(t, "stdout", cfg.Trace.Exporter)
	assert.Empty(t, cfg.Log.File, "logging starts disabled")

	require.NoError(t, cfg.Validate())
}

func TestPathHelpers(t *testing.T) {
	cfg := Defaults()
	cfg.StateDir = "/tmp/outbreak"

	assert.Equal(t, "/tmp/outbreak/state.json", cfg.StatePath())
	assert.Equal(t, "/tmp/outbreak/save.json", cfg.SavePath())
	assert.Equal(t, "/tmp/outbreak/cards.txt", cfg.CardsPath())
	assert.Equal(t, "/tmp/outbreak/history.db", cfg.HistoryPath())
}

func TestConfig_FromYAML(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
state_dir: /data/games
state_file: current.json
history:
  enabled: false
watch:
  debounce: 1s
trace:
  enabled: true
  exporter: otlp
  endpoint: collector:4317
`)

	assert.Equal(t, "/data/games", cfg.StateDir)
	assert.Equal(t, "current.json", cfg.StateFile)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.True(t, cfg.Trace.Enabled)
	assert.Equal(t, "otlp", cfg.Trace.Exporter)
	assert.Equal(t, "collector:4317", cfg.Trace.Endpoint)
}

func TestConfig_PartialYAMLKeepsDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
state_dir: /data/games
`)

	assert.Equal(t, "/data/games", cfg.StateDir)
	assert.Equal(t, "state.json", cfg.StateFile, "unset keys keep their defaults")
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		errPart string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty state_file",
			mutate:  func(c *Config) { c.StateFile = "" },
			errPart: "state_file",
		},
		{
			name:    "empty save_file",
			mutate:  func(c *Config) { c.SaveFile = "" },
			errPart: "save_file",
		},
		{
			name:    "unknown trace exporter",
			mutate:  func(c *Config) { c.Trace.Exporter = "jaeger" },
			errPart: "trace.exporter",
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Watch.Debounce = -time.Second },
			errPart: "watch.debounce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errPart == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "outbreak.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	// The template must round-trip through the real loader.
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg := Defaults()
	require.NoError(t, v.Unmarshal(&cfg))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "state.json", cfg.StateFile)
	assert.True(t, cfg.History.Enabled)
}

// loadConfigFromYAML is a helper to load config over defaults from a YAML string.
func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(yaml), 0644)
	require.NoError(t, err)

	// Reset viper for each test
	v := viper.New()
	v.SetConfigFile(configPath)
	err = v.ReadInConfig()
	require.NoError(t, err)

	cfg := Defaults()
	err = v.Unmarshal(&cfg)
	require.NoError(t, err)

	return cfg
}
