package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "practice_log.json", filepath.Base(cfg.DataFile))
	assert.Equal(t, 5, cfg.Week.TopN)
	assert.Equal(t, "classic", cfg.Theme)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty data file", func(c *Config) { c.DataFile = " " }, "data_file"},
		{"unknown theme", func(c *Config) { c.Theme = "rainbow" }, "theme"},
		{"zero top n", func(c *Config) { c.Week.TopN = 0 }, "top_n"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoaderLoad(t *testing.T) {
	t.Run("defaults when default file is absent", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		cfg, err := NewLoader("").Load()
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("yaml file", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.yaml")
		content := "data_file: " + filepath.Join(dir, "log.json") + "\n" +
			"theme: neon\n" +
			"week:\n  top_n: 3\n" +
			"logging:\n  level: debug\n"
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

		cfg, err := NewLoader(configPath).Load()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "log.json"), cfg.DataFile)
		assert.Equal(t, "neon", cfg.Theme)
		assert.Equal(t, 3, cfg.Week.TopN)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.True(t, cfg.Logging.Pretty, "unset keys keep their defaults")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{"theme": "neon"}`), 0o644))
		t.Setenv("PRACTICE_THEME", "mono")
		t.Setenv("PRACTICE_WEEK_TOP_N", "9")

		cfg, err := NewLoader(configPath).Load()
		require.NoError(t, err)
		assert.Equal(t, "mono", cfg.Theme)
		assert.Equal(t, 9, cfg.Week.TopN)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("theme: rainbow\n"), 0o644))

		_, err := NewLoader(configPath).Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rainbow")
	})

	t.Run("tilde paths expand", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("PRACTICE_DATA_FILE", "~/music/log.json")

		cfg, err := NewLoader("").Load()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "music", "log.json"), cfg.DataFile)
	})
}
