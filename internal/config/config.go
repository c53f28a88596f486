package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the practice CLI configuration
type Config struct {
	// Session store file
	DataFile string `mapstructure:"data_file" yaml:"data_file"`

	// CSV export target; empty means next to the data file
	ExportFile string `mapstructure:"export_file" yaml:"export_file"`

	// Terminal theme: classic, neon, mono
	Theme string `mapstructure:"theme" yaml:"theme"`

	Week    WeekConfig    `mapstructure:"week" yaml:"week"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// WeekConfig tunes the weekly summary
type WeekConfig struct {
	TopN int `mapstructure:"top_n" yaml:"top_n"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	File   string `mapstructure:"file" yaml:"file"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// DefaultDir is $HOME/.practice.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".practice"
	}
	return filepath.Join(home, ".practice")
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		DataFile: filepath.Join(DefaultDir(), "practice_log.json"),
		Theme:    "classic",
		Week:     WeekConfig{TopN: 5},
		Logging: LoggingConfig{
			Level:  "warn",
			Pretty: true,
		},
	}
}

var (
	validThemes = map[string]bool{"classic": true, "neon": true, "mono": true}
	validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("data_file cannot be empty")
	}
	if !validThemes[strings.ToLower(c.Theme)] {
		return fmt.Errorf("invalid theme %q (want classic, neon or mono)", c.Theme)
	}
	if c.Week.TopN <= 0 {
		return fmt.Errorf("week.top_n must be positive, got %d", c.Week.TopN)
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	return nil
}

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
