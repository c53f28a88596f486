package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading
type Loader struct {
	configPath string
}

// NewLoader creates a loader. An empty path means $HOME/.practice/config.yaml.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Path returns the config file the loader reads.
func (l *Loader) Path() string {
	if l.configPath != "" {
		return l.configPath
	}
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load merges defaults, the config file (when present) and PRACTICE_*
// environment variables, in increasing priority.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("data_file", def.DataFile)
	v.SetDefault("export_file", def.ExportFile)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("week.top_n", def.Week.TopN)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.pretty", def.Logging.Pretty)

	v.SetEnvPrefix("PRACTICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := l.Path()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	} else if l.configPath != "" {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.DataFile = expandHome(cfg.DataFile)
	cfg.ExportFile = expandHome(cfg.ExportFile)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
