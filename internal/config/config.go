// Package config provides configuration and path management.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/hightemp/ccnames/internal/countries"
)

const (
	// AppName is the application name.
	AppName = "ccnames"

	// ConfigDirName is the per-user configuration directory name.
	ConfigDirName = ".ccnames"

	// ConfigFileName is the configuration file name.
	ConfigFileName = "config.yaml"

	// DataDirName is the default name of the user dataset directory.
	DataDirName = "data"

	// DefaultLogLevel is the default log level name.
	DefaultLogLevel = "warn"

	// MaxBatchConcurrency is the maximum number of concurrent batch lookups.
	MaxBatchConcurrency = 16
)

// ErrInvalidLogLevel is returned for unknown log level names.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Config holds runtime configuration.
type Config struct {
	FallbackLocale string   `yaml:"fallback_locale" env:"CCNAMES_FALLBACK_LOCALE"`
	Locales        []string `yaml:"locales" env:"CCNAMES_LOCALES" envSeparator:","`
	DataDir        string   `yaml:"data_dir" env:"CCNAMES_DATA_DIR"`
	LogLevel       string   `yaml:"log_level" env:"CCNAMES_LOG_LEVEL"`
	NoColor        bool     `yaml:"no_color" env:"CCNAMES_NO_COLOR"`
	JSONOutput     bool     `yaml:"json" env:"CCNAMES_JSON"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FallbackLocale: countries.DefaultFallbackLocale,
		Locales:        countries.DefaultLocales(),
		LogLevel:       DefaultLogLevel,
	}
}

// Load builds the configuration from defaults, the YAML file at path and
// CCNAMES_* environment variables, in that order of precedence.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// RegistryOptions returns the registry options for this configuration.
func (c *Config) RegistryOptions() *countries.Options {
	return &countries.Options{
		FallbackLocale: c.FallbackLocale,
		Locales:        slices.Clone(c.Locales),
	}
}

// Level returns the parsed log level, defaulting to warn.
func (c *Config) Level() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

// ParseLogLevel parses a log level name.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %s (use debug, info, warn, or error)", ErrInvalidLogLevel, s)
	}
}

// DefaultConfigDir returns the default configuration directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory
		home = "."
	}
	return filepath.Join(home, ConfigDirName)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFileName)
}

// DefaultDataDir returns the default user dataset directory path.
func DefaultDataDir() string {
	return filepath.Join(DefaultConfigDir(), DataDirName)
}
