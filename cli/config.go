package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/widgetkit/widget"
)

// Config represents the optional widgetkit.yaml configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Scanner ScannerConfig `yaml:"scanner"`
	Watch   WatchConfig   `yaml:"watch"`
}

// LogConfig controls CLI diagnostics.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info.
	Level string `yaml:"level,omitempty"`
}

// ScannerConfig adjusts the declarative scanner.
type ScannerConfig struct {
	// AliasAttributes toggles per-property data-<name> attributes as a
	// declarative property source. The inline data-properties string is
	// authoritative either way. Default: true.
	AliasAttributes *bool `yaml:"aliasAttributes,omitempty"`
}

// WatchConfig adjusts enhance --watch.
type WatchConfig struct {
	// DebounceMs is how long to wait after a file event before re-running,
	// coalescing editor write bursts. Default: 250.
	DebounceMs int `yaml:"debounceMs,omitempty"`
}

const configFileName = "widgetkit.yaml"

// LoadOptional reads widgetkit.yaml from dir if present. A missing file
// yields the zero config, not an error.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", configFileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configFileName, err)
	}

	return &cfg, nil
}

// LogLevel resolves the configured log level.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug
	case "", "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ScanOptions resolves the scanner options.
func (c *Config) ScanOptions() widget.ScanOptions {
	opts := widget.ScanOptions{}
	if c.Scanner.AliasAttributes != nil && !*c.Scanner.AliasAttributes {
		opts.IgnoreAliasAttributes = true
	}
	return opts
}

// WatchDebounce resolves the watch debounce interval.
func (c *Config) WatchDebounce() time.Duration {
	if c.Watch.DebounceMs > 0 {
		return time.Duration(c.Watch.DebounceMs) * time.Millisecond
	}
	return 250 * time.Millisecond
}
