package hostenv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the small JSON configuration a host reads before starting an
// Engine: scrollback sizing, ambiguous-width handling, log destination.
type Config struct {
	ScrollbackBytes int    `json:"scrollback_bytes"`
	AmbiguousWidth  string `json:"ambiguous_width"` // "auto" | "narrow" | "wide"
	LogFile         string `json:"log_file"`
	LogLevel        string `json:"log_level"`
	LogFormat       string `json:"log_format"` // "json" | "text"
}

// Default returns a configuration with default values.
func Default() Config {
	return Config{
		ScrollbackBytes: 50 * 1024 * 1024,
		AmbiguousWidth:  "auto",
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// Load loads configuration from configPath, creating it with default
// values if it doesn't exist yet.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to configPath as indented JSON.
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks that cfg's values are usable.
func (c Config) Validate() error {
	if c.ScrollbackBytes <= 0 {
		return fmt.Errorf("scrollback_bytes must be positive, got: %d", c.ScrollbackBytes)
	}
	switch c.AmbiguousWidth {
	case "auto", "narrow", "wide":
	default:
		return fmt.Errorf("ambiguous_width must be auto, narrow, or wide, got: %q", c.AmbiguousWidth)
	}
	return nil
}
