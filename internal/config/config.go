// Package config loads the rft tool configuration from .rft/config.json.
//
// Configuration covers how the tool runs (logging, watcher, editor, index).
// The tracked data itself lives in the state blob owned by the recent store;
// see the state package.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete rft configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Watcher WatcherConfig `json:"watcher" mapstructure:"watcher"`
	Editor  EditorConfig  `json:"editor" mapstructure:"editor"`
	Index   IndexConfig   `json:"index" mapstructure:"index"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// WatcherConfig controls the filesystem activation source
type WatcherConfig struct {
	DebounceMs     int      `json:"debounceMs" mapstructure:"debounceMs"`
	IgnorePatterns []string `json:"ignorePatterns" mapstructure:"ignorePatterns"`
}

// EditorConfig controls the navigation capability.
// Command may contain a {path} placeholder; when absent the path is appended.
type EditorConfig struct {
	Command string   `json:"command" mapstructure:"command"`
	Args    []string `json:"args" mapstructure:"args"`
}

// IndexConfig controls the file-universe index database
type IndexConfig struct {
	Filename string `json:"filename" mapstructure:"filename"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// CurrentVersion is the config schema version written by this build
const CurrentVersion = 1

// Dir is the data directory name created under the vault root
const Dir = ".rft"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Watcher: WatcherConfig{
			DebounceMs: 500,
			IgnorePatterns: []string{
				".*",
				".rft/**",
				"*.tmp",
				"*.swp",
				"*.swx",
				"~*",
				"4913", // vim write test file
			},
		},
		Editor: EditorConfig{
			Command: "",
			Args:    []string{},
		},
		Index: IndexConfig{
			Filename: "index.db",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <vaultRoot>/.rft/config.json.
// A missing config file yields the defaults, never an error.
func LoadConfig(vaultRoot string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(vaultRoot, Dir))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to <vaultRoot>/.rft/config.json
func (c *Config) Save(vaultRoot string) error {
	configPath := filepath.Join(vaultRoot, Dir, "config.json")

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Watcher.DebounceMs < 0 {
		return &ConfigError{Field: "watcher.debounceMs", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
