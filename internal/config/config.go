// Package config handles application configuration
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"todopad/backend"
	"todopad/internal/theme"
)

//go:embed config.sample.yaml
var sampleConfig string

const appName = "todopad"

// Storage backend names with a default storage path. Validate accepts any
// backend registered with the backend package.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// GetSampleConfig returns the embedded sample configuration content
func GetSampleConfig() string {
	return sampleConfig
}

// StorageConfig selects the key-value backend
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Verbose bool   `yaml:"verbose"`
	File    string `yaml:"file"`
}

// Config represents the application configuration
type Config struct {
	Storage      StorageConfig `yaml:"storage"`
	Theme        string        `yaml:"theme"`
	Seed         *bool         `yaml:"seed"` // nil means enabled
	OutputFormat string        `yaml:"output_format"`
	NoPrompt     bool          `yaml:"no_prompt"`
	Logging      LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
		},
		Theme:        "auto",
		OutputFormat: "text",
	}
}

// Load loads configuration from the specified path, or the default XDG path if empty.
// If the config file doesn't exist, it is created from the sample and the
// defaults are returned.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := writeSample(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML and fills unset fields with defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in config file: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendSQLite
	}
	if c.Theme == "" {
		c.Theme = "auto"
	}
	if c.OutputFormat == "" {
		c.OutputFormat = "text"
	}
	c.Storage.Path = ExpandPath(c.Storage.Path)
	c.Logging.File = ExpandPath(c.Logging.File)
}

// writeSample writes the embedded sample config to path
func writeSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !backend.IsRegistered(c.Storage.Backend) {
		return fmt.Errorf("unknown storage.backend: %q (must be one of: %s)",
			c.Storage.Backend, strings.Join(backend.Names(), ", "))
	}

	if _, _, err := theme.ParseScheme(c.Theme); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	if c.OutputFormat != "text" && c.OutputFormat != "json" {
		return fmt.Errorf("invalid output_format: %q (must be 'text' or 'json')", c.OutputFormat)
	}

	if c.Storage.Backend == BackendMemory && c.Storage.Path != "" {
		return errors.New("storage.path is not used by the memory backend")
	}

	return nil
}

// ApplyFlags applies CLI flag overrides to the configuration
func (c *Config) ApplyFlags(backendName, storagePath string, verbose bool, outputFormat string) {
	if backendName != "" {
		c.Storage.Backend = backendName
		if backendName == BackendMemory {
			c.Storage.Path = ""
		}
	}
	if storagePath != "" {
		c.Storage.Path = ExpandPath(storagePath)
	}
	if verbose {
		c.Logging.Verbose = true
	}
	if outputFormat != "" {
		c.OutputFormat = outputFormat
	}
}

// StoragePath returns the configured path, or the default for the backend.
// The memory backend has no path.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	switch c.Storage.Backend {
	case BackendSQLite:
		return filepath.Join(GetDataDir(), "todopad.db")
	case BackendFile:
		return filepath.Join(GetDataDir(), "store")
	}
	return ""
}

// IsSeedEnabled returns true unless seed: false is configured
func (c *Config) IsSeedEnabled() bool {
	if c.Seed == nil {
		return true
	}
	return *c.Seed
}

// IsJSON returns true if commands should print JSON
func (c *Config) IsJSON() bool {
	return c.OutputFormat == "json"
}

// getXDGDir returns a directory path following XDG spec.
// envVar is the XDG environment variable (e.g., "XDG_CONFIG_HOME").
// fallbackPath is the relative path from home (e.g., ".config").
func getXDGDir(envVar, fallbackPath string) string {
	if xdgDir := os.Getenv(envVar); xdgDir != "" {
		return filepath.Join(xdgDir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", fallbackPath, appName)
	}
	return filepath.Join(home, fallbackPath, appName)
}

// GetConfigDir returns the configuration directory following XDG spec
func GetConfigDir() string {
	return getXDGDir("XDG_CONFIG_HOME", ".config")
}

// GetDataDir returns the data directory following XDG spec
func GetDataDir() string {
	return getXDGDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// DefaultConfigPath returns the config.yaml path in the config directory
func DefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
