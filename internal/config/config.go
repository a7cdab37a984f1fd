package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultSourceURL      = "https://lorcanajson.org/files/current/en/allCards.json"
	DefaultOutputFile     = "lorcana_cards.txt"
	DefaultTimeoutSeconds = 30
)

// ErrNoConfigHome is returned when neither XDG_CONFIG_HOME nor the home directory is known
var ErrNoConfigHome = errors.New("no config directory: XDG_CONFIG_HOME and home directory are unset")

// Config represents the application configuration
type Config struct {
	SourceURL      string `toml:"source_url"`
	OutputFile     string `toml:"output_file"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	EscapeStrings  bool   `toml:"escape_strings"`
	UserAgent      string `toml:"user_agent"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		SourceURL:      DefaultSourceURL,
		OutputFile:     DefaultOutputFile,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout returns the request timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// fillDefaults replaces empty values left out of a config file
func (c *Config) fillDefaults() {
	if c.SourceURL == "" {
		c.SourceURL = DefaultSourceURL
	}
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetCacheDir returns the inktable cache directory, or "" when there is no cache directory
func GetCacheDir() string {
	cacheHome := GetXDGCacheHome()
	if cacheHome == "" {
		return ""
	}
	return filepath.Join(cacheHome, "inktable")
}

// GetConfigFilePath returns the path to the config file, or "" when there is no config directory
func GetConfigFilePath() string {
	configHome := GetXDGConfigHome()
	if configHome == "" {
		return ""
	}
	return filepath.Join(configHome, "inktable", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if it doesn't exist
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()
	if configPath == "" {
		return nil, ErrNoConfigHome
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads the config at path, creating it with defaults if it doesn't exist
func LoadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	} else if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.fillDefaults()

	return &config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	// Ensure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	config := Default()
	if err := SaveConfigFile(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfigFile encodes the config to path as TOML
func SaveConfigFile(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}
