// Package config loads and persists the client configuration.
// Configuration lives in a YAML file under the data directory; environment
// variables override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the public Stellar Burgers API.
const DefaultBaseURL = "https://norma.nomoreparties.space/api"

// Config holds all client configuration.
type Config struct {
	// API configures the backend gateway.
	API APIConfig `yaml:"api"`

	// DataDir is where durable local state (tokens, flags) is kept.
	// Defaults to ~/.stellar.
	DataDir string `yaml:"data_dir"`

	// Logging controls log output.
	Logging LoggingConfig `yaml:"logging"`

	// Feed configures the live order feed view.
	Feed FeedConfig `yaml:"feed"`
}

// APIConfig configures the HTTP gateway to the backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty: stderr
}

// FeedConfig configures order-feed polling in the shell.
type FeedConfig struct {
	PollInterval string `yaml:"poll_interval"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	dataDir := ".stellar"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".stellar")
	}
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: "15s",
		},
		DataDir: dataDir,
		Logging: LoggingConfig{
			Level: "info",
		},
		Feed: FeedConfig{
			PollInterval: "10s",
		},
	}
}

// Load reads configuration from path, falling back to defaults when the
// file is absent. Environment overrides are always applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides lets the environment beat file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BURGER_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("STELLAR_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("STELLAR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// APITimeout parses the configured HTTP timeout.
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// FeedPollInterval parses the feed polling interval.
func (c *Config) FeedPollInterval() time.Duration {
	d, err := time.ParseDuration(c.Feed.PollInterval)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// DefaultPath returns the conventional config file location inside the
// data directory.
func (c *Config) DefaultPath() string {
	return filepath.Join(c.DataDir, "config.yaml")
}
