package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all perfbench configuration.
type Config struct {
	// Result database
	Store StoreConfig `yaml:"store"`

	// Benchmark runner defaults
	Run RunConfig `yaml:"run"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig configures the SQLite result store.
type StoreConfig struct {
	// Directory holding perfbench.db
	DatabaseDir string `yaml:"database_dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			DatabaseDir: ".perfbench",
		},

		Run: RunConfig{
			Runs:    5,
			Out:     "",
			Timeout: "10m",
		},

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "console",
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("PERFBENCH_DB_DIR"); dir != "" {
		c.Store.DatabaseDir = dir
	}
	if level := os.Getenv("PERFBENCH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
		c.Logging.DebugMode = true
	}
	if runs := os.Getenv("PERFBENCH_RUNS"); runs != "" {
		// Non-numeric values are ignored.
		if n, err := strconv.Atoi(runs); err == nil {
			c.Run.Runs = n
		}
	}
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Store.DatabaseDir == "" {
		return fmt.Errorf("store database_dir not configured (set PERFBENCH_DB_DIR)")
	}
	if c.Run.Runs < 1 {
		return fmt.Errorf("run.runs must be at least 1, got %d", c.Run.Runs)
	}
	if _, err := time.ParseDuration(c.Run.Timeout); err != nil {
		return fmt.Errorf("invalid run.timeout %q: %w", c.Run.Timeout, err)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}
