package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/switchboard/pkg/observability"
	"github.com/platinummonkey/switchboard/pkg/plugins"
)

// Config holds all application configuration
type Config struct {
	// Plugin loading configuration
	Plugins PluginsConfig `yaml:"plugins"`

	// Status API configuration
	Status StatusConfig `yaml:"status"`

	// Observability configuration
	Observability ObservabilityConfig `yaml:"observability"`
}

// PluginsConfig holds plugin discovery settings
type PluginsConfig struct {
	Root string `yaml:"root"`
}

// StatusConfig holds the introspection HTTP server settings. An empty Addr
// disables the server.
type StatusConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Plugins: PluginsConfig{
			Root: plugins.DefaultPluginRoot,
		},
		Status: StatusConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: observability.DefaultShutdownTimeout,
		},
		Observability: ObservabilityConfig{
			LogLevel:       "info",
			LogFormat:      observability.FormatText,
			MetricsEnabled: true,
		},
	}
}

// Load loads configuration from the YAML file at path (skipped when empty),
// then applies environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// mergeFile overlays the YAML file at path onto c. Fields absent from the
// file keep their current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnv overrides c with any SWITCHBOARD_* variables that are set
func (c *Config) applyEnv() {
	c.Plugins.Root = getEnv("SWITCHBOARD_PLUGIN_ROOT", c.Plugins.Root)

	c.Status.Addr = getEnv("SWITCHBOARD_STATUS_ADDR", c.Status.Addr)
	c.Status.ReadTimeout = getEnvDuration("SWITCHBOARD_STATUS_READ_TIMEOUT", c.Status.ReadTimeout)
	c.Status.WriteTimeout = getEnvDuration("SWITCHBOARD_STATUS_WRITE_TIMEOUT", c.Status.WriteTimeout)
	c.Status.ShutdownTimeout = getEnvDuration("SWITCHBOARD_SHUTDOWN_TIMEOUT", c.Status.ShutdownTimeout)

	c.Observability.LogLevel = getEnv("SWITCHBOARD_LOG_LEVEL", c.Observability.LogLevel)
	c.Observability.LogFormat = getEnv("SWITCHBOARD_LOG_FORMAT", c.Observability.LogFormat)
	c.Observability.MetricsEnabled = getEnvBool("SWITCHBOARD_METRICS_ENABLED", c.Observability.MetricsEnabled)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Plugins.Root) == "" {
		return fmt.Errorf("plugin root is required")
	}

	if err := observability.ValidateFormat(c.Observability.LogFormat); err != nil {
		return err
	}

	if c.Status.Addr != "" {
		if c.Status.ReadTimeout < 0 || c.Status.WriteTimeout < 0 {
			return fmt.Errorf("status server timeouts must not be negative")
		}
		if c.Status.ShutdownTimeout < 0 {
			return fmt.Errorf("shutdown timeout must not be negative")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
