package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"easy2go/internal/logger"
)

// Config holds the client configuration, sourced from the environment
// (optionally seeded from a .env file loaded in main).
type Config struct {
	// Backend Configuration
	APIBase     string        // reconcile backend base URL
	StaticBase  string        // base URL for attachment image paths
	HTTPTimeout time.Duration // per-request timeout

	// Session Configuration
	SessionFile string // path of the persisted session store

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

const defaultAPIBase = "http://127.0.0.1:8000"

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("API_BASE", defaultAPIBase)
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_TIME_FORMAT", time.RFC3339)
	v.SetDefault("LOG_OUTPUT", "stderr")

	config := &Config{
		APIBase:       v.GetString("API_BASE"),
		StaticBase:    v.GetString("STATIC_BASE"),
		HTTPTimeout:   v.GetDuration("HTTP_TIMEOUT"),
		SessionFile:   v.GetString("SESSION_FILE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		LogTimeFormat: v.GetString("LOG_TIME_FORMAT"),
		LogOutput:     v.GetString("LOG_OUTPUT"),
	}

	if config.StaticBase == "" {
		// Image paths are relative; the static file server hangs off the
		// same host as the API.
		config.StaticBase = strings.TrimRight(config.APIBase, "/") + "/static"
	}

	if config.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve home directory for session file: %w", err)
		}
		config.SessionFile = filepath.Join(home, ".easy2go", "session.json")
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.APIBase == "" {
		return fmt.Errorf("API_BASE is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}
