package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the tasksched CLI.
type Config struct {
	// Dir overrides the per-project task directory when non-empty.
	Dir      string `env:"TASKSCHED_DIR"`
	LogLevel string `env:"TASKSCHED_LOG_LEVEL" envDefault:"warn"`

	// NoColorValue follows the no-color.org convention: any non-empty value
	// disables color.
	NoColorValue string `env:"NO_COLOR"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// NoColor reports whether colored output is disabled.
func (c *Config) NoColor() bool {
	return c.NoColorValue != ""
}

// ZapLevel returns the log level as a zap level. Validate must have passed.
func (c *Config) ZapLevel() zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return zapcore.WarnLevel
	}
	return lvl
}
