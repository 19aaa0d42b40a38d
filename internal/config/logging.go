package config

import (
	"fmt"
)

// LoggingConfig holds the CLI logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	// Empty means "pick from the environment", see LogLevel.
	Level string `koanf:"level"`

	// Format selects the output format: "console" or "json".
	Format string `koanf:"format" validate:"required"`
}

// Validate applies the rules that go beyond struct tags.
//
// Returns:
//   - nil if configuration is valid
//   - an error describing the first validation failure
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"":      true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Level)
	}

	if c.Format != "console" && c.Format != "json" {
		return fmt.Errorf("invalid logging format: %s (must be one of: console, json)", c.Format)
	}

	return nil
}

// LogLevel returns the effective log level.
//
// An explicit level wins. Otherwise production defaults to "warn" and
// every other environment to "info".
func (c *Config) LogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}
	if c.IsProduction() {
		return "warn"
	}
	return "info"
}
