// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types (struct), and validates them so
// they can be reused across the CLI runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate values so the CLI fails fast on bad config.
//   - Provide defaults for everything (no variable is mandatory).
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists in the working directory,
	// it gets loaded into the process env before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

/*
	Env vars are read using the prefix BRANCHIO_.
	The first underscore after the prefix separates the section from the
	key, the rest stays as is:

	BRANCHIO_BRANCH_BASE_URL -> branch.base_url -> Config.Branch.BaseURL
	BRANCHIO_LOGGING_LEVEL   -> logging.level   -> Config.Logging.Level
*/

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "BRANCHIO_"

// Config is the root configuration object for the CLI.
type Config struct {
	Primary Primary       `koanf:"primary" validate:"required"`
	Branch  BranchConfig  `koanf:"branch" validate:"required"`
	Logging LoggingConfig `koanf:"logging" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// BranchConfig groups settings for the Branch API client.
type BranchConfig struct {
	// Key is the Branch key. It may be empty: building params
	// (--skip-api-call) does not need one.
	Key string `koanf:"key"`

	// BaseURL is the API host the paths are appended to.
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// Timeout bounds a whole API call; zero disables it. Parsed from
	// duration strings like "30s".
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`

	// Verbose logs every call before it is made.
	Verbose bool `koanf:"verbose"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Branch: BranchConfig{
			BaseURL: "https://api.branch.io",
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Format: "console",
		},
	}
}

// Load reads the configuration from the process environment, on top of
// Default(), and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", transformKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	// Unmarshal on top of the defaults: keys absent from the environment
	// keep their default value.
	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags and the logging settings.
//
// Load already calls it. Run it again after changing a loaded Config (for
// example from command-line flags) so overrides get the same checks as
// the environment.
func (c *Config) Validate() error {
	// Struct tags first: required fields, URL format, non-negative timeout.
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "config validation failed")
	}

	// Enum-like values validator tags don't cover well.
	if err := c.Logging.Validate(); err != nil {
		return errors.Wrap(err, "invalid logging config")
	}

	return nil
}

// transformKey maps BRANCHIO_BRANCH_BASE_URL to branch.base_url.
func transformKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// IsProduction reports whether the CLI runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
