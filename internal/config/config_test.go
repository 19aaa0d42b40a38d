package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "https://api.branch.io", cfg.Branch.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Branch.Timeout)
	assert.False(t, cfg.Branch.Verbose)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.LogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BRANCHIO_PRIMARY_ENV", "production")
	t.Setenv("BRANCHIO_BRANCH_KEY", "key_live_123")
	t.Setenv("BRANCHIO_BRANCH_BASE_URL", "http://localhost:8080")
	t.Setenv("BRANCHIO_BRANCH_TIMEOUT", "5s")
	t.Setenv("BRANCHIO_BRANCH_VERBOSE", "true")
	t.Setenv("BRANCHIO_LOGGING_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "key_live_123", cfg.Branch.Key)
	assert.Equal(t, "http://localhost:8080", cfg.Branch.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Branch.Timeout)
	assert.True(t, cfg.Branch.Verbose)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "warn", cfg.LogLevel())
}

func TestLoadExplicitLevel(t *testing.T) {
	t.Setenv("BRANCHIO_PRIMARY_ENV", "production")
	t.Setenv("BRANCHIO_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad base url":   {"BRANCHIO_BRANCH_BASE_URL", "not a url"},
		"negative":       {"BRANCHIO_BRANCH_TIMEOUT", "-1s"},
		"unknown level":  {"BRANCHIO_LOGGING_LEVEL", "verbose"},
		"unknown format": {"BRANCHIO_LOGGING_FORMAT", "xml"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateAfterOverride(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Branch.BaseURL = "http://localhost:8080"
	assert.NoError(t, cfg.Validate())

	cfg.Branch.BaseURL = "not a url"
	assert.ErrorContains(t, cfg.Validate(), "config validation failed")

	cfg.Branch.BaseURL = "https://api.branch.io"
	cfg.Logging.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "invalid logging config")
}

func TestTransformKey(t *testing.T) {
	assert.Equal(t, "branch.base_url", transformKey("BRANCHIO_BRANCH_BASE_URL"))
	assert.Equal(t, "logging.level", transformKey("BRANCHIO_LOGGING_LEVEL"))
	assert.Equal(t, "primary.env", transformKey("BRANCHIO_PRIMARY_ENV"))
}
