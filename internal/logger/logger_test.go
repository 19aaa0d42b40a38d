package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/go-branchio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "info"

	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, cfg)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("url", "https://api.branch.io/v1/url").Msg("Making web request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "development", entry["env"])
	assert.Equal(t, "Making web request", entry["message"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewConsole(t *testing.T) {
	cfg := config.Default()

	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, cfg)
	require.NoError(t, err)

	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "loud"

	_, err := NewWithWriter(&bytes.Buffer{}, cfg)
	assert.Error(t, err)
}
