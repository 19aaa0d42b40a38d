package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]any{"url": "https://a"}))
	assert.Equal(t, "{\n  \"url\": \"https://a\"\n}\n", buf.String())
}

func TestWriteJSONUnsupported(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteJSON(&buf, map[string]any{"ch": make(chan int)}))
	assert.Empty(t, buf.String())
}

func TestReadJSON(t *testing.T) {
	var v []map[string]any
	require.NoError(t, ReadJSON(strings.NewReader(`[{"channel":"sms"}]`), &v))
	assert.Equal(t, []map[string]any{{"channel": "sms"}}, v)

	assert.Error(t, ReadJSON(strings.NewReader(`[] []`), &v))
	assert.Error(t, ReadJSON(strings.NewReader(`{`), &v))
}
