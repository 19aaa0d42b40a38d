package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/go-branchio/pkg/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallPostsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/url", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"channel": "facebook"}, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://example.app.link/abc"}`))
	}))
	defer server.Close()

	tr := NewTransport(server.URL)
	resp, err := tr.Call(context.Background(), http.MethodPost, "/v1/url", map[string]any{"channel": "facebook"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"url": "https://example.app.link/abc"}, resp)
}

func TestCallWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Empty(t, r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Empty(t, body)

		_, _ = w.Write([]byte(`[1,2,3]`))
	}))
	defer server.Close()

	resp, err := NewTransport(server.URL).Call(context.Background(), http.MethodGet, "/v1/app", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, resp)
}

func TestCallTrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/url", r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tr := NewTransport(server.URL + "/")
	assert.Equal(t, server.URL, tr.BaseURL())

	_, err := tr.Call(context.Background(), http.MethodPost, "/v1/url", map[string]any{})
	require.NoError(t, err)
}

func TestCallEncodeError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	body := map[string]any{"data": map[string]any{"callback": func() {}}}
	_, err := NewTransport(server.URL).Call(context.Background(), http.MethodPost, "/v1/url", body)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.EncodeError)
	assert.NotErrorIs(t, err, errs.TransportError)

	var apiErr *errs.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "POST /v1/url", apiErr.Op)
	assert.Zero(t, apiErr.Status)
	assert.Zero(t, calls)
}

func TestCallDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"url": "https://example`))
	}))
	defer server.Close()

	resp, err := NewTransport(server.URL).Call(context.Background(), http.MethodPost, "/v1/url", map[string]any{})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, errs.DecodeError)

	var apiErr *errs.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "POST /v1/url", apiErr.Op)
	assert.Equal(t, http.StatusOK, apiErr.Status)
	assert.Equal(t, `{"url": "https://example`, string(apiErr.Body))
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestCallUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid or missing app id, Branch key, or secret","code":400}}`))
	}))
	defer server.Close()

	_, err := NewTransport(server.URL).Call(context.Background(), http.MethodPost, "/v1/url", map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.TransportError)

	var apiErr *errs.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, string(apiErr.Body), "Invalid or missing app id")
}

func TestCallNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewTransport(url).Call(context.Background(), http.MethodPost, "/v1/url", map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.TransportError)

	var apiErr *errs.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Zero(t, apiErr.Status)
}

func TestCallClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Timeout = 20 * time.Millisecond

	_, err := NewTransport(server.URL, WithClient(New(cfg))).Call(context.Background(), http.MethodGet, "/slow", nil)
	assert.ErrorIs(t, err, errs.TransportError)
}

func TestCallReusesRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-123", r.Header.Get(RequestIDHeader))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx := WithRequestID(context.Background(), "req-123")
	_, err := NewTransport(server.URL).Call(ctx, http.MethodPost, "/v1/url", map[string]any{})
	require.NoError(t, err)
}

func TestCallVerboseLogsURLAndParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	tr := NewTransport(server.URL, WithLogger(&logger), WithVerbose(true))
	_, err := tr.Call(context.Background(), http.MethodPost, "/v1/url", map[string]any{"channel": "facebook"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Making web request")
	assert.Contains(t, out, server.URL+"/v1/url")
	assert.Contains(t, out, `"params":{"channel":"facebook"}`)
}

func TestCallQuietByDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	_, err := NewTransport(server.URL, WithLogger(&logger)).Call(context.Background(), http.MethodPost, "/v1/url", map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
