package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/deppfellow/go-branchio/pkg/errs"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Transport sends JSON requests to a fixed base URL.
//
// A Transport holds no per-call state and can be shared between
// goroutines.
type Transport struct {
	baseURL string
	client  *http.Client
	logger  *zerolog.Logger
	verbose bool
}

// Option configures a Transport.
type Option func(*Transport)

// WithClient sets the HTTP client used for calls.
func WithClient(client *http.Client) Option {
	return func(t *Transport) { t.client = client }
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(t *Transport) { t.logger = logger }
}

// WithVerbose logs the target URL and the request body of every call at
// info level.
func WithVerbose(verbose bool) Option {
	return func(t *Transport) { t.verbose = verbose }
}

// NewTransport creates a Transport for baseURL (e.g. "https://api.branch.io").
//
// Without WithLogger the transport logs nothing, unless verbose is set, in
// which case it writes to stderr.
func NewTransport(baseURL string, opts ...Option) *Transport {
	t := &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.client == nil {
		t.client = New(DefaultConfig())
	}

	if t.logger == nil {
		logger := zerolog.Nop()
		if t.verbose {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		}
		t.logger = &logger
	}

	return t
}

// BaseURL returns the URL every path is appended to.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Call sends a request and returns the decoded JSON response.
//
// A non-nil body is encoded as JSON and sent with an application/json
// content type; a nil body sends no body at all.
//
// Errors:
//   - *errs.APIError of kind EncodeError when body cannot be encoded; the
//     request is not sent.
//   - *errs.APIError of kind TransportError when the request fails or the
//     status is not 2xx (Status and Body are set when a response arrived).
//   - *errs.APIError of kind DecodeError when the body is not JSON.
//
// Nothing is retried.
func (t *Transport) Call(ctx context.Context, method, path string, body any) (any, error) {
	url := t.baseURL + path
	// op names the call in errors and logs, e.g. "POST /v1/url". The base
	// URL is left out so errors read the same against any host.
	op := method + " " + path

	// Encode up front: the verbose log prints exactly the bytes that go
	// on the wire.
	var payload []byte
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.logger.Error().Err(err).Str("method", method).Str("url", url).Msg("failed to encode request body")
			return nil, errs.NewEncodeError(op, errors.Wrap(err, "failed to encode request body"))
		}
		payload = encoded
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errs.NewTransportError(op, 0, nil, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Every call gets a correlation id. It goes in the header, on every
	// log line of this call and on any error returned.
	requestID := setRequestID(req)
	logger := t.logger.With().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", url).
		Logger()

	// Verbose output is logged at info so it shows with the default level.
	if t.verbose {
		logger.Info().Msg("Making web request")
		if payload != nil {
			logger.Info().RawJSON("params", payload).Msg("Request params")
		}
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("request failed")
		return nil, withRequestID(errs.NewTransportError(op, 0, nil, err), requestID)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Int("status", resp.StatusCode).Msg("failed to read response")
		return nil, withRequestID(errs.NewTransportError(op, resp.StatusCode, nil, err), requestID)
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Int("bytes", len(raw)).
		Msg("response received")

	// Branch reports failures with a non-2xx status and a JSON error body.
	// Keep the raw body on the error so callers can inspect it.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := errors.Errorf("unexpected status %s", resp.Status)
		logger.Warn().Int("status", resp.StatusCode).Msg("request rejected")
		return nil, withRequestID(errs.NewTransportError(op, resp.StatusCode, raw, err), requestID)
	}

	// Decode into any: the API answers with an object for single calls and
	// an array for bulk calls. Numbers come back as float64.
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		logger.Error().Err(err).Int("status", resp.StatusCode).Msg("failed to decode response")
		return nil, withRequestID(errs.NewDecodeError(op, resp.StatusCode, raw, err), requestID)
	}

	return decoded, nil
}

func withRequestID(err *errs.APIError, requestID string) *errs.APIError {
	err.RequestID = requestID
	return err
}
