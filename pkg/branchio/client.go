// Package branchio is a client for the Branch deep-link HTTP API.
//
// Parameters are validated locally before anything is sent; a request
// that violates a constraint fails with an *errs.ValidationError and never
// reaches the network.
//
//	client := branchio.NewClient(os.Getenv("BRANCH_KEY"))
//	resp, err := client.CreateDeepLinkURL(ctx, branchio.DeepLinkRequest{
//		Channel: "facebook",
//		Data:    map[string]any{branchio.DataIOSURL: "https://example.com"},
//	})
//	url, err := branchio.LinkURL(resp)
package branchio

import (
	"context"
	"net/http"

	"github.com/deppfellow/go-branchio/internal/httpclient"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the correlation id sent with every API call.
const RequestIDHeader = httpclient.RequestIDHeader

// WithRequestID returns a context whose API calls send requestID in the
// RequestIDHeader instead of a generated UUID. The same id is set on the
// RequestID of any *errs.APIError the call returns.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return httpclient.WithRequestID(ctx, requestID)
}

// Client calls the Branch API with a static Branch key.
//
// Client has no mutable state once built and is safe for concurrent use.
type Client struct {
	// key is the Branch key sent with every call.
	key string

	// transport performs the HTTP calls.
	transport *httpclient.Transport

	logger *zerolog.Logger
}

type options struct {
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
	verbose    bool
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL replaces DefaultBaseURL, e.g. with a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient sets the HTTP client used for calls.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithLogger sets the logger. Without it the client logs nothing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithVerbose logs the URL and body of every call before it is made.
func WithVerbose(verbose bool) Option {
	return func(o *options) { o.verbose = verbose }
}

// NewClient creates a Client for the given Branch key.
//
// An empty key is accepted: DeepLinkParams does not need one, and
// CreateDeepLinkURL rejects it with a MissingRequiredField error.
func NewClient(key string, opts ...Option) *Client {
	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	transportOpts := []httpclient.Option{httpclient.WithVerbose(o.verbose)}
	if o.httpClient != nil {
		transportOpts = append(transportOpts, httpclient.WithClient(o.httpClient))
	}
	if o.logger != nil {
		transportOpts = append(transportOpts, httpclient.WithLogger(o.logger))
	}

	logger := o.logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Client{
		key:       key,
		transport: httpclient.NewTransport(o.baseURL, transportOpts...),
		logger:    logger,
	}
}

// BaseURL returns the URL the client sends requests to.
func (c *Client) BaseURL() string {
	return c.transport.BaseURL()
}
