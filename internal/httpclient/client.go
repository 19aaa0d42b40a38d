// Package httpclient performs the HTTP calls of the branchio client.
//
// It builds the *http.Client (timeouts, proxy) and a Transport that joins
// a base URL with a path, sends an optional JSON body and decodes the
// JSON response.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// DefaultUserAgent is sent with every request built by New unless the
// Config names another one.
const DefaultUserAgent = "go-branchio"

// Config tunes the *http.Client used for API calls.
//
// Branch calls are small JSON round trips, so only the timeouts and the
// User-Agent are exposed. Connection pooling keeps the net/http defaults.
type Config struct {
	// Timeout bounds a whole call, from dial to the last byte of the
	// response. Zero means no timeout; a context deadline still applies.
	Timeout time.Duration

	// DialTimeout bounds opening the TCP connection.
	DialTimeout time.Duration

	// TLSHandshakeTimeout bounds the TLS handshake with the API host.
	TLSHandshakeTimeout time.Duration

	// ResponseHeaderTimeout bounds the wait for the response headers once
	// the request has been written. Zero means no limit.
	ResponseHeaderTimeout time.Duration

	// UserAgent is set on requests that don't carry their own. Empty
	// leaves the Go default.
	UserAgent string
}

// DefaultConfig returns the settings used when no *http.Client is given.
func DefaultConfig() Config {
	return Config{
		Timeout:               30 * time.Second,
		DialTimeout:           5 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		UserAgent:             DefaultUserAgent,
	}
}

// WithTimeout returns a copy of c with the total call timeout replaced.
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}

// New builds an *http.Client from cfg.
//
// The transport is a clone of http.DefaultTransport, so proxies from the
// environment (HTTPS_PROXY, NO_PROXY) keep working.
func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: 30 * time.Second,
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.Proxy = http.ProxyFromEnvironment
	tr.DialContext = dialer.DialContext
	tr.TLSHandshakeTimeout = cfg.TLSHandshakeTimeout
	tr.ResponseHeaderTimeout = cfg.ResponseHeaderTimeout

	var rt http.RoundTripper = tr
	if cfg.UserAgent != "" {
		rt = &userAgentTransport{base: tr, userAgent: cfg.UserAgent}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
	}
}

// userAgentTransport sets the User-Agent header on outgoing requests.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}

	// A RoundTripper must not modify the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}
