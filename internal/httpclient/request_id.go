package httpclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header carrying the request correlation ID.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID returns a context whose calls reuse requestID instead of
// generating a new one.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// requestIDFrom returns the request ID stored in ctx, or "".
func requestIDFrom(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// setRequestID ensures req carries a request ID and returns it.
//
//   - If the context already holds one (WithRequestID): reuse it.
//   - If not: generate a new UUID.
func setRequestID(req *http.Request) string {
	requestID := requestIDFrom(req.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	req.Header.Set(RequestIDHeader, requestID)
	return requestID
}
