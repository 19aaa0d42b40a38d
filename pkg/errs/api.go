package errs

import (
	"fmt"
)

// APIError describes a failed call against the remote API.
//
// Fields:
//   - Kind: TransportError, EncodeError or DecodeError.
//   - Op: the call that failed, e.g. "POST /v1/url".
//   - Status: HTTP status code, 0 when no response was received.
//   - Body: raw response body, when one was read.
//   - RequestID: the X-Request-ID sent with the call.
//   - Err: the underlying cause.
type APIError struct {
	Kind      Kind
	Op        string
	Status    int
	Body      []byte
	RequestID string
	Err       error
}

// NewTransportError creates an APIError for a network-level failure or an
// unsuccessful HTTP status.
func NewTransportError(op string, status int, body []byte, err error) *APIError {
	return &APIError{
		Kind:   TransportError,
		Op:     op,
		Status: status,
		Body:   body,
		Err:    err,
	}
}

// NewEncodeError creates an APIError for a request body that could not be
// encoded. No request was sent, so there is no status or response body.
func NewEncodeError(op string, err error) *APIError {
	return &APIError{
		Kind: EncodeError,
		Op:   op,
		Err:  err,
	}
}

// NewDecodeError creates an APIError for a response body that is not JSON.
func NewDecodeError(op string, status int, body []byte, err error) *APIError {
	return &APIError{
		Kind:   DecodeError,
		Op:     op,
		Status: status,
		Body:   body,
		Err:    err,
	}
}

func (e *APIError) Error() string {
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		base += fmt.Sprintf(" (status=%d)", e.Status)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same Kind, or an *APIError of the same
// Kind.
func (e *APIError) Is(target error) bool {
	switch t := target.(type) {
	case Kind:
		return e.Kind == t
	case *APIError:
		return e.Kind == t.Kind
	}
	return false
}

// Code returns the machine-friendly code of the error kind.
func (e *APIError) Code() string {
	return e.Kind.Code()
}
