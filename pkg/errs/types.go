package errs

import (
	"fmt"
	"strings"
)

// Kind names a class of failure.
//
// Kind implements error itself, so a Kind value doubles as the sentinel
// matched by errors.Is:
//
//	errors.Is(err, errs.MissingRequiredField)
type Kind string

const (
	// MissingRequiredField: a required value was absent.
	MissingRequiredField Kind = "missing required field"

	// TypeMismatch: the value is not one of the expected types.
	TypeMismatch Kind = "type mismatch"

	// LengthExceeded: the value is longer than its maximum length.
	LengthExceeded Kind = "length exceeded"

	// SubTypeMismatch: an element of a list (or a value of a map) has
	// the wrong type.
	SubTypeMismatch Kind = "sub type mismatch"

	// SubLengthExceeded: an element of a list (or a value of a map) is
	// longer than the sub maximum length.
	SubLengthExceeded Kind = "sub length exceeded"

	// RangeViolation: an integer is outside its inclusive bounds.
	RangeViolation Kind = "range violation"

	// TransportError: the HTTP call itself failed.
	TransportError Kind = "transport error"

	// EncodeError: the request body could not be encoded as JSON, so
	// nothing was sent.
	EncodeError Kind = "encode error"

	// DecodeError: the response body is not valid JSON.
	DecodeError Kind = "decode error"
)

func (k Kind) Error() string {
	return string(k)
}

// Code returns the machine-friendly form of the kind.
//
// Example:
//
//	"range violation" -> "RANGE_VIOLATION"
func (k Kind) Code() string {
	return MakeUpperCaseWithUnderscores(string(k))
}

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "identity", "error": "length exceeded: ..." }
type FieldError struct {
	// Field is the parameter name the error relates to (e.g. "tags").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ValidationError is returned when a value violates one of its constraints.
//
// Field is empty when the value was validated without a name (for example
// the top-level argument of the bulk endpoint).
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(kind Kind, field string, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Field, e.Kind, e.Message)
}

// Is reports whether target is the same Kind, or a *ValidationError of the
// same Kind.
func (e *ValidationError) Is(target error) bool {
	switch t := target.(type) {
	case Kind:
		return e.Kind == t
	case *ValidationError:
		return e.Kind == t.Kind
	}
	return false
}

// WithField returns a copy of the error attributed to field.
func (e *ValidationError) WithField(field string) *ValidationError {
	return &ValidationError{
		Kind:    e.Kind,
		Field:   field,
		Message: e.Message,
	}
}

// FieldError converts the error to its JSON shape.
func (e *ValidationError) FieldError() FieldError {
	return FieldError{
		Field: e.Field,
		Error: fmt.Sprintf("%s: %s", e.Kind, e.Message),
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
