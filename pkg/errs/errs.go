// Package errs define the error types returned by the branchio client.
//
// Every failure carries a Kind so callers can classify it with
// errors.Is, without parsing messages:
//
//	if errors.Is(err, errs.RangeViolation) { ... }
//
// - Validation errors (ValidationError) are raised before any network call.
// - Transport and decode errors (APIError) describe a failed API call.
package errs
