// Package errs holds the sentinel errors shared by the service and HTTP
// layers. Callers compare with errors.Is; wrapping with %w is expected.
package errs

import "errors"

// Validation errors, surfaced to the caller as 400.
var (
	ErrMissingAttachment    = errors.New("missing attachment")
	ErrIncompleteSubmission = errors.New("incomplete submission")
)

// Authentication errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
)

// Lookup and domain errors.
var (
	ErrNotFound          = errors.New("not found")
	ErrRequestNotFound   = errors.New("request not found")
	ErrResultNotFound    = errors.New("result not found")
	ErrResultUnavailable = errors.New("result not available yet")
	ErrPaymentRequired   = errors.New("payment required")
)

// ErrTransport marks an outbound delivery failure that the caller must see,
// such as an admin reply email that could not be sent.
var ErrTransport = errors.New("transport failure")
