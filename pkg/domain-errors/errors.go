// Package domainerrors provides coded errors for the credential services.
// Services attach a Code so callers and the HTTP layer branch on kind,
// never on message text.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// CodeBadRequest marks incomplete or malformed caller input.
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks a lookup that yielded no match.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a request that would duplicate existing state.
	CodeConflict Code = "conflict"
	// CodeInternal marks a persistence or infrastructure failure. Safe to retry.
	CodeInternal Code = "internal"
	// CodeUnavailable marks an unreachable upstream dependency. Safe to retry.
	CodeUnavailable Code = "unavailable"
)

// Error is a domain error with a stable code and a caller-safe message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error. The cause is kept
// for logging but never rendered to callers.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// GetCode extracts the code from err, defaulting to CodeInternal for
// unclassified errors so nothing leaks as anything but a server error.
func GetCode(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Message extracts the caller-safe message from err. Unclassified errors get
// a generic message; their detail belongs in logs only.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a code to its HTTP status. Both retryable server-side
// codes collapse to 500: callers only learn that the operation did not
// complete and may be retried.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeInternal, CodeUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
