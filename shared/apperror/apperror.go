// Package apperror defines the closed set of error kinds produced by the
// services and their mapping to HTTP status codes.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure. The set is closed: every fallible operation
// reports one of these kinds and the HTTP layer maps it to a status.
type Kind uint8

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthenticated
	KindInvalidCredentials
	KindNotFound
	KindConstraintViolation
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindNotFound:
		return "not_found"
	case KindConstraintViolation:
		return "constraint_violation"
	default:
		return "internal"
	}
}

// HTTPStatus returns the response status for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest, KindInvalidCredentials:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConstraintViolation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is safe to show to clients;
// Err carries the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New creates an Error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error that keeps err as its cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err. Errors that are not an *Error are
// treated as internal faults.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Common client-facing errors.
var (
	ErrUnauthorized       = New(KindUnauthenticated, "Unauthorized")
	ErrMissingFields      = New(KindBadRequest, "Please fill all fields")
	ErrInvalidCredentials = New(KindInvalidCredentials, "Invalid credentials")
	ErrNotFound           = New(KindNotFound, "Not found")
	ErrInternal           = New(KindInternal, "Internal error")
)
