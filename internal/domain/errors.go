package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a referenced resource URI does not resolve
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input: a malformed request body,
	// a malformed archive, or a failed relationship-integrity check
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates the caller lacks access rights
	UnauthorizedError struct {
		Message string
	}

	// NotAcceptableError indicates an upload with an unsupported file type
	NotAcceptableError struct {
		Message string
	}

	// ConflictError indicates a unique-key lookup unexpectedly matched more
	// than one resource; the data is corrupt but the request is handled
	ConflictError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string      { return e.Message }
func (e *ValidationError) Error() string    { return e.Message }
func (e *UnauthorizedError) Error() string  { return e.Message }
func (e *NotAcceptableError) Error() string { return e.Message }
func (e *ConflictError) Error() string      { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int    { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int  { return http.StatusUnauthorized }
func (e *NotAcceptableError) StatusCode() int { return http.StatusNotAcceptable }
func (e *ConflictError) StatusCode() int      { return http.StatusConflict }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotAcceptable = errors.New("not acceptable")
)

// Is implementations so typed errors match their sentinels via errors.Is()
func (e *NotFoundError) Is(target error) bool      { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool    { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool  { return target == ErrUnauthorized }
func (e *NotAcceptableError) Is(target error) bool { return target == ErrNotAcceptable }
func (e *ConflictError) Is(target error) bool      { return target == ErrConflict }

// IsOperational reports whether err is an anticipated failure mode with a
// defined recovery path. Operational errors inside an async task are recorded
// on the task and go no further; anything else is treated as a sign of an
// unknown process state and escalated.
func IsOperational(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotAcceptable)
}
