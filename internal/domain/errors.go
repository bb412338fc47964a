package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling at the
// transport layer without the handlers knowing each concrete type.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}

	// ConflictError indicates the operation contradicts existing state,
	// e.g. accepting a solution for a problem that is already solved.
	ConflictError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }
func (e *ConflictError) Error() string     { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }
func (e *ConflictError) StatusCode() int     { return http.StatusConflict }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrNotConfigured means the hosted identity provider is missing its
	// endpoint or key. Distinct from credential rejection so callers can
	// tell "set up your environment" apart from "wrong password".
	ErrNotConfigured = errors.New("identity provider not configured")
)

func (e *NotFoundError) Is(target error) bool  { return target == ErrNotFound }
func (e *ConflictError) Is(target error) bool  { return target == ErrConflict }
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// ProviderError carries a failure reported by the external identity
// provider: rejected credentials or a transport problem. The message is
// sourced from the provider and safe to show to the user.
type ProviderError struct {
	Message string
	// Transient is true for transport-level failures where retrying the
	// action may succeed, false for definitive rejections.
	Transient bool
}

func (e *ProviderError) Error() string { return e.Message }

func (e *ProviderError) StatusCode() int {
	if e.Transient {
		return http.StatusBadGateway
	}
	return http.StatusUnauthorized
}
