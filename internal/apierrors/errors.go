package apierrors

import (
	"net/http"
	"strings"
)

// Error codes exposed to API clients.
const (
	CodeValidation         = "validation_failed"
	CodeConflict           = "conflict"
	CodeInvalidCredentials = "invalid_credentials"
	CodeSessionInvalid     = "session_invalid"
	CodeSessionExpired     = "session_expired"
	CodeNotFound           = "not_found"
	CodeInternal           = "internal_error"
)

// APIError is an error the facade is allowed to show to callers. Message is
// always safe for display: it never names the violated constraint beyond what
// the client may learn, and never carries credential material.
type APIError struct {
	HTTPCode int
	Code     string
	Message  string
	cause    error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any, for logging. It is never part
// of the client-facing message.
func (e *APIError) Unwrap() error {
	return e.cause
}

// NewErrValidation reports every violated rule, not just the first.
func NewErrValidation(violations []string) *APIError {
	return &APIError{
		HTTPCode: http.StatusBadRequest,
		Code:     CodeValidation,
		Message:  strings.Join(violations, "; "),
	}
}

// NewErrConflict deliberately does not reveal which identifier collided.
func NewErrConflict() *APIError {
	return &APIError{
		HTTPCode: http.StatusConflict,
		Code:     CodeConflict,
		Message:  "username or email already exists",
	}
}

// NewErrInvalidCredentials covers both unknown identity and wrong password,
// undifferentiated to prevent account enumeration.
func NewErrInvalidCredentials() *APIError {
	return &APIError{
		HTTPCode: http.StatusUnauthorized,
		Code:     CodeInvalidCredentials,
		Message:  "invalid credentials",
	}
}

// NewErrSessionInvalid marks a token that is unknown or deactivated.
func NewErrSessionInvalid() *APIError {
	return &APIError{
		HTTPCode: http.StatusUnauthorized,
		Code:     CodeSessionInvalid,
		Message:  "session is invalid",
	}
}

// NewErrSessionExpired marks a token whose validity window has passed.
func NewErrSessionExpired() *APIError {
	return &APIError{
		HTTPCode: http.StatusUnauthorized,
		Code:     CodeSessionExpired,
		Message:  "session has expired",
	}
}

// NewErrUserNotFound marks a referenced user id that is absent or inactive.
func NewErrUserNotFound() *APIError {
	return &APIError{
		HTTPCode: http.StatusNotFound,
		Code:     CodeNotFound,
		Message:  "user not found",
	}
}

// NewErrInternal wraps an unexpected failure. The cause goes to logs, not to
// the client.
func NewErrInternal(err error) *APIError {
	return &APIError{
		HTTPCode: http.StatusInternalServerError,
		Code:     CodeInternal,
		Message:  "internal server error",
		cause:    err,
	}
}
