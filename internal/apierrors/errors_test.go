package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrValidation_JoinsViolations(t *testing.T) {
	err := NewErrValidation([]string{"username is required", "invalid email format"})

	assert.Equal(t, http.StatusBadRequest, err.HTTPCode)
	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, "username is required; invalid email format", err.Error())
}

func TestErrorsAs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewErrConflict())

	var apiErr *APIError
	require.True(t, errors.As(wrapped, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.HTTPCode)
	assert.Equal(t, CodeConflict, apiErr.Code)
}

func TestNewErrInternal_HidesCauseButUnwraps(t *testing.T) {
	cause := errors.New("pq: connection reset by peer")
	err := NewErrInternal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
	assert.NotContains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, cause)
}

func TestUnauthorizedVariants(t *testing.T) {
	for _, err := range []*APIError{
		NewErrInvalidCredentials(),
		NewErrSessionInvalid(),
		NewErrSessionExpired(),
	} {
		assert.Equal(t, http.StatusUnauthorized, err.HTTPCode)
	}
}
