package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Behavior(t *testing.T) {
	err := NewValidationError("invalid input").WithCode("VAL001").WithDetail("field", "email").WithComponent("auth")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "VAL001", err.Code)
	assert.Equal(t, "auth", err.Component)
	assert.Equal(t, "email", err.Details["field"])
	assert.Equal(t, "invalid input", err.Error())
}

func TestAppError_WithCause_Unwrap(t *testing.T) {
	cause := ErrUpstreamUnavailable
	err := NewUpstreamError("auth API unreachable").WithCause(cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "auth API unreachable")
}

func TestWrapError_PreservesAppError(t *testing.T) {
	original := NewAuthenticationError("bad token")
	wrapped := WrapError(original, "ignored")
	assert.Same(t, original, wrapped)
}

func TestErrorClassifiers(t *testing.T) {
	assert.True(t, IsAuthentication(ErrInvalidCredentials))
	assert.True(t, IsAuthentication(ErrSessionInvalid))
	assert.True(t, IsAuthentication(NewAuthenticationError("x")))
	assert.True(t, IsAuthorization(ErrRoleDenied))
	assert.True(t, IsAuthorization(NewAuthorizationError("x")))
	assert.True(t, IsUpstream(ErrUpstreamUnavailable))
	assert.True(t, IsUpstream(NewUpstreamError("x")))
	assert.True(t, IsValidation(NewValidationError("x")))

	assert.False(t, IsAuthentication(ErrRoleDenied))
	assert.False(t, IsUpstream(ErrInvalidCredentials))
	assert.False(t, IsValidation(ErrNotFound))
}
