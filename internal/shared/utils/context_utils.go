package utils

import (
	"context"
	"errors"

	"wellness-admin/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrUserIDNotFound       = errors.New("userID not found in context")
	ErrUserIDNotString      = errors.New("userID in context is not a string")
	ErrUserEmailNotFound    = errors.New("userEmail not found in context")
	ErrUserEmailNotString   = errors.New("userEmail in context is not a string")
	ErrRoleNotFound         = errors.New("role not found in context")
	ErrRoleNotString        = errors.New("role in context is not a string")
	ErrRequestIDNotFound    = errors.New("requestID not found in context")
	ErrRequestIDNotString   = errors.New("requestID in context is not a string")
	ErrAccessTokenNotFound  = errors.New("access token not found in context")
	ErrAccessTokenNotString = errors.New("access token in context is not a string")
)

// WithUserID returns a context carrying the authenticated subject ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDKey, userID)
}

// WithUserEmail returns a context carrying the authenticated user's email.
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, contextkeys.UserEmailKey, email)
}

// WithRole returns a context carrying the authenticated user's role.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, contextkeys.RoleKey, role)
}

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithAccessToken returns a context carrying the backend access token.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextkeys.AccessTokenKey, token)
}

// GetUserIDFromContext retrieves the authenticated subject ID from the context.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserIDKey)
	if val == nil {
		return "", ErrUserIDNotFound
	}
	userID, ok := val.(string)
	if !ok {
		return "", ErrUserIDNotString
	}
	return userID, nil
}

// GetUserEmailFromContext retrieves the authenticated user's email from the context.
func GetUserEmailFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserEmailKey)
	if val == nil {
		return "", ErrUserEmailNotFound
	}
	email, ok := val.(string)
	if !ok {
		return "", ErrUserEmailNotString
	}
	return email, nil
}

// GetRoleFromContext retrieves the authenticated user's role from the context.
func GetRoleFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.RoleKey)
	if val == nil {
		return "", ErrRoleNotFound
	}
	role, ok := val.(string)
	if !ok {
		return "", ErrRoleNotString
	}
	return role, nil
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.RequestIDKey)
	if val == nil {
		return "", ErrRequestIDNotFound
	}
	requestID, ok := val.(string)
	if !ok {
		return "", ErrRequestIDNotString
	}
	return requestID, nil
}

// GetAccessTokenFromContext retrieves the backend access token from the context.
func GetAccessTokenFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.AccessTokenKey)
	if val == nil {
		return "", ErrAccessTokenNotFound
	}
	token, ok := val.(string)
	if !ok {
		return "", ErrAccessTokenNotString
	}
	return token, nil
}
