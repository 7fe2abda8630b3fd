package repository

import (
	"context"
	"errors"
)

// Gateway error classes. Callers collapse all of them into a uniform
// "invalid credentials" outcome toward the browser; they exist so operator
// logs and the audit trail can tell a rejected login from a broken upstream.
var (
	ErrLoginRejected     = errors.New("login rejected by auth API")
	ErrMalformedResponse = errors.New("malformed auth API response")
	ErrUpstream          = errors.New("auth API unreachable")
)

// BackendUser mirrors the user object of the backend auth API.
type BackendUser struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResult is the parsed success payload of POST /auth/login.
type LoginResult struct {
	User        *BackendUser `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// AuthGateway is the client of the external backend authentication API.
// Implementations make exactly one attempt per call; retrying is the
// caller's decision.
type AuthGateway interface {
	// Login exchanges credentials for a user profile and access token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// CurrentUser fetches the profile the access token belongs to. Used as
	// an alternate session-verification strategy.
	CurrentUser(ctx context.Context, accessToken string) (*BackendUser, error)
}
