package repository

import (
	"context"

	"wellness-admin/internal/auth/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the signed contents of the session cookie. The subject ID
// lives in the registered Subject claim; issued-at and expiry in IssuedAt and
// ExpiresAt.
type SessionClaims struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AccessToken string `json:"accessToken"`
	jwt.RegisteredClaims
}

// UserID returns the subject ID embedded in the claims.
func (c *SessionClaims) UserID() string {
	return c.Subject
}

// ParsedRole classifies the embedded role string.
func (c *SessionClaims) ParsedRole() model.Role {
	return model.ParseRole(c.Role)
}

// Identity reconstructs the identity the claims were encoded from.
func (c *SessionClaims) Identity() *model.Identity {
	return &model.Identity{
		ID:          c.Subject,
		Name:        c.Name,
		Email:       c.Email,
		Role:        c.ParsedRole(),
		AccessToken: c.AccessToken,
	}
}

// TokenCodec converts identities into tamper-evident session tokens and back.
// Decode performs integrity and expiry verification only; it makes no access
// decision.
type TokenCodec interface {
	Encode(ctx context.Context, identity *model.Identity) (string, error)
	Decode(ctx context.Context, tokenString string) (*SessionClaims, error)
}
