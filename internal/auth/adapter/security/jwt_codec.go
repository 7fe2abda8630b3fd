package security

import (
	"context"
	"errors"
	"time"

	"wellness-admin/internal/auth/config"
	"wellness-admin/internal/auth/domain/model"
	"wellness-admin/internal/auth/domain/repository"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid          = errors.New("session token is invalid")
	ErrTokenExpired          = errors.New("session token is expired")
	ErrTokenSignatureInvalid = errors.New("session token signature is invalid")
)

// JWTSessionCodec signs and verifies the session cookie contents with HS256.
// It verifies integrity and expiry only; the role gate interprets the claims.
type JWTSessionCodec struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewJWTSessionCodec creates a new session token codec.
func NewJWTSessionCodec(cfg *config.Config) (*JWTSessionCodec, error) {
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret cannot be empty")
	}
	if cfg.SessionIssuer == "" {
		return nil, errors.New("session issuer cannot be empty")
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("session TTL must be positive")
	}

	return &JWTSessionCodec{
		secretKey: []byte(cfg.SessionSecret),
		issuer:    cfg.SessionIssuer,
		ttl:       cfg.SessionTTL,
	}, nil
}

// Encode produces a signed session token embedding the identity and the
// backend access token, with a fixed TTL from issuance.
func (s *JWTSessionCodec) Encode(ctx context.Context, identity *model.Identity) (string, error) {
	if identity == nil || identity.ID == "" {
		return "", ErrTokenInvalid
	}

	now := time.Now()
	claims := &repository.SessionClaims{
		Name:        identity.Name,
		Email:       identity.Email,
		Role:        identity.Role.String(),
		AccessToken: identity.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Decode verifies a session token and returns its claims. Every failure mode
// maps onto one of the sentinel errors above; callers treat them all as
// "no session".
func (s *JWTSessionCodec) Decode(ctx context.Context, tokenString string) (*repository.SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &repository.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenSignatureInvalid
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*repository.SessionClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

var _ repository.TokenCodec = (*JWTSessionCodec)(nil)
