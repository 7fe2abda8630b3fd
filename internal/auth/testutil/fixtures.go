package testutil

import (
	"time"

	"wellness-admin/internal/auth/config"
	"wellness-admin/internal/auth/domain/model"
	"wellness-admin/internal/auth/domain/repository"
)

// IdentityFixture provides test data for Identity values.
type IdentityFixture struct{}

// NewIdentityFixture creates a new IdentityFixture instance.
func NewIdentityFixture() *IdentityFixture {
	return &IdentityFixture{}
}

// Admin returns a valid admin identity.
func (f *IdentityFixture) Admin() *model.Identity {
	return &model.Identity{
		ID:          "test-admin-id-123",
		Name:        "Ada Admin",
		Email:       "admin@example.com",
		Role:        model.RoleAdmin,
		AccessToken: "backend-token-123",
	}
}

// WithRole returns an identity carrying the given role string.
func (f *IdentityFixture) WithRole(role string) *model.Identity {
	return &model.Identity{
		ID:          "test-user-" + role,
		Email:       role + "@example.com",
		Role:        model.ParseRole(role),
		AccessToken: "backend-token-" + role,
	}
}

// LoginResultFor builds the backend API payload that yields the identity.
func (f *IdentityFixture) LoginResultFor(identity *model.Identity) *repository.LoginResult {
	return &repository.LoginResult{
		User: &repository.BackendUser{
			ID:    identity.ID,
			Name:  identity.Name,
			Email: identity.Email,
			Role:  identity.Role.String(),
		},
		AccessToken: identity.AccessToken,
	}
}

// TestConfig returns a bridge config suitable for tests.
func TestConfig(apiRoot string) *config.Config {
	return &config.Config{
		APIRoot:            apiRoot,
		APIPrefix:          "/api/v1",
		BackendHTTPTimeout: 2 * time.Second,
		SessionSecret:      "test-secret-key-32-characters-long-12345",
		SessionIssuer:      "wellness-admin-test",
		SessionTTL:         24 * time.Hour,
		CookieName:         "admin_session",
		CookiePath:         "/",
		CookieSecure:       false,
		CookieHTTPOnly:     true,
		CookieSameSite:     "Lax",
	}
}
