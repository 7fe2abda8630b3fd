package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

const minSecretLength = 32

// Config holds all configuration for the session bridge.
type Config struct {
	// Backend API
	APIRoot            string        `env:"API_ROOT,required"`
	APIPrefix          string        `env:"API_PREFIX" envDefault:"/api/v1"`
	BackendHTTPTimeout time.Duration `env:"BACKEND_HTTP_TIMEOUT" envDefault:"10s"`

	// Session token
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionIssuer string        `env:"SESSION_ISSUER" envDefault:"wellness-admin-console"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Cookie. COOKIE_SECURE has no default: whether the secure flag is set
	// must be an explicit per-environment decision, relaxed only for
	// local-loopback development origins.
	CookieName      string `env:"COOKIE_NAME" envDefault:"admin_session"`
	CookiePath      string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain    string `env:"COOKIE_DOMAIN" envDefault:""`
	CookieSecureRaw string `env:"COOKIE_SECURE,required"`
	CookieHTTPOnly  bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite  string `env:"COOKIE_SAME_SITE" envDefault:"Lax"`

	// Audit trail. Empty URI disables auditing.
	AuditMongoURI   string `env:"AUDIT_MONGODB_URI" envDefault:""`
	AuditDatabase   string `env:"AUDIT_DATABASE" envDefault:"wellness_admin"`
	AuditCollection string `env:"AUDIT_COLLECTION" envDefault:"auth_events"`

	// Derived, not read from the environment.
	CookieSecure bool `env:"-"`
}

// LoadConfig loads configuration from environment variables and validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load session bridge configuration: " + err.Error())
	}

	secure, err := strconv.ParseBool(cfg.CookieSecureRaw)
	if err != nil {
		return nil, errors.New("cookie_secure must be 'true' or 'false'")
	}
	cfg.CookieSecure = secure

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants LoadConfig relies on. Exposed separately so
// tests can build configs by hand.
func (c *Config) Validate() error {
	if c.APIRoot == "" {
		return errors.New("api_root is required")
	}
	if len(c.SessionSecret) < minSecretLength {
		return errors.New("session_secret must be at least 32 characters")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}

	c.APIRoot = strings.TrimRight(c.APIRoot, "/")

	switch strings.ToLower(c.CookieSameSite) {
	case "lax":
		c.CookieSameSite = "Lax"
	case "strict":
		c.CookieSameSite = "Strict"
	case "none":
		c.CookieSameSite = "None"
	default:
		return errors.New("cookie_same_site must be one of 'Lax', 'Strict', or 'None'")
	}
	return nil
}

// BackendBaseURL is the prefix every backend API path is joined to.
func (c *Config) BackendBaseURL() string {
	return strings.TrimRight(c.APIRoot, "/") + c.APIPrefix
}

// AuditEnabled reports whether the Mongo audit trail is configured.
func (c *Config) AuditEnabled() bool {
	return c.AuditMongoURI != ""
}
