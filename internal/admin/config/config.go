package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds configuration for the admin resource proxy.
type Config struct {
	APIRoot      string        `env:"API_ROOT,required"`
	APIPrefix    string        `env:"API_PREFIX" envDefault:"/api/v1"`
	ProxyTimeout time.Duration `env:"ADMIN_PROXY_TIMEOUT" envDefault:"15s"`

	// Read cache. Empty address disables caching.
	CacheRedisAddr     string        `env:"CACHE_REDIS_ADDR" envDefault:""`
	CacheRedisPassword string        `env:"CACHE_REDIS_PASSWORD" envDefault:""`
	CacheRedisDB       int           `env:"CACHE_REDIS_DB" envDefault:"0"`
	CacheTTL           time.Duration `env:"CACHE_TTL" envDefault:"30s"`
}

// LoadConfig loads configuration from environment variables and validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load admin proxy configuration: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants LoadConfig relies on.
func (c *Config) Validate() error {
	if c.APIRoot == "" {
		return errors.New("api_root is required")
	}
	if c.ProxyTimeout <= 0 {
		return errors.New("admin_proxy_timeout must be positive")
	}
	if c.CacheTTL <= 0 {
		return errors.New("cache_ttl must be positive")
	}
	c.APIRoot = strings.TrimRight(c.APIRoot, "/")
	return nil
}

// BackendAdminURL is the prefix admin resource paths are joined to.
func (c *Config) BackendAdminURL() string {
	return strings.TrimRight(c.APIRoot, "/") + c.APIPrefix + "/admin"
}

// CacheEnabled reports whether the Redis read cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.CacheRedisAddr != ""
}
