package admin

import (
	adminhttp "wellness-admin/internal/admin/adapter/http"
	"wellness-admin/internal/admin/adapter/persistence"
	"wellness-admin/internal/admin/config"
	"wellness-admin/internal/admin/domain/repository"
	"wellness-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// AdminModule wires the dashboard resource proxy and its read cache.
type AdminModule struct {
	handler *adminhttp.AdminProxyHandler
	cache   repository.ReadCache
	config  *config.Config
}

// NewAdminModule creates the proxy module. redisClient may be nil; response
// caching is then disabled and every request goes straight upstream.
func NewAdminModule(cfg *config.Config, redisClient *redis.Client, log logger.Logger) *AdminModule {
	var cache repository.ReadCache
	if redisClient != nil {
		cache = persistence.NewRedisReadCache(redisClient, log)
	}

	return &AdminModule{
		handler: adminhttp.NewAdminProxyHandler(cfg, cache, log),
		cache:   cache,
		config:  cfg,
	}
}

// RegisterRoutes registers the dashboard API routes. The router passed in
// must already carry the session gate.
func (am *AdminModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupProxyRoutes(router)
}
