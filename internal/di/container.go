package di

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wellness-admin/internal/admin"
	adminconfig "wellness-admin/internal/admin/config"
	"wellness-admin/internal/auth"
	authconfig "wellness-admin/internal/auth/config"
	"wellness-admin/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Container owns module wiring and the lifecycle of shared connections.
// Mongo (audit trail) and Redis (read cache) are both optional; modules run
// with those features disabled when a connection is not configured.
type Container struct {
	mu sync.RWMutex

	AuthModule  *auth.AuthModule
	AdminModule *admin.AdminModule

	AuthConfig  *authconfig.Config
	AdminConfig *adminconfig.Config

	mongoClient *mongo.Client
	redisClient *redis.Client

	Logger logger.Logger
}

// NewContainer creates an empty container with a logger.
func NewContainer(log logger.Logger) *Container {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Container{Logger: log}
}

// Initialize loads configuration, connects optional backing stores and wires
// both modules. Safe to call once; returns the first error encountered.
func (c *Container) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	authCfg, err := authconfig.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load auth configuration: %w", err)
	}
	adminCfg, err := adminconfig.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load admin configuration: %w", err)
	}
	c.AuthConfig = authCfg
	c.AdminConfig = adminCfg

	var auditDB *mongo.Database
	if authCfg.AuditEnabled() {
		client, err := connectMongo(ctx, authCfg.AuditMongoURI)
		if err != nil {
			return fmt.Errorf("failed to connect audit store: %w", err)
		}
		c.mongoClient = client
		auditDB = client.Database(authCfg.AuditDatabase)
		c.Logger.Infof("Audit trail enabled (database %s)", authCfg.AuditDatabase)
	} else {
		c.Logger.Info("Audit trail disabled; no AUDIT_MONGODB_URI configured")
	}

	if adminCfg.CacheEnabled() {
		client, err := connectRedis(ctx, adminCfg)
		if err != nil {
			return fmt.Errorf("failed to connect read cache: %w", err)
		}
		c.redisClient = client
		c.Logger.Infof("Read cache enabled (%s, ttl %s)", adminCfg.CacheRedisAddr, adminCfg.CacheTTL)
	} else {
		c.Logger.Info("Read cache disabled; no CACHE_REDIS_ADDR configured")
	}

	authModule, err := auth.NewAuthModule(authCfg, auditDB, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	c.AuthModule = authModule
	c.AdminModule = admin.NewAdminModule(adminCfg, c.redisClient, c.Logger)

	return nil
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func connectRedis(ctx context.Context, cfg *adminconfig.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.CacheRedisAddr,
		Password: cfg.CacheRedisPassword,
		DB:       cfg.CacheRedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// GetAuthModule returns the auth module instance.
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetAdminModule returns the admin proxy module instance.
func (c *Container) GetAdminModule() *admin.AdminModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AdminModule
}

// HealthCheck pings every connected backing store.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.mongoClient != nil {
		if err := c.mongoClient.Ping(ctx, nil); err != nil {
			return fmt.Errorf("audit store health check failed: %w", err)
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("read cache health check failed: %w", err)
		}
	}
	return nil
}

// Cleanup closes connections in reverse order of initialization.
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	c.AdminModule = nil
	c.AuthModule = nil

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close read cache: %w", err))
		}
		c.redisClient = nil
	}
	if c.mongoClient != nil {
		if err := c.mongoClient.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to disconnect audit store: %w", err))
		}
		c.mongoClient = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}

// Close shuts the container down with a bounded timeout.
func (c *Container) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("Cleanup finished with errors: %v", err)
		return err
	}
	return nil
}
