package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wellness-admin/internal/admin/domain/repository"
	"wellness-admin/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

const invalidateScanBatch = 100

// RedisReadCache implements ReadCache on a Redis client. Entries are stored
// as JSON blobs with a per-entry TTL so stale data ages out on its own even
// if invalidation is never triggered.
type RedisReadCache struct {
	client *redis.Client
	logger logger.Logger
}

// NewRedisReadCache creates a Redis-backed read cache.
func NewRedisReadCache(client *redis.Client, log logger.Logger) *RedisReadCache {
	return &RedisReadCache{
		client: client,
		logger: log.WithComponent("redis_read_cache"),
	}
}

func (r *RedisReadCache) Get(ctx context.Context, key string) (*repository.CachedResponse, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrCacheMiss
		}
		return nil, err
	}

	var resp repository.CachedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		r.logger.Warnf("Dropping corrupt cache entry %q: %v", key, err)
		return nil, repository.ErrCacheMiss
	}
	return &resp, nil
}

func (r *RedisReadCache) Set(ctx context.Context, key string, resp *repository.CachedResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, ttl).Err()
}

// InvalidatePrefix removes every entry under prefix using a cursor scan so
// large keyspaces are not blocked by a single KEYS call.
func (r *RedisReadCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	deleted := 0
	for {
		keys, next, err := r.client.Scan(ctx, cursor, prefix+"*", invalidateScanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		r.logger.Debugf("Invalidated %d cache entries under %q", deleted, prefix)
	}
	return nil
}
