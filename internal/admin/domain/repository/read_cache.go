package repository

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when no entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")

// CachedResponse is a stored upstream response. Only successful GET responses
// are cached, so the status code is always in the 2xx range.
type CachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// ReadCache is a short-lived response cache for read-heavy admin resources.
// Keys are scoped per subject so one operator's responses are never served
// to another.
type ReadCache interface {
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Set(ctx context.Context, key string, resp *CachedResponse, ttl time.Duration) error
	// InvalidatePrefix drops every entry whose key starts with prefix.
	InvalidatePrefix(ctx context.Context, prefix string) error
}
