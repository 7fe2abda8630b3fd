package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"wellness-admin/internal/admin/config"
	"wellness-admin/internal/admin/domain/repository"
	apperrors "wellness-admin/internal/shared/errors"
	"wellness-admin/internal/shared/logger"
	"wellness-admin/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	cacheKeyPrefix        = "adminproxy"
	upstreamBodyLimit     = 10 << 20
	cacheableBodyLimit    = 1 << 20
	headerXCache          = "X-Cache"
	headerXCacheHit       = "HIT"
	headerXCacheMiss      = "MISS"
	headerXCacheBypass    = "BYPASS"
	upstreamErrorResponse = "Admin service unavailable"
)

// knownResources is the closed set of backend admin collections the proxy
// will forward to. Anything else is a 404 before the backend is touched.
var knownResources = map[string]bool{
	"content":       true,
	"stories":       true,
	"achievements":  true,
	"coach-marks":   true,
	"users":         true,
	"subscriptions": true,
	"notifications": true,
	"feedback":      true,
	"analytics":     true,
	"metrics":       true,
	"settings":      true,
}

// cacheableResources are read-heavy and safe to serve slightly stale.
var cacheableResources = map[string]bool{
	"analytics": true,
	"metrics":   true,
}

// AdminProxyHandler forwards authenticated dashboard API calls to the backend
// admin API, attaching the operator's access token from the session context.
type AdminProxyHandler struct {
	cfg    *config.Config
	client *http.Client
	cache  repository.ReadCache
	logger logger.Logger
}

// NewAdminProxyHandler creates the proxy handler. A nil cache disables
// response caching.
func NewAdminProxyHandler(cfg *config.Config, cache repository.ReadCache, log logger.Logger) *AdminProxyHandler {
	return &AdminProxyHandler{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.ProxyTimeout,
		},
		cache:  cache,
		logger: log.WithComponent("admin_proxy"),
	}
}

// SetupProxyRoutes registers the dashboard API surface. The session gate
// must already have run; every handler here assumes an authenticated context.
func (h *AdminProxyHandler) SetupProxyRoutes(router fiber.Router) {
	api := router.Group("/dashboard/api")
	api.All("/:resource", h.Proxy)
	api.All("/:resource/*", h.Proxy)
}

// Proxy relays one request to the backend admin API. GET responses for
// cacheable resources are served from the read cache when fresh; successful
// writes invalidate every cached entry for the resource.
func (h *AdminProxyHandler) Proxy(c *fiber.Ctx) error {
	resource := c.Params("resource")
	if !knownResources[resource] {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown resource",
		})
	}

	token, err := utils.GetAccessTokenFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}
	subject, err := utils.GetUserIDFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}

	upstreamPath := resource
	if rest := c.Params("*"); rest != "" {
		upstreamPath += "/" + rest
	}
	query := string(c.Request().URI().QueryString())

	cacheable := h.cache != nil && c.Method() == fiber.MethodGet && cacheableResources[resource]
	key := buildCacheKey(resource, subject, upstreamPath, query)

	if cacheable {
		if cached, err := h.cache.Get(c.UserContext(), key); err == nil {
			c.Set(fiber.HeaderContentType, cached.ContentType)
			c.Set(headerXCache, headerXCacheHit)
			return c.Status(cached.Status).Send(cached.Body)
		} else if err != repository.ErrCacheMiss {
			h.logger.WithContext(c.UserContext()).Warnf("Cache lookup failed for %s: %v", resource, err)
		}
	}

	status, contentType, body, err := h.forward(c, token, upstreamPath, query)
	if err != nil {
		appErr := apperrors.NewUpstreamError(upstreamErrorResponse).
			WithCause(err).
			WithComponent("admin_proxy")
		h.logger.WithContext(c.UserContext()).Errorf("Upstream request for %s failed: %v", resource, appErr)
		return c.Status(appErr.HTTPCode).JSON(fiber.Map{
			"error": appErr.Message,
		})
	}

	if cacheable {
		if status >= 200 && status < 300 && len(body) <= cacheableBodyLimit {
			entry := &repository.CachedResponse{
				Status:      status,
				ContentType: contentType,
				Body:        body,
			}
			if err := h.cache.Set(c.UserContext(), key, entry, h.cfg.CacheTTL); err != nil {
				h.logger.WithContext(c.UserContext()).Warnf("Cache store failed for %s: %v", resource, err)
			}
		}
		c.Set(headerXCache, headerXCacheMiss)
	} else if h.cache != nil && c.Method() != fiber.MethodGet && status >= 200 && status < 300 {
		// Writes make every cached view of this resource stale, regardless
		// of which operator holds it.
		h.invalidateResource(c.UserContext(), resource)
		c.Set(headerXCache, headerXCacheBypass)
	}

	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Status(status).Send(body)
}

// forward performs the upstream round trip and returns the relayed response.
func (h *AdminProxyHandler) forward(c *fiber.Ctx, token, upstreamPath, query string) (int, string, []byte, error) {
	target := h.cfg.BackendAdminURL() + "/" + upstreamPath
	if query != "" {
		target += "?" + query
	}

	var reqBody io.Reader
	if len(c.Body()) > 0 {
		reqBody = bytes.NewReader(c.Body())
	}

	req, err := http.NewRequestWithContext(c.UserContext(), c.Method(), target, reqBody)
	if err != nil {
		return 0, "", nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if ct := c.Get(fiber.HeaderContentType); ct != "" {
		req.Header.Set(fiber.HeaderContentType, ct)
	}
	if accept := c.Get(fiber.HeaderAccept); accept != "" {
		req.Header.Set(fiber.HeaderAccept, accept)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, upstreamBodyLimit))
	if err != nil {
		return 0, "", nil, err
	}
	return resp.StatusCode, resp.Header.Get(fiber.HeaderContentType), body, nil
}

func (h *AdminProxyHandler) invalidateResource(ctx context.Context, resource string) {
	prefix := fmt.Sprintf("%s:%s:", cacheKeyPrefix, resource)
	if err := h.cache.InvalidatePrefix(ctx, prefix); err != nil {
		h.logger.WithContext(ctx).Warnf("Cache invalidation failed for %s: %v", resource, err)
	}
}

// buildCacheKey scopes entries by resource, then subject, then the exact
// request. The resource comes first so invalidation can sweep one prefix.
func buildCacheKey(resource, subject, upstreamPath, query string) string {
	var b strings.Builder
	b.WriteString(cacheKeyPrefix)
	b.WriteByte(':')
	b.WriteString(resource)
	b.WriteByte(':')
	b.WriteString(subject)
	b.WriteByte(':')
	b.WriteString(upstreamPath)
	if query != "" {
		b.WriteByte('?')
		b.WriteString(query)
	}
	return b.String()
}
