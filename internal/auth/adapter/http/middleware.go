package http

import (
	"net/url"
	"strings"
	"time"

	"wellness-admin/internal/auth/domain/repository"
	"wellness-admin/internal/auth/usecase"
	"wellness-admin/internal/shared/contextkeys"
	"wellness-admin/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// SessionMiddleware is the enforcement point in front of every protected
// path: decode session, apply the route gate, continue or redirect.
type SessionMiddleware struct {
	usecase    usecase.AuthUsecaseInterface
	gate       *usecase.RouteGate
	cookieName string
}

// NewSessionMiddleware creates the session middleware.
func NewSessionMiddleware(uc usecase.AuthUsecaseInterface, gate *usecase.RouteGate, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		usecase:    uc,
		gate:       gate,
		cookieName: cookieName,
	}
}

// Gate intercepts every request. Public paths bypass by pattern; protected
// paths require a valid, role-checked session or get redirected to login with
// the original path preserved; an authenticated visit to the login page is
// redirected to the landing page.
func (m *SessionMiddleware) Gate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		// Public paths other than the login page never touch the cookie.
		if path != m.gate.LoginPath() && m.gate.Public(path) {
			return c.Next()
		}

		// Decode failures of any kind resolve to "no session", never a 5xx.
		var claims *repository.SessionClaims
		if token := c.Cookies(m.cookieName); token != "" {
			if decoded, err := m.usecase.ValidateSession(c.Context(), token); err == nil {
				claims = decoded
			}
		}

		switch m.gate.Evaluate(claims, path) {
		case usecase.GateRedirectLogin:
			if wantsJSON(c) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Authentication required",
				})
			}
			callback := url.QueryEscape(c.OriginalURL())
			return c.Redirect(m.gate.LoginPath()+"?callbackUrl="+callback, fiber.StatusSeeOther)
		case usecase.GateRedirectLanding:
			return c.Redirect(m.gate.LandingPath(), fiber.StatusSeeOther)
		}

		if claims != nil {
			ctx := c.UserContext()
			ctx = utils.WithUserID(ctx, claims.UserID())
			ctx = utils.WithUserEmail(ctx, claims.Email)
			ctx = utils.WithRole(ctx, claims.Role)
			ctx = utils.WithAccessToken(ctx, claims.AccessToken)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}

// CORS middleware for the console origin.
func (m *SessionMiddleware) CORS(allowOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	})
}

// SecurityHeaders adds security headers.
func (m *SessionMiddleware) SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}

// LoginRateLimiter throttles the credential exchange endpoint.
func (m *SessionMiddleware) LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Get("X-Forwarded-For", c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

// RequestID middleware.
func (m *SessionMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// wantsJSON reports whether the client is the console's data layer rather
// than a browser navigation; those get a 401 instead of a redirect.
func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}
