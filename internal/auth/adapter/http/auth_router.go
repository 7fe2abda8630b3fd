package http

import (
	"time"

	"wellness-admin/internal/auth/config"
	"wellness-admin/internal/auth/domain/model"
	"wellness-admin/internal/auth/usecase"

	"github.com/gofiber/fiber/v2"
)

// AuthHTTPHandler handles the session bridge's HTTP surface.
type AuthHTTPHandler struct {
	usecase        usecase.AuthUsecaseInterface
	cookieName     string
	cookiePath     string
	cookieDomain   string
	cookieMaxAge   int
	cookieSecure   bool
	cookieHTTPOnly bool
	cookieSameSite string
}

// NewAuthHTTPHandler creates a new authentication HTTP handler.
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, cfg *config.Config) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		usecase:        uc,
		cookieName:     cfg.CookieName,
		cookiePath:     cfg.CookiePath,
		cookieDomain:   cfg.CookieDomain,
		cookieMaxAge:   int(cfg.SessionTTL.Seconds()),
		cookieSecure:   cfg.CookieSecure,
		cookieHTTPOnly: cfg.CookieHTTPOnly,
		cookieSameSite: cfg.CookieSameSite,
	}
}

// SetupAuthRoutes registers the authentication endpoints.
func (h *AuthHTTPHandler) SetupAuthRoutes(router fiber.Router, middleware *SessionMiddleware) {
	auth := router.Group("/auth")
	auth.Post("/login", middleware.LoginRateLimiter(), h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", h.Me)
}

// Login handles the credential exchange. Every failure maps onto the same
// response; callers learn nothing about which check failed.
func (h *AuthHTTPHandler) Login(c *fiber.Ctx) error {
	var creds model.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	identity, token, err := h.usecase.Login(c.Context(), creds)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	h.setCookie(c, token)

	// The access token stays inside the signed cookie; the body carries the
	// displayable profile only.
	return c.JSON(fiber.Map{
		"user": identity,
	})
}

// Logout clears the session cookie. Local and immediate; the backend token's
// own lifecycle is not this service's concern.
func (h *AuthHTTPHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(h.cookieName); token != "" {
		h.usecase.Logout(c.Context(), token)
	}

	h.clearCookie(c)

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// Me returns the identity embedded in the current session. With ?refresh=1
// the profile is re-fetched from the backend using the embedded access token.
func (h *AuthHTTPHandler) Me(c *fiber.Ctx) error {
	token := c.Cookies(h.cookieName)
	claims, err := h.usecase.ValidateSession(c.Context(), token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}

	if c.Query("refresh") == "1" {
		identity, err := h.usecase.CurrentUser(c.Context(), claims.AccessToken)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}
		return c.JSON(fiber.Map{"user": identity})
	}

	return c.JSON(fiber.Map{"user": claims.Identity()})
}

func (h *AuthHTTPHandler) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   h.cookieMaxAge,
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(time.Duration(h.cookieMaxAge) * time.Second),
	})
}

func (h *AuthHTTPHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
