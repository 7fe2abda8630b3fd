package usecase

import (
	"strings"

	"wellness-admin/internal/auth/domain/repository"
)

// GateDecision is the outcome of evaluating a request path against a session.
type GateDecision int

const (
	// GateAllow lets the request through.
	GateAllow GateDecision = iota
	// GateRedirectLogin denies and sends the browser to the login page,
	// preserving the requested path for post-login return.
	GateRedirectLogin
	// GateRedirectLanding sends an already-authenticated browser away from
	// the login page to the default protected landing page.
	GateRedirectLanding
)

// RouteGate decides whether a path may be served given the (possibly absent)
// decoded session. It is the only component that interprets the role for
// access decisions.
type RouteGate struct {
	loginPath         string
	landingPath       string
	protectedPrefixes []string
	publicPaths       []string
}

// NewRouteGate creates the gate for the console's route surface.
func NewRouteGate() *RouteGate {
	return &RouteGate{
		loginPath:         "/login",
		landingPath:       "/dashboard",
		protectedPrefixes: []string{"/dashboard"},
		publicPaths:       []string{"/login", "/forgot-password", "/reset-password", "/healthz"},
	}
}

// LoginPath returns the login entry point.
func (g *RouteGate) LoginPath() string {
	return g.loginPath
}

// LandingPath returns the default protected landing page.
func (g *RouteGate) LandingPath() string {
	return g.landingPath
}

// Protected reports whether the path requires a valid, role-checked session.
func (g *RouteGate) Protected(path string) bool {
	for _, prefix := range g.protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Public reports whether the path bypasses session checks entirely. Static
// assets are public by extension, everything else by exact path.
func (g *RouteGate) Public(path string) bool {
	for _, p := range g.publicPaths {
		if path == p {
			return true
		}
	}
	for _, ext := range []string{".css", ".js", ".ico", ".png", ".svg", ".woff2"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Evaluate applies the access decision table. claims is nil when no session
// was presented or decoding failed; callers must have already rejected
// expired or forged tokens by passing nil. A disallowed role on a protected
// path is treated exactly like an absent session.
func (g *RouteGate) Evaluate(claims *repository.SessionClaims, path string) GateDecision {
	authorized := claims != nil && claims.ParsedRole().Allowed()

	if g.Protected(path) {
		if !authorized {
			return GateRedirectLogin
		}
		return GateAllow
	}

	if path == g.loginPath && authorized {
		return GateRedirectLanding
	}
	return GateAllow
}
