package auth

import (
	"fmt"

	authhttp "wellness-admin/internal/auth/adapter/http"
	"wellness-admin/internal/auth/adapter/gateway"
	"wellness-admin/internal/auth/adapter/persistence/mongodb"
	"wellness-admin/internal/auth/adapter/security"
	"wellness-admin/internal/auth/config"
	"wellness-admin/internal/auth/domain/repository"
	"wellness-admin/internal/auth/usecase"
	"wellness-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuthModule wires the session bridge: backend gateway, token codec, audit
// trail, usecase, HTTP handler and route middleware.
type AuthModule struct {
	gateway    repository.AuthGateway
	codec      repository.TokenCodec
	audit      repository.AuditRepository
	usecase    usecase.AuthUsecaseInterface
	gate       *usecase.RouteGate
	handler    *authhttp.AuthHTTPHandler
	middleware *authhttp.SessionMiddleware
	config     *config.Config
}

// NewAuthModule creates the session bridge module. auditDB may be nil; the
// audit trail is then disabled.
func NewAuthModule(cfg *config.Config, auditDB *mongo.Database, log logger.Logger) (*AuthModule, error) {
	codec, err := security.NewJWTSessionCodec(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session codec: %w", err)
	}

	gw := gateway.NewBackendClient(cfg, log)

	var audit repository.AuditRepository
	if auditDB != nil {
		mongoAudit, err := mongodb.NewMongoAuditRepository(auditDB, cfg.AuditCollection)
		if err != nil {
			return nil, fmt.Errorf("failed to create audit repository: %w", err)
		}
		audit = mongoAudit
	}

	uc := usecase.NewAuthUsecase(gw, codec, audit, log)
	gate := usecase.NewRouteGate()

	return &AuthModule{
		gateway:    gw,
		codec:      codec,
		audit:      audit,
		usecase:    uc,
		gate:       gate,
		handler:    authhttp.NewAuthHTTPHandler(uc, cfg),
		middleware: authhttp.NewSessionMiddleware(uc, gate, cfg.CookieName),
		config:     cfg,
	}, nil
}

// RegisterRoutes registers the authentication routes.
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupAuthRoutes(router, am.middleware)
}

// GetUsecase returns the auth usecase for other modules.
func (am *AuthModule) GetUsecase() usecase.AuthUsecaseInterface {
	return am.usecase
}

// GetMiddleware returns the session middleware.
func (am *AuthModule) GetMiddleware() *authhttp.SessionMiddleware {
	return am.middleware
}

// GetRouteGate returns the route gate.
func (am *AuthModule) GetRouteGate() *usecase.RouteGate {
	return am.gate
}
