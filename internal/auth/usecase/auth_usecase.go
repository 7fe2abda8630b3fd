package usecase

import (
	"context"
	"errors"
	"time"

	"wellness-admin/internal/auth/domain/model"
	"wellness-admin/internal/auth/domain/repository"
	apperrors "wellness-admin/internal/shared/errors"
	"wellness-admin/internal/shared/logger"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidCredentials is the single outcome every login failure
	// collapses into. The browser must not learn which check failed.
	ErrInvalidCredentials = apperrors.ErrInvalidCredentials
	// ErrSessionInvalid covers missing, forged, malformed and expired
	// sessions alike, and sessions whose role left the allow-list.
	ErrSessionInvalid = apperrors.ErrSessionInvalid
)

// auditTimeout bounds the best-effort audit write so a slow Mongo never
// stalls a login.
const auditTimeout = 2 * time.Second

// AuthUsecaseInterface defines the contract of the session bridge.
type AuthUsecaseInterface interface {
	Login(ctx context.Context, creds model.Credentials) (*model.Identity, string, error)
	ValidateSession(ctx context.Context, tokenString string) (*repository.SessionClaims, error)
	CurrentUser(ctx context.Context, accessToken string) (*model.Identity, error)
	Logout(ctx context.Context, tokenString string)
}

// AuthUsecase implements the credential exchange and session validation.
type AuthUsecase struct {
	gateway  repository.AuthGateway
	codec    repository.TokenCodec
	audit    repository.AuditRepository
	validate *validator.Validate
	log      logger.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase. audit may be nil to
// disable the audit trail.
func NewAuthUsecase(
	gw repository.AuthGateway,
	codec repository.TokenCodec,
	audit repository.AuditRepository,
	log logger.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		gateway:  gw,
		codec:    codec,
		audit:    audit,
		validate: validator.New(),
		log:      log.WithComponent("auth-usecase"),
	}
}

// Login performs the credential exchange: one call to the backend auth API,
// role gate on the returned profile, then a signed session token. Every
// failure mode returns ErrInvalidCredentials; the distinct cause goes to the
// operator log and audit trail only.
func (uc *AuthUsecase) Login(ctx context.Context, creds model.Credentials) (*model.Identity, string, error) {
	if err := uc.validate.Struct(creds); err != nil {
		// Missing email or password: reject before any network call.
		uc.recordDenied(ctx, "", "", repository.CauseMissingCredentials)
		return nil, "", ErrInvalidCredentials
	}

	result, err := uc.gateway.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		cause := repository.CauseUpstreamRejected
		switch {
		case errors.Is(err, repository.ErrUpstream):
			cause = repository.CauseUpstreamDown
			uc.log.WithContext(ctx).Errorf("credential exchange upstream failure: %v", err)
		case errors.Is(err, repository.ErrMalformedResponse):
			cause = repository.CauseMalformedResponse
			uc.log.WithContext(ctx).Errorf("credential exchange malformed response: %v", err)
		default:
			uc.log.WithContext(ctx).Infof("credential exchange rejected for %s", creds.Email)
		}
		uc.recordDenied(ctx, "", creds.Email, cause)
		return nil, "", ErrInvalidCredentials
	}

	role := model.ParseRole(result.User.Role)
	if !role.Allowed() {
		uc.log.WithContext(ctx).Infof("login denied for %s: role %q not permitted", result.User.Email, role)
		uc.recordDenied(ctx, result.User.ID, result.User.Email, repository.CauseRoleDenied)
		return nil, "", ErrInvalidCredentials
	}

	identity := &model.Identity{
		ID:          result.User.ID,
		Name:        result.User.Name,
		Email:       result.User.Email,
		Role:        role,
		AccessToken: result.AccessToken,
	}

	tokenString, err := uc.codec.Encode(ctx, identity)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("failed to encode session token: %v", err)
		return nil, "", ErrInvalidCredentials
	}

	uc.record(ctx, &repository.AuthEvent{
		Kind:      repository.EventLoginSucceeded,
		SubjectID: identity.ID,
		Email:     identity.Email,
		Role:      identity.Role.String(),
	})

	return identity, tokenString, nil
}

// ValidateSession decodes a session token and applies the role gate. Decode
// failure of any kind and a disallowed role are indistinguishable from an
// absent session.
func (uc *AuthUsecase) ValidateSession(ctx context.Context, tokenString string) (*repository.SessionClaims, error) {
	claims, err := uc.codec.Decode(ctx, tokenString)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	if !claims.ParsedRole().Allowed() {
		return nil, ErrSessionInvalid
	}
	return claims, nil
}

// CurrentUser verifies an access token against the backend directly. Used to
// refresh the displayed profile without re-login.
func (uc *AuthUsecase) CurrentUser(ctx context.Context, accessToken string) (*model.Identity, error) {
	user, err := uc.gateway.CurrentUser(ctx, accessToken)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	return &model.Identity{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        model.ParseRole(user.Role),
		AccessToken: accessToken,
	}, nil
}

// Logout invalidates locally: the cookie clearing happens at the HTTP layer,
// the backend token lifecycle is the backend's concern. Only the audit record
// is written here.
func (uc *AuthUsecase) Logout(ctx context.Context, tokenString string) {
	claims, err := uc.codec.Decode(ctx, tokenString)
	if err != nil {
		return
	}
	uc.record(ctx, &repository.AuthEvent{
		Kind:      repository.EventLogout,
		SubjectID: claims.UserID(),
		Email:     claims.Email,
		Role:      claims.Role,
	})
}

func (uc *AuthUsecase) recordDenied(ctx context.Context, subjectID, email, cause string) {
	uc.record(ctx, &repository.AuthEvent{
		Kind:      repository.EventLoginDenied,
		SubjectID: subjectID,
		Email:     email,
		Cause:     cause,
	})
}

func (uc *AuthUsecase) record(ctx context.Context, event *repository.AuthEvent) {
	if uc.audit == nil {
		return
	}
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	if err := uc.audit.Record(auditCtx, event); err != nil {
		uc.log.WithContext(ctx).Warnf("failed to record auth event %s: %v", event.Kind, err)
	}
}

var _ AuthUsecaseInterface = (*AuthUsecase)(nil)
