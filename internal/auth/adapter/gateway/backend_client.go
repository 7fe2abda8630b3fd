package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"wellness-admin/internal/auth/config"
	"wellness-admin/internal/auth/domain/repository"
	"wellness-admin/internal/shared/logger"
)

// responseBodyLimit caps how much of an upstream body is read. Error bodies
// are arbitrary and untrusted.
const responseBodyLimit = 1 << 20

// BackendClient calls the external backend authentication API. One attempt
// per call, no retries.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// NewBackendClient creates a client for the configured backend API.
func NewBackendClient(cfg *config.Config, log logger.Logger) *BackendClient {
	return &BackendClient{
		baseURL: cfg.BackendBaseURL(),
		httpClient: &http.Client{
			Timeout: cfg.BackendHTTPTimeout,
		},
		log: log.WithComponent("auth-gateway"),
	}
}

// Login exchanges credentials for a user profile and access token via
// POST {API_ROOT}{API_PREFIX}/auth/login.
func (c *BackendClient) Login(ctx context.Context, email, password string) (*repository.LoginResult, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithContext(ctx).Warnf("auth API unreachable: %v", err)
		return nil, fmt.Errorf("%w: %v", repository.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithContext(ctx).Infof("auth API rejected login: status=%d", resp.StatusCode)
		return nil, repository.ErrLoginRejected
	}

	var result repository.LoginResult
	if err := json.Unmarshal(raw, &result); err != nil {
		c.log.WithContext(ctx).Warnf("auth API login response unparseable: %v", err)
		return nil, repository.ErrMalformedResponse
	}
	if result.User == nil || result.User.ID == "" || result.AccessToken == "" {
		c.log.WithContext(ctx).Warn("auth API login response missing user or access token")
		return nil, repository.ErrMalformedResponse
	}

	return &result, nil
}

// CurrentUser fetches the profile behind an access token via
// GET {API_ROOT}{API_PREFIX}/users/me.
func (c *BackendClient) CurrentUser(ctx context.Context, accessToken string) (*repository.BackendUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, repository.ErrLoginRejected
	}

	var user repository.BackendUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, repository.ErrMalformedResponse
	}
	if user.ID == "" {
		return nil, repository.ErrMalformedResponse
	}

	return &user, nil
}

var _ repository.AuthGateway = (*BackendClient)(nil)
