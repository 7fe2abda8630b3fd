package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wellness-admin/internal/auth/adapter/gateway"
	"wellness-admin/internal/auth/config"
	"wellness-admin/internal/auth/domain/repository"
	"wellness-admin/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, upstreamURL string) *gateway.BackendClient {
	t.Helper()
	cfg := &config.Config{
		APIRoot:            upstreamURL,
		APIPrefix:          "/api/v1",
		BackendHTTPTimeout: 2 * time.Second,
	}
	return gateway.NewBackendClient(cfg, logger.NewLogger())
}

func TestBackendClient_Login_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@x.com", body["email"])
		require.Equal(t, "secret", body["password"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":"1","name":"Ada","email":"a@x.com","role":"ADMIN"},"accessToken":"tok123"}`))
	}))
	defer upstream.Close()

	client := newClient(t, upstream.URL)
	result, err := client.Login(context.Background(), "a@x.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "1", result.User.ID)
	assert.Equal(t, "ADMIN", result.User.Role)
	assert.Equal(t, "tok123", result.AccessToken)
}

func TestBackendClient_Login_NonSuccessStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"nope"}`))
	}))
	defer upstream.Close()

	client := newClient(t, upstream.URL)
	result, err := client.Login(context.Background(), "a@x.com", "wrong")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, repository.ErrLoginRejected)
}

func TestBackendClient_Login_MalformedBody(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"missing user", `{"accessToken":"tok123"}`},
		{"missing user id", `{"user":{"role":"ADMIN"},"accessToken":"tok123"}`},
		{"missing access token", `{"user":{"id":"1","role":"ADMIN"}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer upstream.Close()

			client := newClient(t, upstream.URL)
			result, err := client.Login(context.Background(), "a@x.com", "secret")

			assert.Nil(t, result)
			assert.ErrorIs(t, err, repository.ErrMalformedResponse)
		})
	}
}

func TestBackendClient_Login_UpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // nothing listening anymore

	client := newClient(t, upstream.URL)
	result, err := client.Login(context.Background(), "a@x.com", "secret")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, repository.ErrUpstream)
}

func TestBackendClient_CurrentUser(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/users/me", r.URL.Path)
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))

		w.Write([]byte(`{"id":"1","email":"a@x.com","role":"ADMIN"}`))
	}))
	defer upstream.Close()

	client := newClient(t, upstream.URL)
	user, err := client.CurrentUser(context.Background(), "tok123")

	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "ADMIN", user.Role)
}

func TestBackendClient_CurrentUser_RejectedToken(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer upstream.Close()

	client := newClient(t, upstream.URL)
	user, err := client.CurrentUser(context.Background(), "stale")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, repository.ErrLoginRejected)
}
