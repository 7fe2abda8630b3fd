package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wellness-admin/internal/auth"
	"wellness-admin/internal/auth/testutil"
	"wellness-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// BridgeIntegrationTestSuite exercises the full session bridge against a
// stubbed backend auth API: credential exchange, cookie issuance, route
// middleware and role gate.
type BridgeIntegrationTestSuite struct {
	suite.Suite
	upstream *httptest.Server
	app      *fiber.App

	// what the stub backend answers on the next login call
	upstreamStatus int
	upstreamBody   string
}

func (suite *BridgeIntegrationTestSuite) SetupTest() {
	suite.upstreamStatus = http.StatusOK
	suite.upstreamBody = `{"user":{"id":"1","name":"Ada","email":"a@x.com","role":"ADMIN"},"accessToken":"tok123"}`

	suite.upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(suite.upstreamStatus)
		w.Write([]byte(suite.upstreamBody))
	}))

	cfg := testutil.TestConfig(suite.upstream.URL)
	module, err := auth.NewAuthModule(cfg, nil, logger.NewLogger())
	require.NoError(suite.T(), err)

	suite.app = fiber.New()
	suite.app.Use(module.GetMiddleware().Gate())
	module.RegisterRoutes(suite.app)
	suite.app.Get("/login", func(c *fiber.Ctx) error {
		return c.SendString("login form")
	})
	suite.app.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.SendString("dashboard")
	})
}

func (suite *BridgeIntegrationTestSuite) TearDownTest() {
	suite.upstream.Close()
}

func (suite *BridgeIntegrationTestSuite) login(email, password string) *http.Response {
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := suite.app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(suite.T(), err)
	return resp
}

func (suite *BridgeIntegrationTestSuite) sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "admin_session" {
			return c
		}
	}
	return nil
}

// Happy path: exchange yields an ADMIN identity, and the issued cookie opens
// the dashboard.
func (suite *BridgeIntegrationTestSuite) TestHappyPath_LoginThenDashboard() {
	resp := suite.login("a@x.com", "secret")
	require.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)

	var parsed map[string]map[string]interface{}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Equal(suite.T(), "ADMIN", parsed["user"]["role"])

	cookie := suite.sessionCookie(resp)
	require.NotNil(suite.T(), cookie)
	assert.True(suite.T(), cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	dashResp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusOK, dashResp.StatusCode)
}

// Disallowed role: upstream succeeds, exchange still rejects and no cookie is
// issued; the dashboard then redirects to login.
func (suite *BridgeIntegrationTestSuite) TestDisallowedRole_NoCookieIssued() {
	suite.upstreamBody = `{"user":{"id":"2","email":"u@x.com","role":"USER"},"accessToken":"tok456"}`

	resp := suite.login("u@x.com", "secret")
	assert.Equal(suite.T(), fiber.StatusUnauthorized, resp.StatusCode)
	assert.Nil(suite.T(), suite.sessionCookie(resp))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	dashResp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusSeeOther, dashResp.StatusCode)
	assert.Equal(suite.T(), "/login?callbackUrl=%2Fdashboard", dashResp.Header.Get("Location"))
}

// Upstream rejection is indistinguishable from a disallowed role.
func (suite *BridgeIntegrationTestSuite) TestUpstreamRejection_SameOutcome() {
	suite.upstreamStatus = http.StatusUnauthorized
	suite.upstreamBody = `{"message":"bad credentials"}`

	resp := suite.login("a@x.com", "wrong")
	assert.Equal(suite.T(), fiber.StatusUnauthorized, resp.StatusCode)
	assert.Nil(suite.T(), suite.sessionCookie(resp))
}

// Already authenticated: visiting login redirects to the dashboard.
func (suite *BridgeIntegrationTestSuite) TestAuthenticatedVisitToLogin_Redirects() {
	resp := suite.login("a@x.com", "secret")
	cookie := suite.sessionCookie(resp)
	require.NotNil(suite.T(), cookie)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(cookie)
	loginResp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusSeeOther, loginResp.StatusCode)
	assert.Equal(suite.T(), "/dashboard", loginResp.Header.Get("Location"))
}

// An expired cookie behaves exactly like no cookie.
func (suite *BridgeIntegrationTestSuite) TestExpiredSession_RedirectsToLogin() {
	cfg := testutil.TestConfig(suite.upstream.URL)
	cfg.SessionTTL = 1 * time.Millisecond
	shortModule, err := auth.NewAuthModule(cfg, nil, logger.NewLogger())
	require.NoError(suite.T(), err)

	shortApp := fiber.New()
	shortApp.Use(shortModule.GetMiddleware().Gate())
	shortModule.RegisterRoutes(shortApp)
	shortApp.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.SendString("dashboard")
	})

	body := `{"email":"a@x.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := shortApp.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(suite.T(), err)
	cookie := suite.sessionCookie(resp)
	require.NotNil(suite.T(), cookie)

	time.Sleep(10 * time.Millisecond)

	dashReq := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	dashReq.AddCookie(cookie)
	dashResp, err := shortApp.Test(dashReq)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), fiber.StatusSeeOther, dashResp.StatusCode)
	assert.Equal(suite.T(), "/login?callbackUrl=%2Fdashboard", dashResp.Header.Get("Location"))
}

func TestBridgeIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(BridgeIntegrationTestSuite))
}
