package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	authhttp "wellness-admin/internal/auth/adapter/http"
	"wellness-admin/internal/auth/domain/repository"
	"wellness-admin/internal/auth/usecase"
	"wellness-admin/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testCookieName = "admin_session"

type MiddlewareTestSuite struct {
	suite.Suite
	app         *fiber.App
	mockUsecase *mockAuthUsecase
}

func (suite *MiddlewareTestSuite) SetupTest() {
	suite.mockUsecase = &mockAuthUsecase{}
	middleware := authhttp.NewSessionMiddleware(suite.mockUsecase, usecase.NewRouteGate(), testCookieName)

	suite.app = fiber.New()
	suite.app.Use(middleware.Gate())
	suite.app.Get("/login", func(c *fiber.Ctx) error {
		return c.SendString("login form")
	})
	suite.app.Get("/forgot-password", func(c *fiber.Ctx) error {
		return c.SendString("forgot form")
	})
	suite.app.Get("/dashboard", func(c *fiber.Ctx) error {
		userID, err := utils.GetUserIDFromContext(c.UserContext())
		require.NoError(suite.T(), err)
		token, err := utils.GetAccessTokenFromContext(c.UserContext())
		require.NoError(suite.T(), err)
		return c.JSON(fiber.Map{"userID": userID, "hasToken": token != ""})
	})
}

func validClaims(role string) *repository.SessionClaims {
	return &repository.SessionClaims{
		Email:            "a@x.com",
		Role:             role,
		AccessToken:      "tok123",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}
}

func (suite *MiddlewareTestSuite) request(method, target string, cookie string, header map[string]string) *http.Response {
	req := httptest.NewRequest(method, target, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	return resp
}

// No cookie on a protected path: redirect to login, target path preserved.
func (suite *MiddlewareTestSuite) TestProtected_NoSession_RedirectsToLogin() {
	resp := suite.request(http.MethodGet, "/dashboard", "", nil)

	assert.Equal(suite.T(), fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(suite.T(), "/login?callbackUrl=%2Fdashboard", resp.Header.Get("Location"))
	suite.mockUsecase.AssertNotCalled(suite.T(), "ValidateSession", mock.Anything, mock.Anything)
}

// An expired or forged cookie behaves exactly like no cookie.
func (suite *MiddlewareTestSuite) TestProtected_InvalidSession_RedirectsToLogin() {
	suite.mockUsecase.On("ValidateSession", mock.Anything, "expired").Return(nil, usecase.ErrSessionInvalid)

	resp := suite.request(http.MethodGet, "/dashboard", "expired", nil)

	assert.Equal(suite.T(), fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(suite.T(), "/login?callbackUrl=%2Fdashboard", resp.Header.Get("Location"))
}

func (suite *MiddlewareTestSuite) TestProtected_ValidSession_Allows() {
	suite.mockUsecase.On("ValidateSession", mock.Anything, "valid").Return(validClaims("ADMIN"), nil)

	resp := suite.request(http.MethodGet, "/dashboard", "valid", nil)

	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)
}

func (suite *MiddlewareTestSuite) TestProtected_JSONClient_Gets401() {
	resp := suite.request(http.MethodGet, "/dashboard", "", map[string]string{
		fiber.HeaderAccept: fiber.MIMEApplicationJSON,
	})

	assert.Equal(suite.T(), fiber.StatusUnauthorized, resp.StatusCode)
}

// A signed-in admin visiting the login page is sent to the landing page.
func (suite *MiddlewareTestSuite) TestLogin_AlreadyAuthenticated_RedirectsToLanding() {
	suite.mockUsecase.On("ValidateSession", mock.Anything, "valid").Return(validClaims("ADMIN"), nil)

	resp := suite.request(http.MethodGet, "/login", "valid", nil)

	assert.Equal(suite.T(), fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(suite.T(), "/dashboard", resp.Header.Get("Location"))
}

func (suite *MiddlewareTestSuite) TestLogin_NoSession_RendersLogin() {
	resp := suite.request(http.MethodGet, "/login", "", nil)

	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)
}

func (suite *MiddlewareTestSuite) TestPublicPath_BypassesSessionCheck() {
	resp := suite.request(http.MethodGet, "/forgot-password", "whatever", nil)

	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)
	suite.mockUsecase.AssertNotCalled(suite.T(), "ValidateSession", mock.Anything, mock.Anything)
}

func (suite *MiddlewareTestSuite) TestCallbackPreservesQuery() {
	resp := suite.request(http.MethodGet, "/dashboard/users?page=2", "", nil)

	assert.Equal(suite.T(), fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(suite.T(), "/login?callbackUrl=%2Fdashboard%2Fusers%3Fpage%3D2", resp.Header.Get("Location"))
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
