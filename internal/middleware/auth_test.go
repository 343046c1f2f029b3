package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leadhub/internal/config"
	apierrors "leadhub/internal/errors"
	"leadhub/internal/handlers"
	"leadhub/internal/models"
	"leadhub/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

type AuthMiddlewareSuite struct {
	suite.Suite
	cfg            *config.Config
	tokenService   services.TokenServiceInterface
	sessionService services.SessionServiceInterface
	identity       *models.Identity
	e              *echo.Echo
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.cfg = testConfig()
	s.tokenService = services.NewTokenService(&s.cfg.JWT)
	s.sessionService = services.NewSessionService(s.tokenService, s.cfg)
	s.identity = &models.Identity{
		UserID:        "user-123",
		Email:         "coach@example.com",
		AccountNumber: "ACC789",
		Role:          "admin",
	}
	s.e = echo.New()
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Environment = "testing"
	cfg.JWT = config.JWTConfig{
		AccessTokenSecret:    []byte("test-access-secret"),
		RefreshTokenSecret:   []byte("test-refresh-secret"),
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		Issuer:               "test-issuer",
	}
	cfg.SSO.AuthServiceURL = "http://auth.example.com"
	cfg.SSO.FrontendBaseURL = "http://app.example.com"
	return cfg
}

// expiredAccessToken issues an access token that is already past its expiry
// but carries a valid signature.
func (s *AuthMiddlewareSuite) expiredAccessToken() string {
	cfg := testConfig()
	cfg.JWT.AccessTokenDuration = -time.Minute
	token, _, err := services.NewTokenService(&cfg.JWT).IssueAccessToken(s.identity)
	s.Require().NoError(err)
	return token
}

func (s *AuthMiddlewareSuite) gate() echo.MiddlewareFunc {
	return RequireSession(s.tokenService, s.sessionService, services.NewNoopMetrics(), s.cfg)
}

func (s *AuthMiddlewareSuite) run(req *http.Request) (*httptest.ResponseRecorder, *models.Identity) {
	var seen *models.Identity
	handler := s.gate()(func(c echo.Context) error {
		identity, err := handlers.GetIdentityFromContext(c)
		if err == nil {
			seen = identity
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	s.NoError(handler(c))
	return rec, seen
}

func (s *AuthMiddlewareSuite) decodeError(rec *httptest.ResponseRecorder) apierrors.ErrorResponse {
	var body apierrors.ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *AuthMiddlewareSuite) TestNoTokensRejectedWithAuthURL() {
	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	rec, _ := s.run(req)

	s.Equal(http.StatusUnauthorized, rec.Code)
	body := s.decodeError(rec)
	s.False(body.Success)
	s.Equal(string(apierrors.AuthMissingToken), string(body.Code))
	s.Contains(body.AuthURL, "http://auth.example.com/login?redirect=")
	s.Contains(body.AuthURL, "%2Fapi%2Fleads")
}

func (s *AuthMiddlewareSuite) TestValidAccessCookie() {
	token, _, err := s.tokenService.IssueAccessToken(s.identity)
	s.NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(&http.Cookie{Name: services.AccessTokenCookie, Value: token})
	rec, seen := s.run(req)

	s.Equal(http.StatusOK, rec.Code)
	s.Require().NotNil(seen)
	s.Equal(s.identity.UserID, seen.UserID)
	s.Equal(s.identity.AccountNumber, seen.AccountNumber)
}

func (s *AuthMiddlewareSuite) TestBearerHeaderFallback() {
	token, _, err := s.tokenService.IssueAccessToken(s.identity)
	s.NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec, seen := s.run(req)

	s.Equal(http.StatusOK, rec.Code)
	s.NotNil(seen)
}

func (s *AuthMiddlewareSuite) TestExpiredAccessRecoveredByRefresh() {
	refreshToken, _, err := s.tokenService.IssueRefreshToken(s.identity)
	s.NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(&http.Cookie{Name: services.AccessTokenCookie, Value: s.expiredAccessToken()})
	req.AddCookie(&http.Cookie{Name: services.RefreshTokenCookie, Value: refreshToken})
	rec, seen := s.run(req)

	s.Equal(http.StatusOK, rec.Code)
	s.Require().NotNil(seen)
	s.Equal(s.identity.UserID, seen.UserID)

	// The refresh path replaces the access cookie
	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal(services.AccessTokenCookie, cookies[0].Name)
	claims, err := s.tokenService.VerifyAccessToken(cookies[0].Value)
	s.NoError(err)
	s.Equal(s.identity.UserID, claims.UserID)
}

func (s *AuthMiddlewareSuite) TestRefreshOnlyCookieAccepted() {
	refreshToken, _, err := s.tokenService.IssueRefreshToken(s.identity)
	s.NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(&http.Cookie{Name: services.RefreshTokenCookie, Value: refreshToken})
	rec, seen := s.run(req)

	s.Equal(http.StatusOK, rec.Code)
	s.NotNil(seen)
}

func (s *AuthMiddlewareSuite) TestExpiredAccessWithoutRefreshRejected() {
	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(&http.Cookie{Name: services.AccessTokenCookie, Value: s.expiredAccessToken()})
	rec, _ := s.run(req)

	s.Equal(http.StatusUnauthorized, rec.Code)
	body := s.decodeError(rec)
	s.Equal(string(apierrors.AuthExpiredToken), string(body.Code))
	s.NotEmpty(body.AuthURL)
}

func (s *AuthMiddlewareSuite) TestGarbageAccessWithoutRefreshRejected() {
	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(&http.Cookie{Name: services.AccessTokenCookie, Value: "garbage"})
	rec, _ := s.run(req)

	s.Equal(http.StatusUnauthorized, rec.Code)
	body := s.decodeError(rec)
	s.Equal(string(apierrors.AuthInvalidToken), string(body.Code))
}

func (s *AuthMiddlewareSuite) TestInvalidRefreshRejectedAsSessionExpired() {
	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(&http.Cookie{Name: services.AccessTokenCookie, Value: s.expiredAccessToken()})
	req.AddCookie(&http.Cookie{Name: services.RefreshTokenCookie, Value: "garbage"})
	rec, _ := s.run(req)

	s.Equal(http.StatusUnauthorized, rec.Code)
	body := s.decodeError(rec)
	s.Equal(string(apierrors.AuthSessionExpired), string(body.Code))
	s.NotEmpty(body.AuthURL)
}

func (s *AuthMiddlewareSuite) TestMockAuthInjectsDevelopmentIdentity() {
	s.cfg.SSO.MockAuth = true

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	rec, seen := s.run(req)

	s.Equal(http.StatusOK, rec.Code)
	s.Require().NotNil(seen)
	s.Equal(mockIdentity.UserID, seen.UserID)
	s.Equal(mockIdentity.AccountNumber, seen.AccountNumber)
}

func (s *AuthMiddlewareSuite) TestMockAuthDoesNotOverrideRealTokens() {
	s.cfg.SSO.MockAuth = true
	token, _, err := s.tokenService.IssueAccessToken(s.identity)
	s.NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(&http.Cookie{Name: services.AccessTokenCookie, Value: token})
	rec, seen := s.run(req)

	s.Equal(http.StatusOK, rec.Code)
	s.Require().NotNil(seen)
	s.Equal(s.identity.UserID, seen.UserID)
}
