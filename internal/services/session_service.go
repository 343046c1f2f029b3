package services

import (
	"fmt"
	"net/http"
	"time"

	"leadhub/internal/config"
	"leadhub/internal/models"

	"github.com/labstack/echo/v4"
)

const (
	// AccessTokenCookie is the name of the short-lived session cookie
	AccessTokenCookie = "access_token"
	// RefreshTokenCookie is the name of the long-lived session cookie
	RefreshTokenCookie = "refresh_token"
)

// SessionService manages the cookie-backed session lifecycle. Refresh tokens
// are the sole source of truth for identity during rotation; they are never
// themselves rotated on use, so re-login is required once one expires.
type SessionService struct {
	tokenService TokenServiceInterface
	cookieDomain string
	secure       bool
	sameSite     http.SameSite
}

// NewSessionService creates a session service bound to the token codec and
// the environment's cookie policy: Secure + SameSite=Strict in production,
// SameSite=Lax elsewhere so local cross-port frontends keep working.
func NewSessionService(tokenService TokenServiceInterface, cfg *config.Config) SessionServiceInterface {
	sameSite := http.SameSiteLaxMode
	if cfg.IsProduction() {
		sameSite = http.SameSiteStrictMode
	}

	return &SessionService{
		tokenService: tokenService,
		cookieDomain: cfg.SSO.CookieDomain,
		secure:       cfg.IsProduction(),
		sameSite:     sameSite,
	}
}

// IssueSession mints a fresh access/refresh token pair for the identity and
// sets both cookies. Used by the SSO callback and the mock login path.
func (s *SessionService) IssueSession(c echo.Context, identity *models.Identity) error {
	accessToken, accessExpiry, err := s.tokenService.IssueAccessToken(identity)
	if err != nil {
		return fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, refreshExpiry, err := s.tokenService.IssueRefreshToken(identity)
	if err != nil {
		return fmt.Errorf("failed to issue refresh token: %w", err)
	}

	s.setCookie(c, AccessTokenCookie, accessToken, accessExpiry)
	s.setCookie(c, RefreshTokenCookie, refreshToken, refreshExpiry)

	return nil
}

// RefreshSession verifies the refresh token and, on success, mints a new
// access token carrying the refresh token's claims unchanged and replaces the
// access cookie. Any verification failure aborts the whole attempt; there is
// no partial success.
func (s *SessionService) RefreshSession(c echo.Context, refreshToken string) (*models.Identity, error) {
	claims, err := s.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	identity := claims.Identity()

	accessToken, accessExpiry, err := s.tokenService.IssueAccessToken(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	s.setCookie(c, AccessTokenCookie, accessToken, accessExpiry)

	return identity, nil
}

// ClearSession expires both session cookies. Logout only deletes the
// client-held copies; an already-issued refresh token stays valid until its
// expiry.
func (s *SessionService) ClearSession(c echo.Context) {
	expired := time.Unix(0, 0)
	s.setCookie(c, AccessTokenCookie, "", expired)
	s.setCookie(c, RefreshTokenCookie, "", expired)
}

func (s *SessionService) setCookie(c echo.Context, name, value string, expires time.Time) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.cookieDomain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: s.sameSite,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	c.SetCookie(cookie)
}
