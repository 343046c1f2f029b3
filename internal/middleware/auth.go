package middleware

import (
	"errors"
	"fmt"
	"net/url"

	"leadhub/internal/config"
	apierrors "leadhub/internal/errors"
	"leadhub/internal/handlers"
	"leadhub/internal/models"
	"leadhub/internal/services"

	"github.com/labstack/echo/v4"
)

// mockIdentity is injected when MOCK_AUTH is enabled and a request arrives
// without tokens, so the frontend can be developed without a running SSO peer.
var mockIdentity = models.Identity{
	UserID:        "00000000-0000-0000-0000-000000000001",
	Email:         "dev@localhost",
	AccountID:     "00000000-0000-0000-0000-0000000000aa",
	AccountNumber: "DEV001",
	Role:          "admin",
	Permissions:   []string{"leads:read", "leads:write"},
}

// RequireSession is the per-request authentication gate. It resolves the
// caller's identity from the access-token cookie (Authorization header as a
// fallback), transparently refreshing the access token from the refresh
// cookie when needed. Evaluation is terminal on first match:
//
//	no tokens at all            -> 401 with login-redirect URL
//	access token verifies       -> identity context, continue
//	access bad, refresh present -> refresh engine; failure -> 401
//	access bad, refresh absent  -> 401 with login-redirect URL
func RequireSession(tokenService services.TokenServiceInterface, sessionService services.SessionServiceInterface, metrics services.MetricsRecorderInterface, cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accessToken := extractAccessToken(c, tokenService)
			refreshToken := extractCookie(c, services.RefreshTokenCookie)

			if accessToken == "" && refreshToken == "" {
				if cfg.SSO.MockAuth {
					identity := mockIdentity
					setIdentityContext(c, &identity)
					return next(c)
				}
				metrics.RecordAuthEvent("missing_token")
				return handlers.SendError(c, apierrors.AuthMissingToken,
					apierrors.WithAuthURL(loginRedirectURL(c, cfg)))
			}

			if accessToken != "" {
				claims, err := tokenService.VerifyAccessToken(accessToken)
				if err == nil {
					metrics.RecordAuthEvent("access_valid")
					setIdentityContext(c, claims.Identity())
					return next(c)
				}
				if !errors.Is(err, services.ErrExpiredToken) && refreshToken == "" {
					metrics.RecordAuthEvent("access_invalid")
					return handlers.SendError(c, apierrors.AuthInvalidToken,
						apierrors.WithAuthURL(loginRedirectURL(c, cfg)))
				}
			}

			if refreshToken == "" {
				metrics.RecordAuthEvent("access_expired")
				return handlers.SendError(c, apierrors.AuthExpiredToken,
					apierrors.WithAuthURL(loginRedirectURL(c, cfg)))
			}

			identity, err := sessionService.RefreshSession(c, refreshToken)
			if err != nil {
				metrics.RecordAuthEvent("refresh_failed")
				return handlers.SendError(c, apierrors.AuthSessionExpired,
					apierrors.WithAuthURL(loginRedirectURL(c, cfg)))
			}

			metrics.RecordAuthEvent("refreshed")
			setIdentityContext(c, identity)
			return next(c)
		}
	}
}

func setIdentityContext(c echo.Context, identity *models.Identity) {
	c.Set(handlers.IdentityContextKey, identity)
}

// extractAccessToken reads the access token from its cookie, falling back to
// an Authorization bearer header (the original API accepted both).
func extractAccessToken(c echo.Context, tokenService services.TokenServiceInterface) string {
	if token := extractCookie(c, services.AccessTokenCookie); token != "" {
		return token
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	token, err := tokenService.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return ""
	}
	return token
}

func extractCookie(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

// loginRedirectURL builds the SSO login URL that brings the caller back to
// the resource it originally requested.
func loginRedirectURL(c echo.Context, cfg *config.Config) string {
	original := fmt.Sprintf("%s://%s%s", c.Scheme(), c.Request().Host, c.Request().URL.Path)
	return fmt.Sprintf("%s/login?redirect=%s", cfg.SSO.AuthServiceURL, url.QueryEscape(original))
}
