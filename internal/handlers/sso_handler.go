package handlers

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"

	"leadhub/internal/config"
	"leadhub/internal/dto"
	"leadhub/internal/errors"
	"leadhub/internal/services"

	"github.com/labstack/echo/v4"
)

// SSOHandler handles the cookie-based SSO login flow: it hands the browser
// off to the external auth service and turns the callback token into a
// session cookie pair.
type SSOHandler struct {
	tokenService   services.TokenServiceInterface
	sessionService services.SessionServiceInterface
	metrics        services.MetricsRecorderInterface
	sso            config.SSOConfig
}

// NewSSOHandler creates a new SSO handler
func NewSSOHandler(tokenService services.TokenServiceInterface, sessionService services.SessionServiceInterface, metrics services.MetricsRecorderInterface, sso config.SSOConfig) *SSOHandler {
	return &SSOHandler{
		tokenService:   tokenService,
		sessionService: sessionService,
		metrics:        metrics,
		sso:            sso,
	}
}

// Login returns the SSO login URL for the frontend to navigate to
// @Summary Start a login
// @Tags SSO
// @Accept json
// @Produce json
// @Param redirect query string false "Post-login redirect target"
// @Success 200 {object} dto.LoginResponse "Auth URL to navigate to"
// @Router /sso/login [post]
func (h *SSOHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	// Bind only reads the body on POST; older clients pass redirect in the query
	if req.Redirect == "" {
		req.Redirect = c.QueryParam("redirect")
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		AuthURL: h.buildAuthURL(req.Redirect),
	})
}

// LoginRedirect sends the browser straight to the SSO login page. Kept for
// bookmarked /login URLs.
func (h *SSOHandler) LoginRedirect(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.buildAuthURL(c.QueryParam("redirect")))
}

// Callback completes the SSO round trip: it verifies the token the auth
// service issued, sets the session cookies and bounces the browser back to
// the app
// @Summary SSO callback
// @Tags SSO
// @Produce html
// @Param token query string true "Token issued by the auth service"
// @Param redirect query string false "Where to send the browser afterwards"
// @Success 200 {string} string "Auto-redirect page"
// @Failure 400 {object} ErrorResponse "VALIDATION_002 - Token missing"
// @Failure 401 {object} ErrorResponse "AUTH_002 - Token did not verify"
// @Router /sso/callback [get]
func (h *SSOHandler) Callback(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("token is required"))
	}

	claims, err := h.tokenService.VerifyAccessToken(token)
	if err != nil {
		h.metrics.RecordAuthEvent("callback_rejected")
		slog.Warn("SSO callback token rejected",
			slog.String("error", err.Error()),
			slog.String("client_ip", getClientIP(c)),
		)
		return SendError(c, errors.AuthInvalidToken)
	}

	identity := claims.Identity()
	if err := h.sessionService.IssueSession(c, identity); err != nil {
		return SendSystemError(c, err)
	}

	h.metrics.RecordAuthEvent("login")
	slog.Info("session established",
		slog.String("user_id", identity.UserID),
		slog.String("account_number", identity.AccountNumber),
	)

	redirect := c.QueryParam("redirect")
	if redirect == "" {
		redirect = h.sso.FrontendBaseURL
	}

	return c.HTML(http.StatusOK, redirectPage(redirect))
}

// Me returns the authenticated identity
// @Summary Current user
// @Tags SSO
// @Produce json
// @Success 200 {object} dto.UserResponse "Authenticated identity"
// @Failure 401 {object} ErrorResponse "AUTH_001 - No session"
// @Router /sso/me [get]
func (h *SSOHandler) Me(c echo.Context) error {
	identity, err := GetIdentityFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	return c.JSON(http.StatusOK, dto.UserResponse{
		Success: true,
		User:    identity,
	})
}

// Logout clears the session cookies. Always succeeds, cookies or not.
// @Summary Log out
// @Tags SSO
// @Produce json
// @Success 200 {object} SuccessResponse "Session cleared"
// @Router /sso/logout [post]
func (h *SSOHandler) Logout(c echo.Context) error {
	h.sessionService.ClearSession(c)
	h.metrics.RecordAuthEvent("logout")
	return SendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *SSOHandler) buildAuthURL(redirect string) string {
	if redirect == "" {
		redirect = h.sso.FrontendBaseURL
	}
	return fmt.Sprintf("%s/login?redirect=%s", h.sso.AuthServiceURL, url.QueryEscape(redirect))
}

// redirectPage renders a minimal page that forwards the browser immediately,
// with a plain link as fallback for clients that ignore both mechanisms.
func redirectPage(target string) string {
	escaped := html.EscapeString(target)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta http-equiv="refresh" content="0;url=%s">
<script>window.location.replace(%q);</script>
</head>
<body>
<p>Login successful. <a href="%s">Continue</a></p>
</body>
</html>`, escaped, target, escaped)
}
