package handlers

import (
	"fmt"
	"strings"

	"leadhub/internal/models"

	"github.com/labstack/echo/v4"
)

// IdentityContextKey is the context key the auth middleware populates with
// the verified request identity.
const IdentityContextKey = "identity"

// ErrUnauthorized is returned when the identity context is missing or invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// GetIdentityFromContext extracts the verified identity set by the auth
// middleware. Returns ErrUnauthorized if the request never passed the gate.
func GetIdentityFromContext(c echo.Context) (*models.Identity, error) {
	value := c.Get(IdentityContextKey)
	if value == nil {
		return nil, ErrUnauthorized
	}

	identity, ok := value.(*models.Identity)
	if !ok {
		return nil, ErrUnauthorized
	}

	return identity, nil
}

func getClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.Request().RemoteAddr
}
