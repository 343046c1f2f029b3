package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	apierrors "leadhub/internal/errors"
	"leadhub/internal/handlers"

	"github.com/labstack/echo/v4"
)

// AccountNumberHeader carries the account scope when neither the route nor
// the body does.
const AccountNumberHeader = "X-Account-Number"

type accountScopedBody struct {
	AccountNumber string `json:"accountNumber"`
}

// RequireAccountMatch enforces that the account the request targets is the
// account in the caller's session. Must run after RequireSession.
//
// The target account number is resolved in order: route parameter, JSON
// body field, X-Account-Number header. First one found wins; a request
// carrying none of the three is rejected outright.
func RequireAccountMatch() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := handlers.GetIdentityFromContext(c)
			if err != nil {
				return handlers.SendError(c, apierrors.AuthMissingToken)
			}

			accountNumber, err := resolveAccountNumber(c)
			if err != nil {
				return handlers.SendError(c, apierrors.ValidationGeneral,
					apierrors.WithDetails("Invalid request body"))
			}

			if accountNumber == "" {
				return handlers.SendError(c, apierrors.AccountNumberRequired)
			}

			if accountNumber != identity.AccountNumber {
				return handlers.SendError(c, apierrors.AccountMismatch)
			}

			c.Set("accountNumber", accountNumber)
			return next(c)
		}
	}
}

func resolveAccountNumber(c echo.Context) (string, error) {
	if number := c.Param("accountNumber"); number != "" {
		return number, nil
	}

	if number, err := accountNumberFromBody(c); err != nil || number != "" {
		return number, err
	}

	return c.Request().Header.Get(AccountNumberHeader), nil
}

// accountNumberFromBody peeks at the JSON body without consuming it, so the
// handler behind the guard can still bind the request.
func accountNumberFromBody(c echo.Context) (string, error) {
	if c.Request().Body == nil {
		return "", nil
	}

	bodyBytes, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", err
	}
	c.Request().Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return "", nil
	}

	var body accountScopedBody
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		// Array payloads and non-JSON bodies carry no account scope.
		return "", nil
	}
	return body.AccountNumber, nil
}
