package models

import "github.com/golang-jwt/jwt/v5"

// Identity is the verified per-request identity derived from a session token.
// It is populated once by the auth middleware and never persisted.
type Identity struct {
	UserID        string   `json:"userId"`
	Email         string   `json:"email"`
	AccountID     string   `json:"accountId"`
	AccountNumber string   `json:"accountNumber"`
	Role          string   `json:"role"`
	Permissions   []string `json:"permissions,omitempty"`
}

// SessionClaims represents the claims carried inside our JWT tokens
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID        string   `json:"user_id"`
	Email         string   `json:"email,omitempty"`
	AccountID     string   `json:"account_id,omitempty"`
	AccountNumber string   `json:"account_number,omitempty"`
	Role          string   `json:"role,omitempty"`
	Permissions   []string `json:"permissions,omitempty"`
	TokenType     string   `json:"token_type"`
}

// Identity extracts the identity fields from a verified claim set.
func (c *SessionClaims) Identity() *Identity {
	return &Identity{
		UserID:        c.UserID,
		Email:         c.Email,
		AccountID:     c.AccountID,
		AccountNumber: c.AccountNumber,
		Role:          c.Role,
		Permissions:   c.Permissions,
	}
}
