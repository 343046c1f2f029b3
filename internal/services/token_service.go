package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"leadhub/internal/config"
	"leadhub/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token is expired")
	ErrInvalidIssuer     = errors.New("invalid issuer")
	ErrInvalidTokenType  = errors.New("invalid token type")
	ErrEmptyToken        = errors.New("empty token")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
)

// TokenService handles JWT token generation and validation. Access and
// refresh tokens are signed with distinct HMAC secrets; a token of one kind
// never verifies as the other.
type TokenService struct {
	config.JWTConfig
}

// NewTokenService creates a new token service from JWT configuration
func NewTokenService(jwtConfig *config.JWTConfig) TokenServiceInterface {
	return &TokenService{
		JWTConfig: *jwtConfig,
	}
}

// IssueAccessToken generates a short-lived access token for an identity
func (ts *TokenService) IssueAccessToken(identity *models.Identity) (string, time.Time, error) {
	return ts.issue(identity, TokenTypeAccess, ts.AccessTokenDuration, ts.AccessTokenSecret)
}

// IssueRefreshToken generates a long-lived refresh token for an identity
func (ts *TokenService) IssueRefreshToken(identity *models.Identity) (string, time.Time, error) {
	return ts.issue(identity, TokenTypeRefresh, ts.RefreshTokenDuration, ts.RefreshTokenSecret)
}

// VerifyAccessToken validates and parses an access token
func (ts *TokenService) VerifyAccessToken(tokenString string) (*models.SessionClaims, error) {
	return ts.verify(tokenString, TokenTypeAccess, ts.AccessTokenSecret)
}

// VerifyRefreshToken validates and parses a refresh token
func (ts *TokenService) VerifyRefreshToken(tokenString string) (*models.SessionClaims, error) {
	return ts.verify(tokenString, TokenTypeRefresh, ts.RefreshTokenSecret)
}

// ExtractTokenFromHeader extracts the JWT token from the Authorization header
func (ts *TokenService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidAuthHeader
	}

	const bearerPrefix = "bearer "
	if !strings.HasPrefix(strings.ToLower(authHeader), bearerPrefix) {
		return "", ErrInvalidAuthHeader
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if token == "" {
		return "", ErrInvalidAuthHeader
	}

	return token, nil
}

func (ts *TokenService) issue(identity *models.Identity, tokenType string, ttl time.Duration, secret []byte) (string, time.Time, error) {
	if identity == nil {
		return "", time.Time{}, errors.New("identity cannot be nil")
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.Issuer,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
		},
		UserID:        identity.UserID,
		Email:         identity.Email,
		AccountID:     identity.AccountID,
		AccountNumber: identity.AccountNumber,
		Role:          identity.Role,
		Permissions:   identity.Permissions,
		TokenType:     tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, expiresAt, nil
}

func (ts *TokenService) verify(tokenString, expectedType string, secret []byte) (*models.SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, keyFunc)
	if err != nil {
		return nil, mapTokenError(err)
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if err := ts.validateClaims(claims, expectedType); err != nil {
		return nil, err
	}

	return claims, nil
}

// mapTokenError collapses jwt parse failures into the two outcomes callers
// distinguish: only a structurally sound, correctly signed token that merely
// lapsed reports ErrExpiredToken. A bad signature wins over expiry.
func mapTokenError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenMalformed) {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpiredToken
	}
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}

func (ts *TokenService) validateClaims(claims *models.SessionClaims, expectedType string) error {
	if claims.Issuer != ts.Issuer {
		return ErrInvalidIssuer
	}

	if claims.TokenType != expectedType {
		return ErrInvalidTokenType
	}

	return nil
}
