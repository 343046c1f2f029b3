package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	SSO      SSOConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// JWTConfig holds the signing material for both token kinds. Access and
// refresh tokens are signed with distinct secrets so that compromise of one
// does not allow forging the other.
type JWTConfig struct {
	AccessTokenSecret    []byte
	RefreshTokenSecret   []byte
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	Issuer               string
}

// SSOConfig holds the settings for the external SSO service integration and
// the session cookies this service issues.
type SSOConfig struct {
	AuthServiceURL  string
	FrontendBaseURL string
	CookieDomain    string
	MockAuth        bool
}

func Load() *Config {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8083"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "leadhub_user"),
			Password:        getEnv("DB_PASSWORD", "leadhub_password"),
			Name:            getEnv("DB_NAME", "leadhub_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			AccessTokenDuration:  getDurationEnv("JWT_ACCESS_TOKEN_DURATION", 15*time.Minute),
			RefreshTokenDuration: getDurationEnv("JWT_REFRESH_TOKEN_DURATION", 7*24*time.Hour),
			Issuer:               getEnv("JWT_ISSUER", "leadhub-api"),
		},
		SSO: SSOConfig{
			AuthServiceURL:  getEnv("AUTH_SERVICE_URL", "http://localhost:8081"),
			FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
			CookieDomain:    getEnv("COOKIE_DOMAIN", ""),
			MockAuth:        getBoolEnv("MOCK_AUTH", false),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	var loadSecretsErr error
	config.JWT.AccessTokenSecret, config.JWT.RefreshTokenSecret, loadSecretsErr = config.loadJWTSecrets()
	if loadSecretsErr != nil {
		log.Fatal("Failed to load JWT secrets:", loadSecretsErr)
	}

	return config
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadJWTSecrets loads the HMAC signing secrets for both token kinds.
// Priority order:
// 1. If JWT_ACCESS_SECRET and JWT_REFRESH_SECRET env vars are set, use them.
//    The access secret is shared with the SSO auth service, which signs the
//    callback tokens this service verifies.
// 2. If production and env vars missing, fail (production requires explicit secrets).
// 3. If development/testing and env vars missing, generate random secrets.
func (c *Config) loadJWTSecrets() ([]byte, []byte, error) {
	accessSecret := os.Getenv("JWT_ACCESS_SECRET")
	refreshSecret := os.Getenv("JWT_REFRESH_SECRET")

	if accessSecret != "" && refreshSecret != "" {
		if accessSecret == refreshSecret {
			return nil, nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
		}
		return []byte(accessSecret), []byte(refreshSecret), nil
	}

	if c.IsProduction() {
		return nil, nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET environment variables must be set in production environments")
	}

	log.Println("Development environment: generating random JWT secrets (set JWT_ACCESS_SECRET and JWT_REFRESH_SECRET to persist sessions across restarts)")
	access, err := generateSecret()
	if err != nil {
		return nil, nil, err
	}
	refresh, err := generateSecret()
	if err != nil {
		return nil, nil, err
	}
	return access, refresh, nil
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("ALLOWED_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			log.Println("WARNING: ALLOWED_ORIGINS not set in production environment, defaulting to the frontend base URL only")
		}
		return []string{c.SSO.FrontendBaseURL}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	log.Printf("CORS allowed origins configured: %v", origins)
	return origins
}

func generateSecret() ([]byte, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	secret := make([]byte, base64.StdEncoding.EncodedLen(len(buf)))
	base64.StdEncoding.Encode(secret, buf)
	return secret, nil
}
