package services

import (
	"time"

	"leadhub/internal/dto"
	"leadhub/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenServiceInterface defines the token codec: signed, expiring claim sets
// encoded to opaque bearer strings and back.
type TokenServiceInterface interface {
	IssueAccessToken(identity *models.Identity) (string, time.Time, error)
	IssueRefreshToken(identity *models.Identity) (string, time.Time, error)
	VerifyAccessToken(tokenString string) (*models.SessionClaims, error)
	VerifyRefreshToken(tokenString string) (*models.SessionClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// SessionServiceInterface manages the cookie-backed session lifecycle:
// issuing token pairs, refreshing access tokens, and clearing sessions.
type SessionServiceInterface interface {
	IssueSession(c echo.Context, identity *models.Identity) error
	RefreshSession(c echo.Context, refreshToken string) (*models.Identity, error)
	ClearSession(c echo.Context)
}

// LeadServiceInterface defines lead CRUD business operations
type LeadServiceInterface interface {
	CreateLeads(requests []dto.CreateLeadRequest) ([]models.Lead, error)
	ListLeads(query dto.ListLeadsQuery) ([]models.Lead, *dto.Pagination, error)
	UpdateLead(id uuid.UUID, request dto.UpdateLeadRequest) (*models.Lead, error)
	DeleteLead(id uuid.UUID) error
}

// AnalyticsServiceInterface defines the chart-data aggregation operation
type AnalyticsServiceInterface interface {
	ChartData(query dto.ChartQuery) ([]models.ChartPoint, error)
}

// MetricsRecorderInterface records domain metrics
type MetricsRecorderInterface interface {
	RecordAuthEvent(outcome string)
	RecordLeadOperation(operation, status string)
	RecordChartQuery(aggregation string)
	ObserveQueryDuration(operation string, duration time.Duration)
}
