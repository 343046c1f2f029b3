package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadhub/internal/database"
	"leadhub/internal/errors"
	"leadhub/internal/models"
	"leadhub/internal/repositories"
	"leadhub/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAnalyticsHandler(t *testing.T) {
	suite.Run(t, new(AnalyticsHandlerSuite))
}

type AnalyticsHandlerSuite struct {
	suite.Suite
	db      *database.DB
	repo    repositories.LeadRepositoryInterface
	handler *AnalyticsHandler
	e       *echo.Echo
}

func (s *AnalyticsHandlerSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = repositories.NewLeadRepository(s.db.DB)
	service := services.NewAnalyticsService(s.repo, services.NewNoopMetrics())
	s.handler = NewAnalyticsHandler(service)
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *AnalyticsHandlerSuite) seed(trainer, email string) {
	s.Require().NoError(s.repo.Create(&models.Lead{
		TrainerName: trainer,
		MemberName:  "Member",
		Email:       email,
		Status:      models.LeadStatusNew,
	}))
}

func (s *AnalyticsHandlerSuite) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	s.Require().NoError(s.handler.ChartData(c))
	return rec
}

func (s *AnalyticsHandlerSuite) TestCountByTrainer() {
	s.seed("Alex", "c1@example.com")
	s.seed("Alex", "c2@example.com")
	s.seed("Brook", "c3@example.com")

	rec := s.get("/api/analytics/chart-data?xAxis=trainerName&yAxis=trainerName&aggregation=count")
	s.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    []models.ChartPoint `json:"data"`
	}
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.Success)
	s.Equal([]models.ChartPoint{
		{Name: "Alex", Value: 2},
		{Name: "Brook", Value: 1},
	}, resp.Data)
}

func (s *AnalyticsHandlerSuite) TestMissingParams() {
	rec := s.get("/api/analytics/chart-data?xAxis=trainerName")
	s.Equal(http.StatusBadRequest, rec.Code)

	var body errors.ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(string(errors.AnalyticsMissingParams), string(body.Code))
}

func (s *AnalyticsHandlerSuite) TestInvalidAggregation() {
	rec := s.get("/api/analytics/chart-data?xAxis=status&yAxis=status&aggregation=median")
	s.Equal(http.StatusBadRequest, rec.Code)

	var body errors.ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(string(errors.AnalyticsInvalidAggregation), string(body.Code))
}

func (s *AnalyticsHandlerSuite) TestInvalidField() {
	rec := s.get("/api/analytics/chart-data?xAxis=id&yAxis=status&aggregation=count")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AnalyticsHandlerSuite) TestInvalidDateFormat() {
	rec := s.get("/api/analytics/chart-data?xAxis=status&yAxis=status&aggregation=count&fromDate=last-tuesday")
	s.Equal(http.StatusBadRequest, rec.Code)

	var body errors.ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(string(errors.ValidationInvalidDate), string(body.Code))
}

func (s *AnalyticsHandlerSuite) TestInvalidDateRange() {
	rec := s.get("/api/analytics/chart-data?xAxis=status&yAxis=status&aggregation=count&fromDate=2026-02-01&toDate=2026-01-01")
	s.Equal(http.StatusBadRequest, rec.Code)

	var body errors.ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(string(errors.AnalyticsInvalidDateRange), string(body.Code))
}

func (s *AnalyticsHandlerSuite) TestDateWindowFiltersRows() {
	s.seed("Alex", "w1@example.com")

	rec := s.get("/api/analytics/chart-data?xAxis=trainerName&yAxis=trainerName&aggregation=count&fromDate=2001-01-01&toDate=2001-12-31")
	s.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Data []models.ChartPoint `json:"data"`
	}
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Empty(resp.Data)
}

func (s *AnalyticsHandlerSuite) TestEmptyTableReturnsEmptySeries() {
	rec := s.get("/api/analytics/chart-data?xAxis=status&yAxis=status&aggregation=count")
	s.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Data []models.ChartPoint `json:"data"`
	}
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.NotNil(resp.Data)
	s.Empty(resp.Data)
}
