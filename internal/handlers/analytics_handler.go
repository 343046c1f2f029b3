package handlers

import (
	goerrors "errors"
	"net/http"
	"time"

	"leadhub/internal/dto"
	"leadhub/internal/errors"
	"leadhub/internal/models"
	"leadhub/internal/services"

	"github.com/labstack/echo/v4"
)

const dateOnlyLayout = "2006-01-02"

// AnalyticsHandler handles chart aggregation HTTP requests
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServiceInterface
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService services.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// ChartData returns an aggregated series for charting
// @Summary Chart data
// @Description Aggregate leads grouped by xAxis; count/sum/avg/min/max over yAxis
// @Tags Analytics
// @Produce json
// @Param xAxis query string true "Grouping field"
// @Param yAxis query string true "Value field (ignored for count)"
// @Param aggregation query string true "count, sum, avg, min or max"
// @Param fromDate query string false "Inclusive lower bound on last update (YYYY-MM-DD or RFC 3339)"
// @Param toDate query string false "Inclusive upper bound on last update"
// @Success 200 {object} SuccessResponse "Series of {name, value} points"
// @Failure 400 {object} ErrorResponse "ANALYTICS_* - Missing or invalid parameters"
// @Failure 401 {object} ErrorResponse "AUTH_001 - Missing or invalid authentication"
// @Failure 500 {object} ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /analytics/chart-data [get]
func (h *AnalyticsHandler) ChartData(c echo.Context) error {
	var params dto.ChartQueryParams
	if err := c.Bind(&params); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	from, err := parseChartDate(params.FromDate, false)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("fromDate: "+err.Error()))
	}
	to, err := parseChartDate(params.ToDate, true)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("toDate: "+err.Error()))
	}

	query := dto.ChartQuery{
		XAxis:       params.XAxis,
		YAxis:       params.YAxis,
		Aggregation: params.Aggregation,
		From:        from,
		To:          to,
	}

	points, err := h.analyticsService.ChartData(query)
	if err != nil {
		switch {
		case goerrors.Is(err, services.ErrMissingChartParams):
			return SendError(c, errors.AnalyticsMissingParams)
		case goerrors.Is(err, models.ErrInvalidAggregation):
			return SendError(c, errors.AnalyticsInvalidAggregation)
		case goerrors.Is(err, services.ErrInvalidChartField):
			return SendError(c, errors.AnalyticsInvalidField, errors.WithDetails(err.Error()))
		case goerrors.Is(err, services.ErrInvalidDateRange):
			return SendError(c, errors.AnalyticsInvalidDateRange)
		default:
			return SendSystemError(c, err)
		}
	}

	return SendSuccess(c, http.StatusOK, "", points)
}

// parseChartDate accepts RFC 3339 timestamps or bare dates. A bare upper
// bound is stretched to the end of its day so the range stays inclusive.
func parseChartDate(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}

	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return nil, goerrors.New("expected YYYY-MM-DD or RFC 3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
