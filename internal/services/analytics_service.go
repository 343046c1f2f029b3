package services

import (
	"errors"
	"fmt"
	"time"

	"leadhub/internal/dto"
	"leadhub/internal/models"
	"leadhub/internal/repositories"
)

var (
	ErrMissingChartParams = errors.New("xAxis, yAxis, and aggregation are required")
	ErrInvalidChartField  = errors.New("invalid chart field")
	ErrInvalidDateRange   = errors.New("fromDate must not be after toDate")
)

// AnalyticsService builds and runs the chart-data aggregation
type AnalyticsService struct {
	repo    repositories.LeadRepositoryInterface
	metrics MetricsRecorderInterface
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo repositories.LeadRepositoryInterface, metrics MetricsRecorderInterface) AnalyticsServiceInterface {
	return &AnalyticsService{
		repo:    repo,
		metrics: metrics,
	}
}

// ChartData validates the query and returns one {name, value} point per
// distinct xAxis value, sorted ascending by name. count ignores yAxis; the
// other kinds aggregate over the numeric-coerced yAxis field.
func (s *AnalyticsService) ChartData(query dto.ChartQuery) ([]models.ChartPoint, error) {
	if query.XAxis == "" || query.YAxis == "" || query.Aggregation == "" {
		return nil, ErrMissingChartParams
	}

	aggregation, err := models.ParseAggregation(query.Aggregation)
	if err != nil {
		return nil, err
	}

	groupColumn, ok := models.ChartColumn(query.XAxis)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidChartField, query.XAxis)
	}

	valueColumn := ""
	if aggregation != models.AggregationCount {
		valueColumn, ok = models.ChartColumn(query.YAxis)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidChartField, query.YAxis)
		}
	}

	if query.From != nil && query.To != nil && query.From.After(*query.To) {
		return nil, ErrInvalidDateRange
	}

	start := time.Now()
	points, err := s.repo.Aggregate(groupColumn, valueColumn, aggregation, query.From, query.To)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordChartQuery(aggregation.String())
	s.metrics.ObserveQueryDuration("chart_data", time.Since(start))

	return points, nil
}
