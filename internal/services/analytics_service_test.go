package services

import (
	"testing"
	"time"

	"leadhub/internal/dto"
	"leadhub/internal/models"
	"leadhub/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceSuite))
}

type AnalyticsServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *repository_mocks.MockLeadRepositoryInterface
	service  AnalyticsServiceInterface
}

func (s *AnalyticsServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = repository_mocks.NewMockLeadRepositoryInterface(s.ctrl)
	s.service = NewAnalyticsService(s.mockRepo, NewNoopMetrics())
}

func (s *AnalyticsServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AnalyticsServiceSuite) TestMissingParams() {
	cases := []dto.ChartQuery{
		{YAxis: "status", Aggregation: "count"},
		{XAxis: "status", Aggregation: "count"},
		{XAxis: "status", YAxis: "status"},
	}
	for _, query := range cases {
		_, err := s.service.ChartData(query)
		s.ErrorIs(err, ErrMissingChartParams)
	}
}

func (s *AnalyticsServiceSuite) TestInvalidAggregation() {
	_, err := s.service.ChartData(dto.ChartQuery{
		XAxis:       "status",
		YAxis:       "status",
		Aggregation: "median",
	})
	s.ErrorIs(err, models.ErrInvalidAggregation)
}

func (s *AnalyticsServiceSuite) TestUnknownXAxisField() {
	_, err := s.service.ChartData(dto.ChartQuery{
		XAxis:       "notes; DROP TABLE leads",
		YAxis:       "status",
		Aggregation: "count",
	})
	s.ErrorIs(err, ErrInvalidChartField)
}

func (s *AnalyticsServiceSuite) TestUnknownYAxisFieldForSum() {
	_, err := s.service.ChartData(dto.ChartQuery{
		XAxis:       "status",
		YAxis:       "created_at",
		Aggregation: "sum",
	})
	s.ErrorIs(err, ErrInvalidChartField)
}

func (s *AnalyticsServiceSuite) TestCountIgnoresYAxisColumn() {
	// count never touches the yAxis field, so an otherwise unmapped value
	// passes through; the repository sees an empty value column.
	s.mockRepo.EXPECT().
		Aggregate("status", "", models.AggregationCount, nil, nil).
		Return([]models.ChartPoint{{Name: "new", Value: 3}}, nil)

	points, err := s.service.ChartData(dto.ChartQuery{
		XAxis:       "status",
		YAxis:       "status",
		Aggregation: "count",
	})
	s.NoError(err)
	s.Equal([]models.ChartPoint{{Name: "new", Value: 3}}, points)
}

func (s *AnalyticsServiceSuite) TestFieldNamesMappedToColumns() {
	s.mockRepo.EXPECT().
		Aggregate("trainer_name", "phone", models.AggregationMax, nil, nil).
		Return([]models.ChartPoint{}, nil)

	_, err := s.service.ChartData(dto.ChartQuery{
		XAxis:       "trainerName",
		YAxis:       "phone",
		Aggregation: "max",
	})
	s.NoError(err)
}

func (s *AnalyticsServiceSuite) TestInvalidDateRange() {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.service.ChartData(dto.ChartQuery{
		XAxis:       "status",
		YAxis:       "status",
		Aggregation: "count",
		From:        &from,
		To:          &to,
	})
	s.ErrorIs(err, ErrInvalidDateRange)
}

func (s *AnalyticsServiceSuite) TestDateRangePassedThrough() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	s.mockRepo.EXPECT().
		Aggregate("status", "", models.AggregationCount, &from, &to).
		Return([]models.ChartPoint{}, nil)

	_, err := s.service.ChartData(dto.ChartQuery{
		XAxis:       "status",
		YAxis:       "status",
		Aggregation: "count",
		From:        &from,
		To:          &to,
	})
	s.NoError(err)
}
