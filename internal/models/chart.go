package models

import (
	"errors"
	"fmt"
)

// ErrInvalidAggregation is returned for aggregation values outside the
// closed set.
var ErrInvalidAggregation = errors.New("invalid aggregation type")

// ChartPoint is one aggregated series entry: a distinct group value and the
// aggregate computed over its records.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Aggregation is the closed set of aggregation kinds supported by the
// chart-data endpoint.
type Aggregation int

const (
	AggregationCount Aggregation = iota
	AggregationSum
	AggregationAvg
	AggregationMin
	AggregationMax
)

// ParseAggregation maps the query-string value to an Aggregation.
func ParseAggregation(s string) (Aggregation, error) {
	switch s {
	case "count":
		return AggregationCount, nil
	case "sum":
		return AggregationSum, nil
	case "avg":
		return AggregationAvg, nil
	case "min":
		return AggregationMin, nil
	case "max":
		return AggregationMax, nil
	default:
		return 0, fmt.Errorf("%w: %q (allowed: count, sum, avg, min, max)", ErrInvalidAggregation, s)
	}
}

func (a Aggregation) String() string {
	switch a {
	case AggregationCount:
		return "count"
	case AggregationSum:
		return "sum"
	case AggregationAvg:
		return "avg"
	case AggregationMin:
		return "min"
	case AggregationMax:
		return "max"
	default:
		return "unknown"
	}
}

// leadChartFields maps the JSON field names accepted as xAxis/yAxis to
// database columns. Axis input never reaches the query unmapped.
var leadChartFields = map[string]string{
	"trainerName": "trainer_name",
	"memberName":  "member_name",
	"email":       "email",
	"phone":       "phone",
	"status":      "status",
	"source":      "source",
}

// ChartColumn resolves an axis field name to its column, reporting whether
// the field is chartable.
func ChartColumn(field string) (string, bool) {
	col, ok := leadChartFields[field]
	return col, ok
}
