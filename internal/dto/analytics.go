package dto

import "time"

// ChartQuery contains the parsed parameters of the chart-data endpoint.
// XAxis is the grouping field, YAxis the value field (ignored for count),
// and the optional date range is inclusive over the last-modified timestamp.
type ChartQuery struct {
	XAxis       string
	YAxis       string
	Aggregation string
	From        *time.Time
	To          *time.Time
}

// ChartQueryParams is the raw query-string binding for the chart-data endpoint
type ChartQueryParams struct {
	XAxis       string `query:"xAxis"`
	YAxis       string `query:"yAxis"`
	Aggregation string `query:"aggregation"`
	FromDate    string `query:"fromDate"`
	ToDate      string `query:"toDate"`
}
