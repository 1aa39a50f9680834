package reports

import (
	"errors"
	"sort"
	"time"

	"github.com/goodlandcafe/pos_backend/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidAlpha = errors.New("smoothing factor must be in (0, 1]")

type ForecastMetric string

const (
	ForecastMetricCount  ForecastMetric = "count"
	ForecastMetricAmount ForecastMetric = "amount"
)

const periodLayout = "2006-01-02"

func ParseForecastMetric(s string) (ForecastMetric, error) {
	switch ForecastMetric(s) {
	case "", ForecastMetricCount:
		return ForecastMetricCount, nil
	case ForecastMetricAmount:
		return ForecastMetricAmount, nil
	}
	return "", errors.New("metric must be count or amount")
}

// ForecastPoint pairs a day with its actual value and its smoothed forecast.
// The trailing next-day point has no actual.
type ForecastPoint struct {
	Period   string           `json:"period"`
	Date     time.Time        `json:"date"`
	Actual   *decimal.Decimal `json:"actual"`
	Forecast *decimal.Decimal `json:"forecast"`
}

type SeriesBucket struct {
	Date  time.Time
	Value decimal.Decimal
}

// ExponentialSmoothing returns forecast[0]=actual[0] and
// forecast[t] = alpha*actual[t-1] + (1-alpha)*forecast[t-1].
func ExponentialSmoothing(actual []decimal.Decimal, alpha decimal.Decimal) ([]decimal.Decimal, error) {
	if !alpha.IsPositive() || alpha.GreaterThan(decimal.NewFromInt(1)) {
		return nil, ErrInvalidAlpha
	}
	if len(actual) == 0 {
		return []decimal.Decimal{}, nil
	}
	rest := decimal.NewFromInt(1).Sub(alpha)
	forecast := make([]decimal.Decimal, len(actual))
	forecast[0] = actual[0]
	for t := 1; t < len(actual); t++ {
		forecast[t] = alpha.Mul(actual[t-1]).Add(rest.Mul(forecast[t-1]))
	}
	return forecast, nil
}

// nextForecast is the forecast one step past the end of the series.
func nextForecast(actual, forecast []decimal.Decimal, alpha decimal.Decimal) decimal.Decimal {
	n := len(actual)
	return alpha.Mul(actual[n-1]).Add(decimal.NewFromInt(1).Sub(alpha).Mul(forecast[n-1]))
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DailySeries buckets transactions by calendar day in loc. Days without sales
// between the first and last sale are present with value zero.
func DailySeries(history []models.Transaction, metric ForecastMetric, loc *time.Location) []SeriesBucket {
	if len(history) == 0 {
		return []SeriesBucket{}
	}
	if loc == nil {
		loc = time.UTC
	}
	byDay := make(map[time.Time]decimal.Decimal)
	for _, txn := range history {
		day := dayStart(txn.TimeOrdered, loc)
		v := byDay[day]
		if metric == ForecastMetricAmount {
			v = v.Add(txn.TotalAmount)
		} else {
			v = v.Add(decimal.NewFromInt(1))
		}
		byDay[day] = v
	}
	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var series []SeriesBucket
	for d := days[0]; !d.After(days[len(days)-1]); d = d.AddDate(0, 0, 1) {
		series = append(series, SeriesBucket{Date: d, Value: byDay[d]})
	}
	return series
}

type ForecastOptions struct {
	Alpha    decimal.Decimal
	Metric   ForecastMetric
	Location *time.Location
}

// SalesForecast runs exponential smoothing over the daily series. With two or
// more days a forecast-only point for the following day is appended.
func SalesForecast(history []models.Transaction, opts ForecastOptions) ([]ForecastPoint, error) {
	series := DailySeries(history, opts.Metric, opts.Location)
	actual := make([]decimal.Decimal, len(series))
	for i, b := range series {
		actual[i] = b.Value
	}
	forecast, err := ExponentialSmoothing(actual, opts.Alpha)
	if err != nil {
		return nil, err
	}

	points := make([]ForecastPoint, 0, len(series)+1)
	for i, b := range series {
		a, f := actual[i], forecast[i]
		points = append(points, ForecastPoint{
			Period:   b.Date.Format(periodLayout),
			Date:     b.Date,
			Actual:   &a,
			Forecast: &f,
		})
	}
	if len(series) >= 2 {
		next := nextForecast(actual, forecast, opts.Alpha)
		d := series[len(series)-1].Date.AddDate(0, 0, 1)
		points = append(points, ForecastPoint{
			Period:   d.Format(periodLayout),
			Date:     d,
			Forecast: &next,
		})
	}
	return points, nil
}
