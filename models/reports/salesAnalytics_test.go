package reports_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/models/reports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func decs(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func order(id string, at time.Time, total string, lines ...models.TransactionLine) models.Transaction {
	return models.Transaction{
		ID:          id,
		TimeOrdered: at,
		TotalAmount: decimal.RequireFromString(total),
		Status:      models.TransactionStatusCompleted,
		Lines:       lines,
	}
}

func line(id, name string, category models.Category, qty int) models.TransactionLine {
	return models.TransactionLine{
		MenuItem: models.MenuItemSnapshot{ID: id, Name: name, Category: category},
		Quantity: qty,
	}
}

func TestCategoryRanking_SumsQuantities(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history := []models.Transaction{
		order("1", at, "0", line("a", "Americano", models.CategoryBeverages, 2)),
		order("2", at, "0", line("a", "Americano", models.CategoryBeverages, 3)),
		order("3", at, "0", line("a", "Americano", models.CategoryBeverages, 1), line("x", "Garlic Rice", models.CategorySideDish, 9)),
		order("4", at, "0", line("b", "Barako", models.CategoryBeverages, 5)),
		order("5", at, "0", line("b", "Barako", models.CategoryBeverages, 5)),
	}

	ranked := reports.CategoryRanking(history, models.CategoryBeverages)
	require.Len(t, ranked, 2)
	assert.Equal(t, reports.RankedItem{MenuItemID: "b", Name: "Barako", Category: models.CategoryBeverages, Count: 10}, ranked[0])
	assert.Equal(t, reports.RankedItem{MenuItemID: "a", Name: "Americano", Category: models.CategoryBeverages, Count: 6}, ranked[1])

	assert.Equal(t, ranked, reports.CategoryRanking(history, models.CategoryBeverages))
	assert.Empty(t, reports.CategoryRanking(history, models.CategoryDesserts))
}

func TestCategoryRanking_TiesByName(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history := []models.Transaction{
		order("1", at, "0", line("z", "Ube Cake", models.CategoryDesserts, 2), line("y", "Leche Flan", models.CategoryDesserts, 2)),
	}
	ranked := reports.CategoryRanking(history, models.CategoryDesserts)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Leche Flan", ranked[0].Name)
	assert.Len(t, reports.TopN(ranked, 1), 1)
	assert.Len(t, reports.TopN(ranked, 5), 2)
}

func TestExponentialSmoothing(t *testing.T) {
	got, err := reports.ExponentialSmoothing(decs("10", "20", "30"), decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	want := decs("10", "10", "15")
	require.Len(t, got, len(want))
	for i := range want {
		assert.Truef(t, want[i].Equal(got[i]), "forecast[%d]: expected %s, got %s", i, want[i], got[i])
	}

	got, err = reports.ExponentialSmoothing(decs("10", "20", "30"), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, got[2].Equal(decimal.NewFromInt(20)))

	empty, err := reports.ExponentialSmoothing(nil, decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, alpha := range []string{"0", "-0.1", "1.01"} {
		_, err := reports.ExponentialSmoothing(decs("1"), decimal.RequireFromString(alpha))
		assert.ErrorIs(t, err, reports.ErrInvalidAlpha)
	}
}

func TestSalesForecast_DailyBucketsInBusinessTimezone(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	// 2026-03-01 17:00 UTC is already 2026-03-02 in Manila
	history := []models.Transaction{
		order("1", time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC), "100"),
		order("2", time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC), "50"),
		order("3", time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC), "50"),
		order("4", time.Date(2026, 3, 4, 2, 0, 0, 0, time.UTC), "70"),
	}
	opts := reports.ForecastOptions{Alpha: decimal.RequireFromString("0.5"), Metric: reports.ForecastMetricCount, Location: manila}

	points, err := reports.SalesForecast(history, opts)
	require.NoError(t, err)
	// 03-01:1, 03-02:2, 03-03:0, 03-04:1, then the next-day forecast
	require.Len(t, points, 5)
	periods := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"}
	actuals := decs("1", "2", "0", "1")
	forecasts := decs("1", "1", "1.5", "0.75", "0.875")
	for i, p := range points {
		assert.Equal(t, periods[i], p.Period)
		require.NotNil(t, p.Forecast)
		assert.Truef(t, forecasts[i].Equal(*p.Forecast), "forecast %s: expected %s, got %s", p.Period, forecasts[i], p.Forecast)
		if i < len(actuals) {
			require.NotNil(t, p.Actual)
			assert.Truef(t, actuals[i].Equal(*p.Actual), "actual %s", p.Period)
		} else {
			assert.Nil(t, p.Actual)
		}
	}

	again, err := reports.SalesForecast(history, opts)
	require.NoError(t, err)
	assert.Equal(t, points, again)

	opts.Metric = reports.ForecastMetricAmount
	amounts, err := reports.SalesForecast(history, opts)
	require.NoError(t, err)
	assert.True(t, amounts[1].Actual.Equal(decimal.NewFromInt(100)))
}

func TestSalesForecast_ShortHistories(t *testing.T) {
	opts := reports.ForecastOptions{Alpha: decimal.RequireFromString("0.5"), Metric: reports.ForecastMetricCount}

	points, err := reports.SalesForecast(nil, opts)
	require.NoError(t, err)
	assert.Empty(t, points)

	points, err = reports.SalesForecast([]models.Transaction{order("1", time.Now(), "10")}, opts)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, points[0].Forecast.Equal(decimal.NewFromInt(1)))
}

func TestRecentNotifications_NewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	var all []models.Notification
	for i := 0; i < 7; i++ {
		all = append(all, models.NewNotification(models.NotificationKindWarning, "n", nil, base.Add(time.Duration(i)*time.Minute)))
	}
	recent := reports.RecentNotifications(all, reports.DashboardNotificationSize)
	require.Len(t, recent, 5)
	assert.True(t, recent[0].Timestamp.Equal(base.Add(6*time.Minute)))
	assert.True(t, recent[4].Timestamp.Equal(base.Add(2*time.Minute)))
}

func TestGetDashboard_FromMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := models.NewMemoryStore()
	at := time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC)
	pending := order("p", at, "137", line("a", "Americano", models.CategoryBeverages, 1))
	pending.OrderNumber = 1
	pending.Status = models.TransactionStatusPending
	done := order("d", at.Add(24*time.Hour), "137", line("a", "Americano", models.CategoryBeverages, 2))
	done.OrderNumber = 2
	require.NoError(t, store.AppendTransaction(ctx, &pending))
	require.NoError(t, store.AppendTransaction(ctx, &done))

	resp, err := reports.GetDashboard(ctx, store, reports.DashboardOptions{
		Category: models.CategoryBeverages,
		Alpha:    decimal.RequireFromString("0.5"),
		Metric:   reports.ForecastMetricCount,
		Location: time.UTC,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CompletedOrders)
	assert.Equal(t, 1, resp.PendingOrders)
	require.Len(t, resp.Ranking, 1)
	assert.Equal(t, 3, resp.Ranking[0].Count)
	assert.Len(t, resp.Forecast, 3)
}

func TestExportSalesWorkbook_HasSheets(t *testing.T) {
	ctx := context.Background()
	store := models.NewMemoryStore()
	txn := order("d", time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC), "137", line("a", "Americano", models.CategoryBeverages, 2))
	txn.OrderNumber = 1
	require.NoError(t, store.AppendTransaction(ctx, &txn))

	data, err := reports.ExportSalesWorkbook(ctx, store, reports.ExportOptions{
		Forecast: reports.ForecastOptions{Alpha: decimal.RequireFromString("0.5"), Metric: reports.ForecastMetricCount, Location: time.UTC},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Ranking", "Forecast", "Usage"}, f.GetSheetList())
	name, err := f.GetCellValue("Ranking", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Americano", name)
}
