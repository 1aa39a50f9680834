package reports

import (
	"context"
	"sort"
	"time"

	"github.com/goodlandcafe/pos_backend/models"
	"github.com/shopspring/decimal"
)

const (
	DashboardRankingSize      = 5
	DashboardNotificationSize = 5
)

type DashboardResponse struct {
	CompletedOrders     int                   `json:"completed_orders"`
	PendingOrders       int                   `json:"pending_orders"`
	RecentNotifications []models.Notification `json:"recent_notifications"`
	Category            models.Category       `json:"category"`
	Ranking             []RankedItem          `json:"ranking"`
	Forecast            []ForecastPoint       `json:"forecast"`
	GeneratedAt         time.Time             `json:"generated_at"`
}

type DashboardOptions struct {
	Category models.Category
	Alpha    decimal.Decimal
	Metric   ForecastMetric
	Location *time.Location
}

// GetDashboard assembles the manager dashboard from the full history.
func GetDashboard(ctx context.Context, store models.Store, opts DashboardOptions) (*DashboardResponse, error) {
	cacheKey := dashboardCacheKey(opts.Category) + ":" + string(opts.Metric)
	var cached DashboardResponse
	if cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	started := time.Now()
	history, err := store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	notifications, err := store.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}

	resp := DashboardResponse{
		Category:    opts.Category,
		GeneratedAt: started,
	}
	for _, t := range history {
		if t.IsCompleted() {
			resp.CompletedOrders++
		} else {
			resp.PendingOrders++
		}
	}
	resp.RecentNotifications = RecentNotifications(notifications, DashboardNotificationSize)
	resp.Ranking = TopN(CategoryRanking(history, opts.Category), DashboardRankingSize)
	resp.Forecast, err = SalesForecast(history, ForecastOptions{
		Alpha:    opts.Alpha,
		Metric:   opts.Metric,
		Location: opts.Location,
	})
	if err != nil {
		return nil, err
	}

	logSlowReport(ctx, "dashboard", started, map[string]any{"transactions": len(history)})
	cacheSet(ctx, cacheKey, resp)
	return &resp, nil
}

// RecentNotifications returns the newest n notifications, newest first.
func RecentNotifications(all []models.Notification, n int) []models.Notification {
	sorted := append([]models.Notification(nil), all...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
