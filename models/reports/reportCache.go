package reports

import (
	"context"
	"time"

	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/sirupsen/logrus"
)

const reportSlowThreshold = 500 * time.Millisecond

func cacheUsable() bool {
	return config.ReportCacheEnabled() && config.RedisConfigured()
}

func dashboardCacheKey(category models.Category) string {
	return "report:dashboard:" + string(category)
}

func cacheGet[T any](ctx context.Context, key string, dest *T) bool {
	if !cacheUsable() {
		return false
	}
	found, err := config.GetRedisObject(ctx, key, dest)
	if err != nil {
		config.LogError(config.GetLogger(), "reports", "cacheGet", key, nil, err)
		return false
	}
	return found
}

func cacheSet(ctx context.Context, key string, obj any) {
	if !cacheUsable() {
		return
	}
	if err := config.SetRedisObject(ctx, key, obj, config.ReportCacheTTL()); err != nil {
		config.LogError(config.GetLogger(), "reports", "cacheSet", key, nil, err)
	}
}

// InvalidateDashboardCache drops cached dashboards for every category.
func InvalidateDashboardCache(ctx context.Context) {
	if !cacheUsable() {
		return
	}
	keys := make([]string, 0, len(models.Categories)*2)
	for _, c := range models.Categories {
		for _, m := range []ForecastMetric{ForecastMetricCount, ForecastMetricAmount} {
			keys = append(keys, dashboardCacheKey(c)+":"+string(m))
		}
	}
	if err := config.RemoveRedisKey(ctx, keys...); err != nil {
		config.LogError(config.GetLogger(), "reports", "InvalidateDashboardCache", "", keys, err)
	}
}

func logSlowReport(ctx context.Context, name string, started time.Time, extra map[string]any) {
	d := time.Since(started)
	if d < reportSlowThreshold {
		return
	}
	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	config.GetLogger().WithFields(logrus.Fields{
		"report":         name,
		"ms":             d.Milliseconds(),
		"correlation_id": cid,
		"extra":          extra,
	}).Warn("slow_report")
}
