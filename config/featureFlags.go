package config

import (
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

const (
	ShortfallPolicyAllowNegative = "allow_negative"
	ShortfallPolicyClamp         = "clamp"
)

// InventoryShortfallPolicy decides what happens when a deduction exceeds open stock.
//
// Set via env:
// - INVENTORY_SHORTFALL_POLICY=allow_negative (default) | clamp
func InventoryShortfallPolicy() string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("INVENTORY_SHORTFALL_POLICY")))
	if v == ShortfallPolicyClamp {
		return ShortfallPolicyClamp
	}
	return ShortfallPolicyAllowNegative
}

// ForecastAlpha is the smoothing factor used by the dashboard forecast.
// Values outside (0,1] fall back to 0.5.
func ForecastAlpha() decimal.Decimal {
	def := decimal.NewFromFloat(0.5)
	v := strings.TrimSpace(os.Getenv("FORECAST_ALPHA"))
	if v == "" {
		return def
	}
	alpha, err := decimal.NewFromString(v)
	if err != nil || !alpha.IsPositive() || alpha.GreaterThan(decimal.NewFromInt(1)) {
		return def
	}
	return alpha
}

// BusinessLocation is used to cut daily sales buckets.
func BusinessLocation() *time.Location {
	name := strings.TrimSpace(os.Getenv("BUSINESS_TIMEZONE"))
	if name == "" {
		name = "Asia/Manila"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

func ReportCacheEnabled() bool {
	return envBool("ENABLE_REPORT_CACHE")
}

// PricingClampNonNegative floors the discounted amount at zero (PRICING_CLAMP_NON_NEGATIVE).
// Off by default: a discounted total may come out below the service fee.
func PricingClampNonNegative() bool {
	return envBool("PRICING_CLAMP_NON_NEGATIVE")
}

// ReportCacheTTL reads REPORT_CACHE_TTL_SECONDS (default 60s).
func ReportCacheTTL() time.Duration {
	return time.Duration(IntFromEnv("REPORT_CACHE_TTL_SECONDS", 60)) * time.Second
}

func IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production")
}
