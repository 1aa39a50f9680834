// sales-export writes the ranking, forecast and ingredient usage workbook
// to a local file.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_NAME=... go run ./cmd/sales-export --out report.xlsx --metric amount
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/models/reports"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	out := flag.String("out", "sales-report.xlsx", "Output file")
	metric := flag.String("metric", "count", "Forecast metric: count or amount")
	alpha := flag.String("alpha", "", "Smoothing factor in (0,1]; defaults to FORECAST_ALPHA")
	flag.Parse()

	if !config.DatabaseConfigured() {
		fmt.Fprintln(os.Stderr, "database not configured. Set DB_* env vars.")
		os.Exit(1)
	}
	m, err := reports.ParseForecastMetric(*metric)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	a := config.ForecastAlpha()
	if *alpha != "" {
		a, err = decimal.NewFromString(*alpha)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --alpha: %v\n", err)
			os.Exit(1)
		}
	}

	if err := config.ConnectDatabaseWithRetry(5); err != nil {
		fmt.Fprintf(os.Stderr, "connect database: %v\n", err)
		os.Exit(1)
	}
	store := models.NewGormStore(config.GetDB())

	data, err := reports.ExportSalesWorkbook(context.Background(), store, reports.ExportOptions{
		Forecast: reports.ForecastOptions{Alpha: a, Metric: m, Location: config.BusinessLocation()},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	config.GetLogger().WithFields(logrus.Fields{"file": *out, "bytes": len(data)}).Info("sales workbook written")
}
