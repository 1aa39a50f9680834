package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/xuri/excelize/v2"
)

const (
	rankingSheet  = "Ranking"
	forecastSheet = "Forecast"
	usageSheet    = "Usage"
)

type ExportOptions struct {
	Forecast ForecastOptions
}

func writeRow(f *excelize.File, sheet string, rowNo int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// ExportSalesWorkbook writes category rankings, the daily forecast and the
// usage log into one xlsx workbook.
func ExportSalesWorkbook(ctx context.Context, store models.Store, opts ExportOptions) ([]byte, error) {
	history, err := store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	usage, err := store.ListUsageLogs(ctx)
	if err != nil {
		return nil, err
	}
	forecast, err := SalesForecast(history, opts.Forecast)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return nil, err
	}
	if err := writeRow(f, rankingSheet, 1, "Category", "Rank", "Menu Item", "Quantity Sold"); err != nil {
		return nil, err
	}
	row := 2
	for _, category := range models.Categories {
		for i, r := range CategoryRanking(history, category) {
			if err := writeRow(f, rankingSheet, row, string(category), i+1, r.Name, r.Count); err != nil {
				return nil, err
			}
			row++
		}
	}

	if _, err := f.NewSheet(forecastSheet); err != nil {
		return nil, err
	}
	if err := writeRow(f, forecastSheet, 1, "Date", "Actual", "Forecast"); err != nil {
		return nil, err
	}
	for i, p := range forecast {
		actual := ""
		if p.Actual != nil {
			actual = utils.FormatMoney(*p.Actual)
		}
		if err := writeRow(f, forecastSheet, i+2, p.Period, actual, utils.FormatMoney(*p.Forecast)); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(usageSheet); err != nil {
		return nil, err
	}
	if err := writeRow(f, usageSheet, 1, "Timestamp", "Order #", "Item", "Quantity Used", "Unit"); err != nil {
		return nil, err
	}
	loc := opts.Forecast.Location
	if loc == nil {
		loc = time.UTC
	}
	for i, u := range usage {
		if err := writeRow(f, usageSheet, i+2,
			u.Timestamp.In(loc).Format("2006-01-02 15:04:05"),
			u.OrderNumber,
			u.ItemName,
			u.QuantityUsed.String(),
			string(u.MeasurementUnit),
		); err != nil {
			return nil, err
		}
	}

	for _, sheet := range []string{rankingSheet, forecastSheet, usageSheet} {
		if err := f.SetColWidth(sheet, "A", "E", 18); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write sales workbook: %w", err)
	}
	return buf.Bytes(), nil
}
