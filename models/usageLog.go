package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UsageLog is append-only: one row per ingredient consumed per committed order line.
type UsageLog struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	InventoryItemID string          `gorm:"size:36;index;not null" json:"inventory_item_id"`
	ItemName        string          `gorm:"size:255;not null" json:"item_name"`
	MeasurementUnit MeasurementUnit `gorm:"size:8;not null" json:"measurement_unit"`
	QuantityUsed    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity_used"`
	TransactionID   string          `gorm:"size:36;index" json:"transaction_id"`
	OrderNumber     int64           `gorm:"index" json:"order_number"`
	MenuItemID      string          `gorm:"size:36" json:"menu_item_id"`
	Timestamp       time.Time       `gorm:"not null;index" json:"timestamp"`
}
