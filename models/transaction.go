package models

import (
	"time"

	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/shopspring/decimal"
)

// Transaction is a committed order. Lines are frozen snapshots; only Status/CompletedAt change after commit.
type Transaction struct {
	ID             string            `gorm:"primaryKey;size:36" json:"id"`
	OrderNumber    int64             `gorm:"uniqueIndex;not null" json:"order_number"`
	Lines          []TransactionLine `gorm:"foreignKey:TransactionID;constraint:OnDelete:RESTRICT" json:"items"`
	OrderType      OrderType         `gorm:"size:16;not null" json:"type"`
	DiscountType   DiscountType      `gorm:"size:16;not null" json:"discount_type"`
	BaseAmount     decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"base_amount"`
	DiscountAmount decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"discount_amount"`
	VatPortion     decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"vat_portion"`
	ServiceFee     decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"service_fee"`
	TotalAmount    decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"total_amount"`
	CashProvided   decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"cash_provided"`
	Change         decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"change"`
	TimeOrdered    time.Time         `gorm:"not null;index" json:"time_ordered"`
	Status         TransactionStatus `gorm:"size:16;not null;index" json:"status"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
}

type TransactionLine struct {
	ID            uint             `gorm:"primaryKey" json:"-"`
	TransactionID string           `gorm:"size:36;index;not null" json:"-"`
	LineNo        int              `gorm:"not null" json:"line_no"`
	MenuItem      MenuItemSnapshot `gorm:"embedded;embeddedPrefix:menu_item_" json:"menu_item"`
	Quantity      int              `gorm:"not null" json:"quantity"`
}

// MenuItemSnapshot freezes the menu item as it was priced at commit time.
type MenuItemSnapshot struct {
	ID         string          `gorm:"size:36;index" json:"id"`
	Name       string          `gorm:"size:255" json:"name"`
	Category   Category        `gorm:"size:32;index" json:"category"`
	BasePrice  decimal.Decimal `gorm:"type:decimal(20,4)" json:"base_price"`
	VatFee     decimal.Decimal `gorm:"type:decimal(20,4)" json:"vat_fee"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(20,4)" json:"total_price"`
}

func SnapshotMenuItem(m MenuItem) MenuItemSnapshot {
	return MenuItemSnapshot{
		ID:         m.ID,
		Name:       m.Name,
		Category:   m.Category,
		BasePrice:  m.BasePrice,
		VatFee:     m.VatFee,
		TotalPrice: m.TotalPrice,
	}
}

func (l TransactionLine) LineTotal() decimal.Decimal {
	return utils.LineAmount(l.MenuItem.TotalPrice, l.Quantity)
}

func (t Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// ItemCount is the number of units across all lines.
func (t Transaction) ItemCount() int {
	n := 0
	for _, l := range t.Lines {
		n += l.Quantity
	}
	return n
}

// clone deep-copies the line slice so callers cannot mutate stored snapshots.
func (t Transaction) clone() Transaction {
	c := t
	if t.Lines != nil {
		c.Lines = append([]TransactionLine(nil), t.Lines...)
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return c
}
