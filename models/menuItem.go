package models

import (
	"errors"
	"strings"
	"time"

	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem prices are VAT-exclusive in BasePrice; VatFee and TotalPrice are always derived from it.
type MenuItem struct {
	ID         string          `gorm:"primaryKey;size:36" json:"id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Category   Category        `gorm:"size:32;not null;index" json:"category"`
	BasePrice  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"base_price"`
	VatFee     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"vat_fee"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_price"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewMenuItem struct {
	Name      string `json:"name" validate:"required,max=255"`
	Category  string `json:"category" validate:"required"`
	BasePrice string `json:"base_price" validate:"required"`
}

// SetBasePrice is the only way prices change.
func (m *MenuItem) SetBasePrice(basePrice decimal.Decimal) error {
	if basePrice.IsNegative() {
		return NewValidationError("basePrice", errors.New("must not be negative"))
	}
	m.BasePrice = basePrice
	m.deriveVat()
	return nil
}

func (m *MenuItem) deriveVat() {
	m.VatFee = utils.CalculateVatFee(m.BasePrice)
	m.TotalPrice = m.BasePrice.Add(m.VatFee)
}

func (m *MenuItem) BeforeSave(tx *gorm.DB) error {
	if m.BasePrice.IsNegative() {
		return NewValidationError("basePrice", errors.New("must not be negative"))
	}
	m.deriveVat()
	return nil
}

func (input NewMenuItem) validate() (Category, decimal.Decimal, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return "", decimal.Zero, NewValidationError("menuItem", err)
	}
	category, err := ParseCategory(input.Category)
	if err != nil {
		return "", decimal.Zero, NewValidationError("category", err)
	}
	basePrice, err := utils.ParseNonNegativeMoney(input.BasePrice)
	if err != nil {
		return "", decimal.Zero, NewValidationError("basePrice", errors.New("only numbers allowed"))
	}
	return category, basePrice, nil
}

// ToMenuItem builds a new menu item with a fresh id.
func (input NewMenuItem) ToMenuItem() (*MenuItem, error) {
	category, basePrice, err := input.validate()
	if err != nil {
		return nil, err
	}
	item := &MenuItem{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(input.Name),
		Category: category,
	}
	if err := item.SetBasePrice(basePrice); err != nil {
		return nil, err
	}
	return item, nil
}

// ApplyTo edits an existing menu item in place.
func (input NewMenuItem) ApplyTo(item *MenuItem) error {
	category, basePrice, err := input.validate()
	if err != nil {
		return err
	}
	item.Name = strings.TrimSpace(input.Name)
	item.Category = category
	return item.SetBasePrice(basePrice)
}
