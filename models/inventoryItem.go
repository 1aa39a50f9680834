package models

import (
	"errors"
	"strings"
	"time"

	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultLowStockThreshold = 5

var DefaultMeasurementQtyPerPack = decimal.NewFromInt(1000)

// InventoryItem tracks sealed packs and opened kitchen stock separately.
// OpenStock is expressed in MeasurementUnit.
type InventoryItem struct {
	ID                    string          `gorm:"primaryKey;size:36" json:"id"`
	Name                  string          `gorm:"size:255;not null" json:"name"`
	Type                  InventoryType   `gorm:"size:32;not null" json:"type"`
	PackStock             int             `gorm:"not null;default:0" json:"pack_stock"`
	OpenStock             decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"open_stock"`
	MeasurementUnit       MeasurementUnit `gorm:"size:8;not null" json:"measurement_unit"`
	MeasurementQtyPerPack decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"measurement_qty_per_pack"`
	UnitCost              decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"unit_cost"`
	LowStockThreshold     int             `gorm:"not null;default:5" json:"low_stock_threshold"`
	SupplierID            *string         `gorm:"size:36" json:"supplier_id"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInventoryItem struct {
	Name                  string  `json:"name" validate:"required,max=255"`
	Type                  string  `json:"type"`
	PackStock             int     `json:"pack_stock" validate:"gte=0"`
	UnitCost              string  `json:"unit_cost" validate:"required"`
	MeasurementUnit       string  `json:"measurement_unit"`
	MeasurementQtyPerPack string  `json:"measurement_qty_per_pack"`
	LowStockThreshold     *int    `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	SupplierID            *string `json:"supplier_id"`
}

// InventoryItemUpdate carries the fields a manager edit may change; nil means unchanged.
type InventoryItemUpdate struct {
	Name                  *string `json:"name" validate:"omitempty,max=255"`
	Type                  *string `json:"type"`
	PackStock             *int    `json:"pack_stock" validate:"omitempty,gte=0"`
	OpenStock             *string `json:"open_stock"`
	UnitCost              *string `json:"unit_cost"`
	MeasurementUnit       *string `json:"measurement_unit"`
	MeasurementQtyPerPack *string `json:"measurement_qty_per_pack"`
	LowStockThreshold     *int    `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	SupplierID            *string `json:"supplier_id"`
}

func (item InventoryItem) IsLowStock() bool {
	return item.PackStock <= item.LowStockThreshold
}

// OpenPacks moves n sealed packs into kitchen stock.
func (item *InventoryItem) OpenPacks(n int) error {
	if n < 1 {
		return NewValidationError("packs", errors.New("must be at least 1"))
	}
	if n > item.PackStock {
		return NewValidationError("packs", ErrInsufficientPackStock)
	}
	item.PackStock -= n
	item.OpenStock = item.OpenStock.Add(item.MeasurementQtyPerPack.Mul(decimal.NewFromInt(int64(n))))
	return nil
}

// DefaultServingQuantity is the quantity a new recipe ingredient starts with.
func (item InventoryItem) DefaultServingQuantity() decimal.Decimal {
	if item.MeasurementUnit == MeasurementUnitPiece {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(10)
}

// UsableInRecipes excludes non-food stock such as cups and napkins.
func (item InventoryItem) UsableInRecipes() bool {
	return item.Type != InventoryTypeNotFood
}

func parseInventoryType(s string) (InventoryType, error) {
	if strings.TrimSpace(s) == "" {
		return InventoryTypePerishable, nil
	}
	t := InventoryType(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", NewValidationError("type", errors.New("invalid inventory type"))
	}
	return t, nil
}

func parseMeasurementUnit(s string) (MeasurementUnit, error) {
	if strings.TrimSpace(s) == "" {
		return MeasurementUnitGram, nil
	}
	u := MeasurementUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.IsValid() {
		return "", NewValidationError("measurementUnit", errors.New("must be g, ml or pcs"))
	}
	return u, nil
}

func parseQtyPerPack(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultMeasurementQtyPerPack, nil
	}
	qty, err := utils.ParseMoney(s)
	if err != nil || !qty.IsPositive() {
		return decimal.Zero, NewValidationError("measurementQtyPerPack", errors.New("must be a positive number"))
	}
	return qty, nil
}

func (input NewInventoryItem) ToInventoryItem() (*InventoryItem, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, NewValidationError("inventoryItem", err)
	}
	itemType, err := parseInventoryType(input.Type)
	if err != nil {
		return nil, err
	}
	unit, err := parseMeasurementUnit(input.MeasurementUnit)
	if err != nil {
		return nil, err
	}
	qtyPerPack, err := parseQtyPerPack(input.MeasurementQtyPerPack)
	if err != nil {
		return nil, err
	}
	cost, err := utils.ParseNonNegativeMoney(input.UnitCost)
	if err != nil {
		return nil, NewValidationError("unitCost", err)
	}
	threshold := utils.DereferencePtr(input.LowStockThreshold, DefaultLowStockThreshold)
	return &InventoryItem{
		ID:                    uuid.NewString(),
		Name:                  strings.TrimSpace(input.Name),
		Type:                  itemType,
		PackStock:             input.PackStock,
		OpenStock:             decimal.Zero,
		MeasurementUnit:       unit,
		MeasurementQtyPerPack: qtyPerPack,
		UnitCost:              cost,
		LowStockThreshold:     threshold,
		SupplierID:            input.SupplierID,
	}, nil
}

// ApplyTo validates every provided field before touching item.
func (input InventoryItemUpdate) ApplyTo(item *InventoryItem) error {
	if err := utils.ValidateStruct(input); err != nil {
		return NewValidationError("inventoryItem", err)
	}
	next := *item
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return NewValidationError("name", errors.New("required"))
		}
		next.Name = name
	}
	if input.Type != nil {
		t, err := parseInventoryType(*input.Type)
		if err != nil {
			return err
		}
		next.Type = t
	}
	if input.PackStock != nil {
		next.PackStock = *input.PackStock
	}
	if input.OpenStock != nil {
		open, err := utils.ParseNonNegativeMoney(*input.OpenStock)
		if err != nil {
			return NewValidationError("openStock", err)
		}
		next.OpenStock = open
	}
	if input.UnitCost != nil {
		cost, err := utils.ParseNonNegativeMoney(*input.UnitCost)
		if err != nil {
			return NewValidationError("unitCost", err)
		}
		next.UnitCost = cost
	}
	if input.MeasurementUnit != nil {
		u, err := parseMeasurementUnit(*input.MeasurementUnit)
		if err != nil {
			return err
		}
		next.MeasurementUnit = u
	}
	if input.MeasurementQtyPerPack != nil {
		q, err := parseQtyPerPack(*input.MeasurementQtyPerPack)
		if err != nil {
			return err
		}
		next.MeasurementQtyPerPack = q
	}
	if input.LowStockThreshold != nil {
		next.LowStockThreshold = *input.LowStockThreshold
	}
	if input.SupplierID != nil {
		if *input.SupplierID == "" {
			next.SupplierID = nil
		} else {
			id := *input.SupplierID
			next.SupplierID = &id
		}
	}
	*item = next
	return nil
}
