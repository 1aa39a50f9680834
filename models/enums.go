package models

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryBeverages  Category = "Beverages"
	CategoryMainDishes Category = "Main Dishes"
	CategorySideDish   Category = "Side Dish"
	CategoryDesserts   Category = "Desserts"
)

var Categories = []Category{CategoryBeverages, CategoryMainDishes, CategorySideDish, CategoryDesserts}

func (c Category) IsValid() bool {
	switch c {
	case CategoryBeverages, CategoryMainDishes, CategorySideDish, CategoryDesserts:
		return true
	}
	return false
}

// ParseCategory accepts the display names plus the "Main Dish" spelling the dashboard uses.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beverages", "beverage":
		return CategoryBeverages, nil
	case "main dishes", "main dish", "maindishes":
		return CategoryMainDishes, nil
	case "side dish", "side dishes", "sidedish":
		return CategorySideDish, nil
	case "desserts", "dessert":
		return CategoryDesserts, nil
	}
	return "", fmt.Errorf("invalid category %q", s)
}

type OrderType string

const (
	OrderTypeDineIn  OrderType = "Dine In"
	OrderTypeTakeout OrderType = "Takeout"
)

func (t OrderType) IsValid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeout
}

func ParseOrderType(s string) (OrderType, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", " ")) {
	case "dine in", "dinein", "dine-in":
		return OrderTypeDineIn, nil
	case "takeout", "take out", "take-out":
		return OrderTypeTakeout, nil
	}
	return "", fmt.Errorf("invalid order type %q", s)
}

type DiscountType string

const (
	DiscountTypeNone   DiscountType = "None"
	DiscountTypePWD    DiscountType = "PWD"
	DiscountTypeSenior DiscountType = "Senior"
)

func (t DiscountType) IsValid() bool {
	return t == DiscountTypeNone || t == DiscountTypePWD || t == DiscountTypeSenior
}

// HasDiscount is true for the PWD and Senior categories.
func (t DiscountType) HasDiscount() bool {
	return t == DiscountTypePWD || t == DiscountTypeSenior
}

func ParseDiscountType(s string) (DiscountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return DiscountTypeNone, nil
	case "pwd":
		return DiscountTypePWD, nil
	case "senior":
		return DiscountTypeSenior, nil
	}
	return "", fmt.Errorf("invalid discount type %q", s)
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "Pending"
	TransactionStatusCompleted TransactionStatus = "Completed"
)

type InventoryType string

const (
	InventoryTypePerishable    InventoryType = "Perishable"
	InventoryTypeNonPerishable InventoryType = "Non-Perishable"
	InventoryTypeSupplies      InventoryType = "Supplies"
	InventoryTypeNotFood       InventoryType = "Not Food"
)

func (t InventoryType) IsValid() bool {
	switch t {
	case InventoryTypePerishable, InventoryTypeNonPerishable, InventoryTypeSupplies, InventoryTypeNotFood:
		return true
	}
	return false
}

// MeasurementUnit is the unit open stock and recipe quantities are expressed in.
type MeasurementUnit string

const (
	MeasurementUnitGram       MeasurementUnit = "g"
	MeasurementUnitMilliliter MeasurementUnit = "ml"
	MeasurementUnitPiece      MeasurementUnit = "pcs"
)

func (u MeasurementUnit) IsValid() bool {
	return u == MeasurementUnitGram || u == MeasurementUnitMilliliter || u == MeasurementUnitPiece
}

// Dimension is mass, volume or count.
func (u MeasurementUnit) Dimension() string {
	switch u {
	case MeasurementUnitGram:
		return "mass"
	case MeasurementUnitMilliliter:
		return "volume"
	case MeasurementUnitPiece:
		return "count"
	}
	return ""
}

type NotificationKind string

const (
	NotificationKindWarning NotificationKind = "warning"
	NotificationKindInfo    NotificationKind = "info"
)
