package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// RecipeIngredient is one row of a dish's bill of materials, in the inventory item's unit.
type RecipeIngredient struct {
	ID                 uint            `gorm:"primaryKey" json:"-"`
	MenuItemID         string          `gorm:"size:36;index;not null" json:"-"`
	Position           int             `gorm:"not null" json:"-"`
	InventoryItemID    string          `gorm:"size:36;index;not null" json:"inventory_item_id"`
	QuantityPerServing decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity_per_serving"`
}

type Recipe struct {
	MenuItemID  string             `json:"menu_item_id"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}

type NewRecipeIngredient struct {
	InventoryItemID    string          `json:"inventory_item_id" validate:"required"`
	QuantityPerServing decimal.Decimal `json:"quantity_per_serving"`
}

// ValidateIngredients checks quantities and duplicates; existence of the
// inventory items is checked by the caller against the store.
func ValidateIngredients(ingredients []NewRecipeIngredient) error {
	seen := make(map[string]bool, len(ingredients))
	for i, in := range ingredients {
		field := fmt.Sprintf("ingredients[%d]", i)
		if in.InventoryItemID == "" {
			return NewValidationError(field, errors.New("inventory item is required"))
		}
		if !in.QuantityPerServing.IsPositive() {
			return NewValidationError(field, errors.New("quantity per serving must be greater than zero"))
		}
		if seen[in.InventoryItemID] {
			return NewValidationError(field, fmt.Errorf("duplicate ingredient %s", in.InventoryItemID))
		}
		seen[in.InventoryItemID] = true
	}
	return nil
}

func BuildRecipe(menuItemID string, ingredients []NewRecipeIngredient) Recipe {
	r := Recipe{MenuItemID: menuItemID, Ingredients: make([]RecipeIngredient, 0, len(ingredients))}
	for i, in := range ingredients {
		r.Ingredients = append(r.Ingredients, RecipeIngredient{
			MenuItemID:         menuItemID,
			Position:           i,
			InventoryItemID:    in.InventoryItemID,
			QuantityPerServing: in.QuantityPerServing,
		})
	}
	return r
}

func (r Recipe) IsEmpty() bool {
	return len(r.Ingredients) == 0
}
