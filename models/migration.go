package models

import (
	"gorm.io/gorm"
)

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&MenuItem{},
		&Transaction{}, &TransactionLine{}, &OrderCounter{},
		&InventoryItem{}, &RecipeIngredient{},
		&UsageLog{}, &Notification{},
		&Supplier{}, &BusinessProfile{},
	)
}
