package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Store is the persistence collaborator. Every call is atomic on its own.
type Store interface {
	ListMenuItems(ctx context.Context) ([]MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*MenuItem, error)
	SaveMenuItem(ctx context.Context, item *MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error

	ListTransactions(ctx context.Context) ([]Transaction, error)
	ListTransactionsByStatus(ctx context.Context, status TransactionStatus) ([]Transaction, error)
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	AppendTransaction(ctx context.Context, txn *Transaction) error
	// UpdateTransactionStatus moves a Pending transaction to Completed.
	UpdateTransactionStatus(ctx context.Context, id string, completedAt time.Time) (*Transaction, error)
	MaxOrderNumber(ctx context.Context) (int64, error)
	NextOrderNumber(ctx context.Context) (int64, error)

	ListInventory(ctx context.Context) ([]InventoryItem, error)
	ListInventoryByIDs(ctx context.Context, ids []string) ([]InventoryItem, error)
	GetInventoryItem(ctx context.Context, id string) (*InventoryItem, error)
	CreateInventoryItem(ctx context.Context, item *InventoryItem) error
	// UpdateInventoryItem reads the row, applies mutate and writes it back as one
	// atomic step with respect to AdjustOpenStock.
	UpdateInventoryItem(ctx context.Context, id string, mutate func(item *InventoryItem) error) (*InventoryItem, error)
	AdjustOpenStock(ctx context.Context, id string, delta decimal.Decimal) (*InventoryItem, error)

	GetRecipe(ctx context.Context, menuItemID string) (Recipe, bool, error)
	SetRecipe(ctx context.Context, recipe Recipe) error
	ListRecipes(ctx context.Context) ([]Recipe, error)

	AppendUsageLog(ctx context.Context, entry UsageLog) error
	ListUsageLogs(ctx context.Context) ([]UsageLog, error)

	AppendNotification(ctx context.Context, n Notification) error
	ListNotifications(ctx context.Context) ([]Notification, error)

	ListSuppliers(ctx context.Context) ([]Supplier, error)
	SaveSupplier(ctx context.Context, s *Supplier) error

	GetBusinessProfile(ctx context.Context) (BusinessProfile, error)
	SaveBusinessProfile(ctx context.Context, p *BusinessProfile) error
}
