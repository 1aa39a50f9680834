package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const orderCounterName = "order_number"

// OrderCounter is the row the MySQL order sequence increments under a row lock.
type OrderCounter struct {
	Name  string `gorm:"primaryKey;size:50"`
	Value int64  `gorm:"not null"`
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}

func notFound(err error, what string, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", what, id, err)
}

func (s *GormStore) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	var items []MenuItem
	if err := s.db.WithContext(ctx).Order("category, name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	var item MenuItem
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFound(err, "menu item", id)
	}
	return &item, nil
}

func (s *GormStore) SaveMenuItem(ctx context.Context, item *MenuItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *GormStore) DeleteMenuItem(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&MenuItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("menu item %s: %w", id, ErrNotFound)
		}
		return tx.Where("menu_item_id = ?", id).Delete(&RecipeIngredient{}).Error
	})
}

func (s *GormStore) transactions(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("line_no")
	})
}

func (s *GormStore) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var txns []Transaction
	if err := s.transactions(ctx).Order("order_number").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *GormStore) ListTransactionsByStatus(ctx context.Context, status TransactionStatus) ([]Transaction, error) {
	var txns []Transaction
	if err := s.transactions(ctx).Where("status = ?", status).Order("order_number").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *GormStore) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	var txn Transaction
	if err := s.transactions(ctx).Where("id = ?", id).First(&txn).Error; err != nil {
		return nil, notFound(err, "transaction", id)
	}
	return &txn, nil
}

// AppendTransaction writes the header and its lines in one database transaction.
func (s *GormStore) AppendTransaction(ctx context.Context, txn *Transaction) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(txn).Error
	})
	if isDuplicateKeyErr(err) {
		return fmt.Errorf("order %d: %w", txn.OrderNumber, ErrDuplicateOrderNumber)
	}
	return err
}

func (s *GormStore) UpdateTransactionStatus(ctx context.Context, id string, completedAt time.Time) (*Transaction, error) {
	res := s.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ? AND status = ?", id, TransactionStatusPending).
		Updates(map[string]interface{}{"status": TransactionStatusCompleted, "completed_at": completedAt})
	if res.Error != nil {
		return nil, res.Error
	}
	txn, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrAlreadyCompleted)
	}
	return txn, nil
}

func (s *GormStore) MaxOrderNumber(ctx context.Context) (int64, error) {
	var max *int64
	if err := s.db.WithContext(ctx).Model(&Transaction{}).Select("max(order_number)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// NextOrderNumber increments the counter row under SELECT ... FOR UPDATE,
// seeding it from the highest persisted order number on first use.
func (s *GormStore) NextOrderNumber(ctx context.Context) (int64, error) {
	var next int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter OrderCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", orderCounterName).First(&counter).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var max *int64
			if err := tx.Model(&Transaction{}).Select("max(order_number)").Scan(&max).Error; err != nil {
				return err
			}
			counter = OrderCounter{Name: orderCounterName}
			if max != nil {
				counter.Value = *max
			}
			counter.Value++
			next = counter.Value
			return tx.Create(&counter).Error
		}
		if err != nil {
			return err
		}
		counter.Value++
		next = counter.Value
		return tx.Model(&OrderCounter{}).Where("name = ?", orderCounterName).Update("value", counter.Value).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (s *GormStore) ListInventory(ctx context.Context) ([]InventoryItem, error) {
	var items []InventoryItem
	if err := s.db.WithContext(ctx).Order("name, id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) ListInventoryByIDs(ctx context.Context, ids []string) ([]InventoryItem, error) {
	var items []InventoryItem
	if len(ids) == 0 {
		return items, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) GetInventoryItem(ctx context.Context, id string) (*InventoryItem, error) {
	var item InventoryItem
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFound(err, "inventory item", id)
	}
	return &item, nil
}

func (s *GormStore) CreateInventoryItem(ctx context.Context, item *InventoryItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// UpdateInventoryItem holds the row lock from read to write, so a concurrent
// AdjustOpenStock waits instead of being overwritten.
func (s *GormStore) UpdateInventoryItem(ctx context.Context, id string, mutate func(item *InventoryItem) error) (*InventoryItem, error) {
	var item InventoryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&item).Error; err != nil {
			return notFound(err, "inventory item", id)
		}
		if err := mutate(&item); err != nil {
			return err
		}
		item.ID = id
		return tx.Model(&item).Select("*").Omit("created_at").Updates(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AdjustOpenStock applies delta as a single UPDATE so concurrent writers never lose an update.
func (s *GormStore) AdjustOpenStock(ctx context.Context, id string, delta decimal.Decimal) (*InventoryItem, error) {
	res := s.db.WithContext(ctx).Model(&InventoryItem{}).Where("id = ?", id).
		Update("open_stock", gorm.Expr("open_stock + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("inventory item %s: %w", id, ErrNotFound)
	}
	return s.GetInventoryItem(ctx, id)
}

func (s *GormStore) GetRecipe(ctx context.Context, menuItemID string) (Recipe, bool, error) {
	var rows []RecipeIngredient
	if err := s.db.WithContext(ctx).Where("menu_item_id = ?", menuItemID).Order("position").Find(&rows).Error; err != nil {
		return Recipe{}, false, err
	}
	if len(rows) == 0 {
		return Recipe{}, false, nil
	}
	return Recipe{MenuItemID: menuItemID, Ingredients: rows}, true, nil
}

func (s *GormStore) SetRecipe(ctx context.Context, recipe Recipe) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", recipe.MenuItemID).Delete(&RecipeIngredient{}).Error; err != nil {
			return err
		}
		if recipe.IsEmpty() {
			return nil
		}
		rows := make([]RecipeIngredient, len(recipe.Ingredients))
		for i, in := range recipe.Ingredients {
			in.ID = 0
			in.MenuItemID = recipe.MenuItemID
			in.Position = i
			rows[i] = in
		}
		return tx.Create(&rows).Error
	})
}

func (s *GormStore) ListRecipes(ctx context.Context) ([]Recipe, error) {
	var rows []RecipeIngredient
	if err := s.db.WithContext(ctx).Order("menu_item_id, position").Find(&rows).Error; err != nil {
		return nil, err
	}
	var recipes []Recipe
	for _, row := range rows {
		if n := len(recipes); n == 0 || recipes[n-1].MenuItemID != row.MenuItemID {
			recipes = append(recipes, Recipe{MenuItemID: row.MenuItemID})
		}
		last := &recipes[len(recipes)-1]
		last.Ingredients = append(last.Ingredients, row)
	}
	return recipes, nil
}

func (s *GormStore) AppendUsageLog(ctx context.Context, entry UsageLog) error {
	return s.db.WithContext(ctx).Create(&entry).Error
}

func (s *GormStore) ListUsageLogs(ctx context.Context) ([]UsageLog, error) {
	var logs []UsageLog
	if err := s.db.WithContext(ctx).Order("timestamp, id").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *GormStore) AppendNotification(ctx context.Context, n Notification) error {
	return s.db.WithContext(ctx).Create(&n).Error
}

func (s *GormStore) ListNotifications(ctx context.Context) ([]Notification, error) {
	var ns []Notification
	if err := s.db.WithContext(ctx).Order("timestamp, id").Find(&ns).Error; err != nil {
		return nil, err
	}
	return ns, nil
}

func (s *GormStore) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	var suppliers []Supplier
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (s *GormStore) SaveSupplier(ctx context.Context, sup *Supplier) error {
	return s.db.WithContext(ctx).Save(sup).Error
}

func (s *GormStore) GetBusinessProfile(ctx context.Context) (BusinessProfile, error) {
	var p BusinessProfile
	err := s.db.WithContext(ctx).Where("id = ?", BusinessProfileID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultBusinessProfile(), nil
	}
	if err != nil {
		return BusinessProfile{}, err
	}
	return p, nil
}

func (s *GormStore) SaveBusinessProfile(ctx context.Context, p *BusinessProfile) error {
	p.ID = BusinessProfileID
	return s.db.WithContext(ctx).Save(p).Error
}
