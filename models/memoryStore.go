package models

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryStore keeps everything in process. Used when no database is configured and in tests.
type MemoryStore struct {
	mu            sync.RWMutex
	menu          map[string]MenuItem
	transactions  []Transaction
	txnIndex      map[string]int
	orderNumbers  map[int64]bool
	orderCounter  int64
	inventory     map[string]InventoryItem
	recipes       map[string]Recipe
	usageLogs     []UsageLog
	notifications []Notification
	suppliers     []Supplier
	profile       *BusinessProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		menu:         make(map[string]MenuItem),
		txnIndex:     make(map[string]int),
		orderNumbers: make(map[int64]bool),
		inventory:    make(map[string]InventoryItem),
		recipes:      make(map[string]Recipe),
	}
}

func (s *MemoryStore) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]MenuItem, 0, len(s.menu))
	for _, m := range s.menu {
		items = append(items, m)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (s *MemoryStore) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.menu[id]
	if !ok {
		return nil, fmt.Errorf("menu item %s: %w", id, ErrNotFound)
	}
	return &m, nil
}

func (s *MemoryStore) SaveMenuItem(ctx context.Context, item *MenuItem) error {
	item.deriveVat()
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.menu[item.ID]; ok {
		item.CreatedAt = existing.CreatedAt
	} else {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	s.menu[item.ID] = *item
	return nil
}

func (s *MemoryStore) DeleteMenuItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menu[id]; !ok {
		return fmt.Errorf("menu item %s: %w", id, ErrNotFound)
	}
	delete(s.menu, id)
	delete(s.recipes, id)
	return nil
}

func (s *MemoryStore) ListTransactions(ctx context.Context) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, t.clone())
	}
	return out, nil
}

func (s *MemoryStore) ListTransactionsByStatus(ctx context.Context, status TransactionStatus) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Transaction{}
	for _, t := range s.transactions {
		if t.Status == status {
			out = append(out, t.clone())
		}
	}
	return out, nil
}

func (s *MemoryStore) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.txnIndex[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	t := s.transactions[i].clone()
	return &t, nil
}

func (s *MemoryStore) AppendTransaction(ctx context.Context, txn *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txnIndex[txn.ID]; ok {
		return fmt.Errorf("transaction %s already exists", txn.ID)
	}
	if s.orderNumbers[txn.OrderNumber] {
		return fmt.Errorf("order %d: %w", txn.OrderNumber, ErrDuplicateOrderNumber)
	}
	for i := range txn.Lines {
		txn.Lines[i].TransactionID = txn.ID
	}
	s.txnIndex[txn.ID] = len(s.transactions)
	s.orderNumbers[txn.OrderNumber] = true
	s.transactions = append(s.transactions, txn.clone())
	return nil
}

func (s *MemoryStore) UpdateTransactionStatus(ctx context.Context, id string, completedAt time.Time) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.txnIndex[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	t := &s.transactions[i]
	if t.Status == TransactionStatusCompleted {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrAlreadyCompleted)
	}
	t.Status = TransactionStatusCompleted
	t.CompletedAt = &completedAt
	out := t.clone()
	return &out, nil
}

func (s *MemoryStore) MaxOrderNumber(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var max int64
	for n := range s.orderNumbers {
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (s *MemoryStore) NextOrderNumber(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for n := range s.orderNumbers {
		if n > s.orderCounter {
			s.orderCounter = n
		}
	}
	s.orderCounter++
	return s.orderCounter, nil
}

func sortInventory(items []InventoryItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}

func (s *MemoryStore) ListInventory(ctx context.Context) ([]InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]InventoryItem, 0, len(s.inventory))
	for _, it := range s.inventory {
		items = append(items, it)
	}
	sortInventory(items)
	return items, nil
}

func (s *MemoryStore) ListInventoryByIDs(ctx context.Context, ids []string) ([]InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]InventoryItem, 0, len(ids))
	for _, id := range ids {
		if it, ok := s.inventory[id]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

func (s *MemoryStore) GetInventoryItem(ctx context.Context, id string) (*InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.inventory[id]
	if !ok {
		return nil, fmt.Errorf("inventory item %s: %w", id, ErrNotFound)
	}
	return &it, nil
}

func (s *MemoryStore) CreateInventoryItem(ctx context.Context, item *InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inventory[item.ID]; ok {
		return fmt.Errorf("inventory item %s already exists", item.ID)
	}
	now := time.Now()
	item.CreatedAt, item.UpdatedAt = now, now
	s.inventory[item.ID] = *item
	return nil
}

func (s *MemoryStore) UpdateInventoryItem(ctx context.Context, id string, mutate func(item *InventoryItem) error) (*InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.inventory[id]
	if !ok {
		return nil, fmt.Errorf("inventory item %s: %w", id, ErrNotFound)
	}
	if err := mutate(&it); err != nil {
		return nil, err
	}
	it.ID = id
	it.UpdatedAt = time.Now()
	s.inventory[id] = it
	return &it, nil
}

func (s *MemoryStore) AdjustOpenStock(ctx context.Context, id string, delta decimal.Decimal) (*InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.inventory[id]
	if !ok {
		return nil, fmt.Errorf("inventory item %s: %w", id, ErrNotFound)
	}
	it.OpenStock = it.OpenStock.Add(delta)
	it.UpdatedAt = time.Now()
	s.inventory[id] = it
	return &it, nil
}

func cloneRecipe(r Recipe) Recipe {
	r.Ingredients = append([]RecipeIngredient(nil), r.Ingredients...)
	return r
}

func (s *MemoryStore) GetRecipe(ctx context.Context, menuItemID string) (Recipe, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[menuItemID]
	if !ok {
		return Recipe{}, false, nil
	}
	return cloneRecipe(r), true, nil
}

func (s *MemoryStore) SetRecipe(ctx context.Context, recipe Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if recipe.IsEmpty() {
		delete(s.recipes, recipe.MenuItemID)
		return nil
	}
	s.recipes[recipe.MenuItemID] = cloneRecipe(recipe)
	return nil
}

func (s *MemoryStore) ListRecipes(ctx context.Context) ([]Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, cloneRecipe(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MenuItemID < out[j].MenuItemID })
	return out, nil
}

func (s *MemoryStore) AppendUsageLog(ctx context.Context, entry UsageLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usageLogs = append(s.usageLogs, entry)
	return nil
}

func (s *MemoryStore) ListUsageLogs(ctx context.Context) ([]UsageLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]UsageLog(nil), s.usageLogs...), nil
}

func (s *MemoryStore) AppendNotification(ctx context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *MemoryStore) ListNotifications(ctx context.Context) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Notification(nil), s.notifications...), nil
}

func (s *MemoryStore) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Supplier(nil), s.suppliers...), nil
}

func (s *MemoryStore) SaveSupplier(ctx context.Context, sup *Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.suppliers {
		if s.suppliers[i].ID == sup.ID {
			s.suppliers[i] = *sup
			return nil
		}
	}
	if sup.CreatedAt.IsZero() {
		sup.CreatedAt = time.Now()
	}
	s.suppliers = append(s.suppliers, *sup)
	return nil
}

func (s *MemoryStore) GetBusinessProfile(ctx context.Context) (BusinessProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return DefaultBusinessProfile(), nil
	}
	p := *s.profile
	return p, nil
}

func (s *MemoryStore) SaveBusinessProfile(ctx context.Context, p *BusinessProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = BusinessProfileID
	p.UpdatedAt = time.Now()
	saved := *p
	s.profile = &saved
	return nil
}
