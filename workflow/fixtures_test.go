package workflow

import (
	"context"
	"sync"
	"testing"

	"github.com/goodlandcafe/pos_backend/events"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, ev events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.EventType, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// cafe is a memory store with one coffee drink whose recipe uses beans and milk.
type cafe struct {
	store    *models.MemoryStore
	latte    models.MenuItem
	cookie   models.MenuItem
	beans    models.InventoryItem
	milk     models.InventoryItem
	pub      *recordingPublisher
	locker   *LocalItemLocker
	alerts   *StockAlertEvaluator
	ledger   *Ledger
	receipts *fakeReceipts
}

type fakeReceipts struct {
	mu    sync.Mutex
	err   error
	calls []int64
}

func (r *fakeReceipts) Render(ctx context.Context, txn models.Transaction, profile models.BusinessProfile) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, txn.OrderNumber)
	if r.err != nil {
		return "", r.err
	}
	return "receipts/" + txn.ID + ".txt", nil
}

func newCafe(t *testing.T, policy string) *cafe {
	t.Helper()
	ctx := context.Background()
	c := &cafe{
		store:    models.NewMemoryStore(),
		pub:      &recordingPublisher{},
		locker:   NewLocalItemLocker(),
		receipts: &fakeReceipts{},
	}

	latte, err := models.NewMenuItem{Name: "Cafe Latte", Category: "Beverages", BasePrice: "100"}.ToMenuItem()
	require.NoError(t, err)
	require.NoError(t, c.store.SaveMenuItem(ctx, latte))
	c.latte = *latte
	cookie, err := models.NewMenuItem{Name: "Cookie", Category: "Desserts", BasePrice: "50"}.ToMenuItem()
	require.NoError(t, err)
	require.NoError(t, c.store.SaveMenuItem(ctx, cookie))
	c.cookie = *cookie

	beans, err := models.NewInventoryItem{Name: "Coffee Beans", UnitCost: "850", PackStock: 4}.ToInventoryItem()
	require.NoError(t, err)
	beans.OpenStock = dec("30")
	require.NoError(t, c.store.CreateInventoryItem(ctx, beans))
	c.beans = *beans
	milk, err := models.NewInventoryItem{Name: "Fresh Milk", UnitCost: "95", PackStock: 10, MeasurementUnit: "ml"}.ToInventoryItem()
	require.NoError(t, err)
	milk.OpenStock = dec("1000")
	require.NoError(t, c.store.CreateInventoryItem(ctx, milk))
	c.milk = *milk

	require.NoError(t, c.store.SetRecipe(ctx, models.BuildRecipe(latte.ID, []models.NewRecipeIngredient{
		{InventoryItemID: beans.ID, QuantityPerServing: dec("18")},
		{InventoryItemID: milk.ID, QuantityPerServing: dec("200")},
	})))

	c.alerts = NewStockAlertEvaluator(c.store, c.pub)
	c.ledger = NewLedger(c.store, c.locker, c.pub, policy)
	return c
}

func (c *cafe) workflow(store models.Store) *OrderWorkflow {
	if store == nil {
		store = c.store
	}
	return NewOrderWorkflow(OrderWorkflowConfig{
		Store:     store,
		Sequence:  models.StoreOrderSequence{Store: store},
		Ledger:    c.ledger,
		Alerts:    c.alerts,
		Receipts:  c.receipts,
		Publisher: c.pub,
	})
}

func (c *cafe) openStock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	item, err := c.store.GetInventoryItem(context.Background(), id)
	require.NoError(t, err)
	return item.OpenStock
}
