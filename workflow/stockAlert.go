package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/events"
	"github.com/goodlandcafe/pos_backend/models"
)

// StockAlertEvaluator emits a warning for every evaluation of an item at or
// below its low-stock threshold. It does not de-duplicate.
type StockAlertEvaluator struct {
	store     models.Store
	publisher events.Publisher
	now       func() time.Time
}

func NewStockAlertEvaluator(store models.Store, publisher events.Publisher) *StockAlertEvaluator {
	return &StockAlertEvaluator{store: store, publisher: publisher, now: time.Now}
}

func lowStockMessage(item models.InventoryItem) string {
	return fmt.Sprintf("Low stock: %s has %d pack(s) left (threshold %d)", item.Name, item.PackStock, item.LowStockThreshold)
}

// Evaluate returns the notification it emitted, or nil when stock is healthy.
func (e *StockAlertEvaluator) Evaluate(ctx context.Context, item models.InventoryItem) (*models.Notification, error) {
	if !item.IsLowStock() {
		return nil, nil
	}
	itemID := item.ID
	n := models.NewNotification(models.NotificationKindWarning, lowStockMessage(item), &itemID, e.now())
	if err := e.store.AppendNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("low stock notification for %s: %w", item.Name, err)
	}
	e.publisher.Publish(ctx, events.Event{Type: events.NotificationCreated, Payload: n})
	invalidateDashboard(ctx)
	return &n, nil
}

// EvaluateIDs loads the items in one batch and evaluates each of them.
func (e *StockAlertEvaluator) EvaluateIDs(ctx context.Context, ids []string) ([]models.Notification, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	loader := newInventoryLoader(e.store)
	items, loadErrs := loader.LoadMany(ctx, ids)()

	var (
		alerts []models.Notification
		errs   []error
	)
	for i, item := range items {
		if i < len(loadErrs) && loadErrs[i] != nil {
			errs = append(errs, loadErrs[i])
			continue
		}
		if item == nil {
			continue
		}
		n, err := e.Evaluate(ctx, *item)
		if err != nil {
			config.LogError(config.GetLogger(), "workflow", "StockAlertEvaluator.EvaluateIDs", "evaluate", item.ID, err)
			errs = append(errs, err)
			continue
		}
		if n != nil {
			alerts = append(alerts, *n)
		}
	}
	return alerts, errors.Join(errs...)
}
