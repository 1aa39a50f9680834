package workflow

import (
	"context"

	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/events"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/sirupsen/logrus"
)

// InventoryService applies manager edits. Writes to stock counters take the
// same per-item lock as order deduction.
type InventoryService struct {
	store     models.Store
	locker    ItemLocker
	alerts    *StockAlertEvaluator
	publisher events.Publisher
}

func NewInventoryService(store models.Store, locker ItemLocker, alerts *StockAlertEvaluator, publisher events.Publisher) *InventoryService {
	return &InventoryService{store: store, locker: locker, alerts: alerts, publisher: publisher}
}

type InventoryChangeResult struct {
	Item  models.InventoryItem `json:"item"`
	Alert *models.Notification `json:"alert,omitempty"`
}

func (s *InventoryService) afterChange(ctx context.Context, item models.InventoryItem) *InventoryChangeResult {
	s.publisher.Publish(ctx, events.Event{Type: events.InventoryChanged, Payload: item})
	res := &InventoryChangeResult{Item: item}
	alert, err := s.alerts.Evaluate(ctx, item)
	invalidateDashboard(ctx)
	if err != nil {
		config.LogError(config.GetLogger(), "workflow", "InventoryService", "evaluate alert", item.ID, err)
		return res
	}
	res.Alert = alert
	return res
}

func (s *InventoryService) CreateItem(ctx context.Context, input models.NewInventoryItem) (*InventoryChangeResult, error) {
	item, err := input.ToInventoryItem()
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateInventoryItem(ctx, item); err != nil {
		return nil, err
	}
	config.GetLogger().WithFields(logrus.Fields{
		"inventory_item_id": item.ID,
		"name":              item.Name,
	}).Info("inventory item created")
	return s.afterChange(ctx, *item), nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, id string, input models.InventoryItemUpdate) (*InventoryChangeResult, error) {
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := s.store.UpdateInventoryItem(ctx, id, input.ApplyTo)
	unlock()
	if err != nil {
		return nil, err
	}
	return s.afterChange(ctx, *item), nil
}

// OpenPack moves sealed packs into kitchen stock.
func (s *InventoryService) OpenPack(ctx context.Context, id string, packs int) (*InventoryChangeResult, error) {
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := s.store.UpdateInventoryItem(ctx, id, func(item *models.InventoryItem) error {
		return item.OpenPacks(packs)
	})
	unlock()
	if err != nil {
		return nil, err
	}
	config.GetLogger().WithFields(logrus.Fields{
		"inventory_item_id": item.ID,
		"packs":             packs,
		"pack_stock":        item.PackStock,
		"open_stock":        item.OpenStock.String(),
	}).Info("inventory packs opened")
	return s.afterChange(ctx, *item), nil
}
