package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/goodlandcafe/pos_backend/models"
	"github.com/graph-gophers/dataloader/v7"
)

type inventoryReader struct {
	store models.Store
}

func (r *inventoryReader) getInventoryItems(ctx context.Context, ids []string) []*dataloader.Result[*models.InventoryItem] {
	items, err := r.store.ListInventoryByIDs(ctx, ids)
	if err != nil {
		return handleError[*models.InventoryItem](len(ids), err)
	}
	byID := make(map[string]models.InventoryItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	results := make([]*dataloader.Result[*models.InventoryItem], 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			results = append(results, &dataloader.Result[*models.InventoryItem]{
				Error: fmt.Errorf("inventory item %s: %w", id, models.ErrNotFound),
			})
			continue
		}
		results = append(results, &dataloader.Result[*models.InventoryItem]{Data: &it})
	}
	return results
}

func handleError[T any](itemsLength int, err error) []*dataloader.Result[T] {
	result := make([]*dataloader.Result[T], itemsLength)
	for i := 0; i < itemsLength; i++ {
		result[i] = &dataloader.Result[T]{Error: err}
	}
	return result
}

// newInventoryLoader batches item reads for one pass. It does not cache across
// calls so every pass sees stock written before it started.
func newInventoryLoader(store models.Store) *dataloader.Loader[string, *models.InventoryItem] {
	reader := &inventoryReader{store: store}
	return dataloader.NewBatchedLoader(reader.getInventoryItems,
		dataloader.WithWait[string, *models.InventoryItem](time.Millisecond))
}
