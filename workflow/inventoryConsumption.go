package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/events"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Shortage records an ingredient whose kitchen stock could not cover a deduction.
type Shortage struct {
	InventoryItemID string                 `json:"inventory_item_id"`
	ItemName        string                 `json:"item_name"`
	Unit            models.MeasurementUnit `json:"unit"`
	Requested       decimal.Decimal        `json:"requested"`
	Deducted        decimal.Decimal        `json:"deducted"`
	OpenStockAfter  decimal.Decimal        `json:"open_stock_after"`
}

func (s Shortage) Missing() decimal.Decimal {
	return s.Requested.Sub(s.Deducted)
}

type ConsumptionResult struct {
	// Touched lists every ingredient looked at, in first-seen order, once.
	Touched   []string          `json:"touched"`
	UsageLogs []models.UsageLog `json:"usage_logs"`
	Shortages []Shortage        `json:"shortages"`
}

// Ledger deducts recipe ingredients from kitchen stock when an order commits.
type Ledger struct {
	store     models.Store
	locker    ItemLocker
	publisher events.Publisher
	policy    string
	now       func() time.Time
}

func NewLedger(store models.Store, locker ItemLocker, publisher events.Publisher, policy string) *Ledger {
	if policy != config.ShortfallPolicyClamp {
		policy = config.ShortfallPolicyAllowNegative
	}
	return &Ledger{
		store:     store,
		locker:    locker,
		publisher: publisher,
		policy:    policy,
		now:       time.Now,
	}
}

func (l *Ledger) Policy() string {
	return l.policy
}

// ApplyConsumption walks every line of txn and deducts quantityPerServing*quantity
// for each recipe ingredient. Lines without a recipe are skipped. Failures on
// individual ingredients are joined into the returned error; the rest still apply.
func (l *Ledger) ApplyConsumption(ctx context.Context, txn models.Transaction) (*ConsumptionResult, error) {
	ctx, span := tracer.Start(ctx, "Ledger.ApplyConsumption")
	defer span.End()
	span.SetAttributes(attribute.Int64("order_number", txn.OrderNumber))

	result := &ConsumptionResult{}
	var errs []error

	for _, line := range txn.Lines {
		recipe, found, err := l.store.GetRecipe(ctx, line.MenuItem.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("recipe for %s: %w", line.MenuItem.Name, err))
			continue
		}
		if !found {
			continue
		}
		for _, ing := range recipe.Ingredients {
			result.Touched = append(result.Touched, ing.InventoryItemID)
			qty := ing.QuantityPerServing.Mul(decimal.NewFromInt(int64(line.Quantity)))
			usage, shortage, err := l.deduct(ctx, ing.InventoryItemID, qty, txn, line)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if usage != nil {
				result.UsageLogs = append(result.UsageLogs, *usage)
			}
			if shortage != nil {
				result.Shortages = append(result.Shortages, *shortage)
			}
		}
	}
	result.Touched = utils.UniqueSlice(result.Touched)

	span.SetAttributes(
		attribute.Int("touched", len(result.Touched)),
		attribute.Int("shortages", len(result.Shortages)),
	)
	return result, errors.Join(errs...)
}

func (l *Ledger) deduct(ctx context.Context, itemID string, qty decimal.Decimal, txn models.Transaction, line models.TransactionLine) (*models.UsageLog, *Shortage, error) {
	unlock, err := l.locker.Lock(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	item, err := l.store.GetInventoryItem(ctx, itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("deduct %s for order %d: %w", itemID, txn.OrderNumber, err)
	}

	deducted := qty
	if l.policy == config.ShortfallPolicyClamp {
		available := decimal.Max(item.OpenStock, decimal.Zero)
		deducted = decimal.Min(qty, available)
	}

	after := item.OpenStock
	var usage *models.UsageLog
	if deducted.IsPositive() {
		updated, err := l.store.AdjustOpenStock(ctx, itemID, deducted.Neg())
		if err != nil {
			return nil, nil, fmt.Errorf("deduct %s for order %d: %w", item.Name, txn.OrderNumber, err)
		}
		after = updated.OpenStock
		usage = &models.UsageLog{
			ID:              uuid.NewString(),
			InventoryItemID: item.ID,
			ItemName:        item.Name,
			MeasurementUnit: item.MeasurementUnit,
			QuantityUsed:    deducted,
			TransactionID:   txn.ID,
			OrderNumber:     txn.OrderNumber,
			MenuItemID:      line.MenuItem.ID,
			Timestamp:       l.now(),
		}
		if err := l.store.AppendUsageLog(ctx, *usage); err != nil {
			return nil, nil, fmt.Errorf("usage log %s for order %d: %w", item.Name, txn.OrderNumber, err)
		}
		l.publisher.Publish(ctx, events.Event{Type: events.InventoryChanged, Payload: updated})
	}

	var shortage *Shortage
	if deducted.LessThan(qty) || after.IsNegative() {
		shortage = &Shortage{
			InventoryItemID: item.ID,
			ItemName:        item.Name,
			Unit:            item.MeasurementUnit,
			Requested:       qty,
			Deducted:        deducted,
			OpenStockAfter:  after,
		}
		l.flagShortage(ctx, *shortage, txn)
	}
	return usage, shortage, nil
}

func (l *Ledger) shortageMessage(s Shortage) string {
	if l.policy == config.ShortfallPolicyClamp {
		return fmt.Sprintf("Kitchen stock for %s ran out: short by %s %s", s.ItemName, s.Missing().String(), s.Unit)
	}
	return fmt.Sprintf("Kitchen stock for %s is negative (%s %s)", s.ItemName, s.OpenStockAfter.String(), s.Unit)
}

// flagShortage never fails the caller; shortages must not block a sale.
func (l *Ledger) flagShortage(ctx context.Context, s Shortage, txn models.Transaction) {
	logger := config.GetLogger()
	logger.WithFields(logrus.Fields{
		"inventory_item_id": s.InventoryItemID,
		"order_number":      txn.OrderNumber,
		"requested":         s.Requested.String(),
		"deducted":          s.Deducted.String(),
		"open_stock_after":  s.OpenStockAfter.String(),
		"policy":            l.policy,
	}).Warn("inventory shortfall")

	itemID := s.InventoryItemID
	n := models.NewNotification(models.NotificationKindWarning, l.shortageMessage(s), &itemID, l.now())
	if err := l.store.AppendNotification(ctx, n); err != nil {
		config.LogError(logger, "workflow", "Ledger.flagShortage", "append notification", n, err)
		return
	}
	l.publisher.Publish(ctx, events.Event{Type: events.NotificationCreated, Payload: n})
	invalidateDashboard(ctx)
}

// EditRecipe replaces the whole ingredient list of a dish. Orders already
// committed keep the usage they logged.
func (l *Ledger) EditRecipe(ctx context.Context, menuItemID string, ingredients []models.NewRecipeIngredient) (models.Recipe, error) {
	if _, err := l.store.GetMenuItem(ctx, menuItemID); err != nil {
		return models.Recipe{}, err
	}
	if err := models.ValidateIngredients(ingredients); err != nil {
		return models.Recipe{}, err
	}

	ids := make([]string, 0, len(ingredients))
	for _, in := range ingredients {
		ids = append(ids, in.InventoryItemID)
	}
	items, err := l.store.ListInventoryByIDs(ctx, ids)
	if err != nil {
		return models.Recipe{}, err
	}
	byID := make(map[string]models.InventoryItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	for i, in := range ingredients {
		it, ok := byID[in.InventoryItemID]
		field := fmt.Sprintf("ingredients[%d]", i)
		if !ok {
			return models.Recipe{}, models.NewValidationError(field, fmt.Errorf("inventory item %s does not exist", in.InventoryItemID))
		}
		if !it.UsableInRecipes() {
			return models.Recipe{}, models.NewValidationError(field, fmt.Errorf("%s is not a food item", it.Name))
		}
	}

	recipe := models.BuildRecipe(menuItemID, ingredients)
	if err := l.store.SetRecipe(ctx, recipe); err != nil {
		return models.Recipe{}, err
	}
	return recipe, nil
}
