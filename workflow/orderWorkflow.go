package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/events"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/models/reports"
	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/goodlandcafe/pos_backend/workflow")

const maxOrderNumberAttempts = 5

// invalidateDashboard runs after every write the dashboard reads: orders and notifications.
var invalidateDashboard = reports.InvalidateDashboardCache

// ReceiptRenderer produces the printable receipt for a committed order and
// returns where it was stored.
type ReceiptRenderer interface {
	Render(ctx context.Context, txn models.Transaction, profile models.BusinessProfile) (string, error)
}

// Notice is a non-blocking problem raised after the order was already placed.
type Notice struct {
	Kind    models.NotificationKind `json:"kind"`
	Message string                  `json:"message"`
}

type PlaceOrderResult struct {
	Transaction     models.Transaction    `json:"transaction"`
	ReceiptLocation string                `json:"receipt_location,omitempty"`
	Notices         []Notice              `json:"notices"`
	Alerts          []models.Notification `json:"alerts"`
	Shortages       []Shortage            `json:"shortages"`
}

type OrderWorkflow struct {
	store     models.Store
	sequence  models.OrderSequence
	ledger    *Ledger
	alerts    *StockAlertEvaluator
	receipts  ReceiptRenderer
	publisher events.Publisher
	quoteOpts models.QuoteOptions
	now       func() time.Time
}

type OrderWorkflowConfig struct {
	Store        models.Store
	Sequence     models.OrderSequence
	Ledger       *Ledger
	Alerts       *StockAlertEvaluator
	Receipts     ReceiptRenderer
	Publisher    events.Publisher
	QuoteOptions models.QuoteOptions
}

func NewOrderWorkflow(cfg OrderWorkflowConfig) *OrderWorkflow {
	return &OrderWorkflow{
		store:     cfg.Store,
		sequence:  cfg.Sequence,
		ledger:    cfg.Ledger,
		alerts:    cfg.Alerts,
		receipts:  cfg.Receipts,
		publisher: cfg.Publisher,
		quoteOpts: cfg.QuoteOptions,
		now:       time.Now,
	}
}

type CartRequestLine struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gte=1"`
}

// NewCart starts an empty cart using the workflow's pricing options.
func (w *OrderWorkflow) NewCart() *models.Cart {
	return models.NewCart(w.quoteOpts)
}

// BuildCart loads current menu prices for the requested lines and freezes a quote.
func (w *OrderWorkflow) BuildCart(ctx context.Context, lines []CartRequestLine, discountType models.DiscountType, orderType models.OrderType) (*models.Cart, models.PosQuote, error) {
	cart := w.NewCart()
	for i, l := range lines {
		if err := utils.ValidateStruct(l); err != nil {
			return nil, models.PosQuote{}, models.NewValidationError(fmt.Sprintf("items[%d]", i), err)
		}
		item, err := w.store.GetMenuItem(ctx, l.MenuItemID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, models.PosQuote{}, models.NewValidationError(fmt.Sprintf("items[%d]", i), err)
			}
			return nil, models.PosQuote{}, err
		}
		if err := cart.Add(*item, l.Quantity); err != nil {
			return nil, models.PosQuote{}, err
		}
	}
	quote, err := cart.Quote(discountType, orderType)
	if err != nil {
		return nil, models.PosQuote{}, err
	}
	return cart, quote.Rounded(), nil
}

func buildTransaction(lines []models.CartLine, priced models.PosQuote, at time.Time) models.Transaction {
	txn := models.Transaction{
		ID:             uuid.NewString(),
		OrderType:      priced.OrderType,
		DiscountType:   priced.DiscountType,
		BaseAmount:     priced.BaseAmount,
		DiscountAmount: priced.DiscountAmount,
		VatPortion:     priced.VatPortion,
		ServiceFee:     priced.ServiceFee,
		TotalAmount:    priced.TotalAmount,
		CashProvided:   priced.CashProvided,
		Change:         priced.Change,
		TimeOrdered:    at,
		Status:         models.TransactionStatusPending,
	}
	for i, l := range lines {
		txn.Lines = append(txn.Lines, models.TransactionLine{
			TransactionID: txn.ID,
			LineNo:        i + 1,
			MenuItem:      l.MenuItem,
			Quantity:      l.Quantity,
		})
	}
	return txn
}

// PlaceOrder commits a quoted cart. Validation failures leave the cart Quoted
// and write nothing. Once the transaction is stored the order stands: stock
// deduction, receipt and alert problems come back as notices.
func (w *OrderWorkflow) PlaceOrder(ctx context.Context, cart *models.Cart, cashInput string) (*PlaceOrderResult, error) {
	ctx, span := tracer.Start(ctx, "OrderWorkflow.PlaceOrder")
	defer span.End()
	logger := config.GetLogger()
	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)

	lines, quote, err := cart.BeginCommit()
	if err != nil {
		return nil, err
	}
	cash, err := utils.ParseNonNegativeMoney(cashInput)
	if err != nil {
		cart.AbortCommit()
		return nil, models.NewValidationError("cashProvided", err)
	}
	priced := quote.Settle(cash)
	if cash.LessThan(priced.TotalAmount) {
		cart.AbortCommit()
		return nil, models.NewValidationError("cashProvided", models.ErrInsufficientCash)
	}

	txn := buildTransaction(lines, priced, w.now())
	if err := w.persist(ctx, &txn); err != nil {
		cart.AbortCommit()
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist order")
		config.LogError(logger, "workflow", "PlaceOrder", "persist transaction", txn.ID, err)
		return nil, fmt.Errorf("persist order: %w", err)
	}
	cart.FinishCommit()
	span.SetAttributes(attribute.Int64("order_number", txn.OrderNumber), attribute.String("transaction_id", txn.ID))

	logger.WithFields(logrus.Fields{
		"transaction_id": txn.ID,
		"order_number":   txn.OrderNumber,
		"total_amount":   txn.TotalAmount.String(),
		"order_type":     txn.OrderType,
		"discount_type":  txn.DiscountType,
		"correlation_id": correlationId,
	}).Info("order placed")
	w.publisher.Publish(ctx, events.Event{Type: events.OrderPlaced, CorrelationId: correlationId, Payload: txn})

	// the order is placed; nothing below may undo it
	ctx = context.WithoutCancel(ctx)
	result := &PlaceOrderResult{Transaction: txn}

	consumption, err := w.ledger.ApplyConsumption(ctx, txn)
	if err != nil {
		config.LogError(logger, "workflow", "PlaceOrder", "apply consumption", txn.OrderNumber, err)
		result.Notices = append(result.Notices, Notice{
			Kind:    models.NotificationKindWarning,
			Message: fmt.Sprintf("Inventory deduction for order %d was incomplete", txn.OrderNumber),
		})
	}
	result.Shortages = consumption.Shortages

	if w.receipts != nil {
		location, err := w.renderReceipt(ctx, txn)
		if err != nil {
			config.LogError(logger, "workflow", "PlaceOrder", "render receipt", txn.OrderNumber, err)
			result.Notices = append(result.Notices, Notice{
				Kind:    models.NotificationKindInfo,
				Message: fmt.Sprintf("Receipt for order %d could not be generated", txn.OrderNumber),
			})
		}
		result.ReceiptLocation = location
	}

	alerts, err := w.alerts.EvaluateIDs(ctx, consumption.Touched)
	if err != nil {
		config.LogError(logger, "workflow", "PlaceOrder", "evaluate stock alerts", consumption.Touched, err)
		result.Notices = append(result.Notices, Notice{
			Kind:    models.NotificationKindInfo,
			Message: "Some stock alerts could not be evaluated",
		})
	}
	result.Alerts = alerts
	invalidateDashboard(ctx)
	return result, nil
}

// persist assigns an order number and stores txn, retrying when another
// writer already holds the number.
func (w *OrderWorkflow) persist(ctx context.Context, txn *models.Transaction) error {
	var err error
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		var n int64
		n, err = w.sequence.Next(ctx)
		if err != nil {
			return err
		}
		txn.OrderNumber = n
		err = w.store.AppendTransaction(ctx, txn)
		if !errors.Is(err, models.ErrDuplicateOrderNumber) {
			return err
		}
		config.GetLogger().WithFields(logrus.Fields{
			"order_number": n,
			"attempt":      attempt,
		}).Warn("order number already used; drawing another")
	}
	return err
}

func (w *OrderWorkflow) renderReceipt(ctx context.Context, txn models.Transaction) (string, error) {
	profile, err := w.store.GetBusinessProfile(ctx)
	if err != nil {
		return "", err
	}
	return w.receipts.Render(ctx, txn, profile)
}

// CompleteOrder marks a pending order as served. A second call fails with ErrAlreadyCompleted.
func (w *OrderWorkflow) CompleteOrder(ctx context.Context, id string) (*models.Transaction, error) {
	txn, err := w.store.UpdateTransactionStatus(ctx, id, w.now())
	if err != nil {
		return nil, err
	}
	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	config.GetLogger().WithFields(logrus.Fields{
		"transaction_id": txn.ID,
		"order_number":   txn.OrderNumber,
		"correlation_id": correlationId,
	}).Info("order completed")
	w.publisher.Publish(ctx, events.Event{Type: events.OrderCompleted, CorrelationId: correlationId, Payload: txn})
	invalidateDashboard(ctx)
	return txn, nil
}

func (w *OrderWorkflow) PendingOrders(ctx context.Context) ([]models.Transaction, error) {
	return w.store.ListTransactionsByStatus(ctx, models.TransactionStatusPending)
}
