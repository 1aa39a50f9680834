package api

import (
	"time"

	"github.com/goodlandcafe/pos_backend/events"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/workflow"
	"github.com/shopspring/decimal"
)

// ManagerCredentials is the single back-office login. PasswordHash is bcrypt.
type ManagerCredentials struct {
	Username     string
	PasswordHash string
}

type Handler struct {
	Store     models.Store
	Orders    *workflow.OrderWorkflow
	Ledger    *workflow.Ledger
	Inventory *workflow.InventoryService
	Bus       *events.Bus
	Manager   ManagerCredentials
	Alpha     decimal.Decimal
	Location  *time.Location
}
