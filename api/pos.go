package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/goodlandcafe/pos_backend/workflow"
)

type cartRequest struct {
	Items        []workflow.CartRequestLine `json:"items"`
	DiscountType string                     `json:"discount_type"`
	OrderType    string                     `json:"order_type"`
	CashProvided string                     `json:"cash_provided"`
}

func (h *Handler) buildCart(c *gin.Context, req cartRequest) (*models.Cart, models.PosQuote, error) {
	discount, err := models.ParseDiscountType(req.DiscountType)
	if err != nil {
		return nil, models.PosQuote{}, models.NewValidationError("discount_type", err)
	}
	orderType, err := models.ParseOrderType(req.OrderType)
	if err != nil {
		return nil, models.PosQuote{}, models.NewValidationError("order_type", err)
	}
	return h.Orders.BuildCart(c.Request.Context(), req.Items, discount, orderType)
}

// quote prices a cart without committing anything. When cash is supplied
// the change is filled in too.
func (h *Handler) quote(c *gin.Context) {
	var req cartRequest
	if !bindJSON(c, &req) {
		return
	}
	_, quote, err := h.buildCart(c, req)
	if err != nil {
		respondError(c, "quote", err)
		return
	}
	if req.CashProvided != "" {
		cash, err := utils.ParseNonNegativeMoney(req.CashProvided)
		if err != nil {
			respondError(c, "quote", models.NewValidationError("cash_provided", err))
			return
		}
		quote = quote.Settle(cash)
	}
	c.JSON(http.StatusOK, quote)
}

func (h *Handler) checkout(c *gin.Context) {
	var req cartRequest
	if !bindJSON(c, &req) {
		return
	}
	cart, _, err := h.buildCart(c, req)
	if err != nil {
		respondError(c, "checkout", err)
		return
	}
	result, err := h.Orders.PlaceOrder(c.Request.Context(), cart, req.CashProvided)
	if err != nil {
		respondError(c, "checkout", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
