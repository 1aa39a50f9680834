package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) pendingOrders(c *gin.Context) {
	orders, err := h.Orders.PendingOrders(c.Request.Context())
	if err != nil {
		respondError(c, "pendingOrders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	txn, err := h.Store.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "getOrder", err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (h *Handler) completeOrder(c *gin.Context) {
	txn, err := h.Orders.CompleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "completeOrder", err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// streamEvents relays bus events to the kitchen screen as server-sent events.
func (h *Handler) streamEvents(c *gin.Context) {
	ch, unsubscribe := h.Bus.Subscribe()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Type), ev)
			return true
		}
	})
}
