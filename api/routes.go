package api

import (
	"github.com/gin-gonic/gin"
	"github.com/goodlandcafe/pos_backend/middlewares"
)

// RegisterRoutes mounts the POS API. Till routes are open; back-office routes
// need a manager token.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.POST("/auth/login", h.login)

	r.GET("/menu", h.listMenu)
	r.POST("/pos/quote", h.quote)
	r.POST("/pos/checkout", h.checkout)
	r.GET("/orders/pending", h.pendingOrders)
	r.GET("/orders/:id", h.getOrder)
	r.POST("/orders/:id/complete", h.completeOrder)
	r.GET("/events", h.streamEvents)

	m := r.Group("/", middlewares.RequireManager())
	m.POST("/menu", h.createMenuItem)
	m.PUT("/menu/:id", h.updateMenuItem)
	m.DELETE("/menu/:id", h.deleteMenuItem)

	m.GET("/inventory", h.listInventory)
	m.POST("/inventory", h.createInventoryItem)
	m.PUT("/inventory/:id", h.updateInventoryItem)
	m.POST("/inventory/:id/open-pack", h.openPack)

	m.GET("/recipes", h.listRecipes)
	m.GET("/recipes/:menuItemId", h.getRecipe)
	m.PUT("/recipes/:menuItemId", h.putRecipe)

	m.GET("/usage-logs", h.listUsageLogs)
	m.GET("/notifications", h.listNotifications)

	m.GET("/suppliers", h.listSuppliers)
	m.POST("/suppliers", h.createSupplier)

	m.GET("/business-profile", h.getBusinessProfile)
	m.PUT("/business-profile", h.putBusinessProfile)

	m.GET("/dashboard", h.dashboard)
	m.GET("/reports/export", h.exportReport)
}
