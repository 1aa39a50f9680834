package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goodlandcafe/pos_backend/models"
)

func (h *Handler) listMenu(c *gin.Context) {
	items, err := h.Store.ListMenuItems(c.Request.Context())
	if err != nil {
		respondError(c, "listMenu", err)
		return
	}
	if category := c.Query("category"); category != "" {
		want, err := models.ParseCategory(category)
		if err != nil {
			respondError(c, "listMenu", models.NewValidationError("category", err))
			return
		}
		filtered := items[:0]
		for _, it := range items {
			if it.Category == want {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createMenuItem(c *gin.Context) {
	var input models.NewMenuItem
	if !bindJSON(c, &input) {
		return
	}
	item, err := input.ToMenuItem()
	if err != nil {
		respondError(c, "createMenuItem", err)
		return
	}
	if err := h.Store.SaveMenuItem(c.Request.Context(), item); err != nil {
		respondError(c, "createMenuItem", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(c *gin.Context) {
	var input models.NewMenuItem
	if !bindJSON(c, &input) {
		return
	}
	ctx := c.Request.Context()
	item, err := h.Store.GetMenuItem(ctx, c.Param("id"))
	if err != nil {
		respondError(c, "updateMenuItem", err)
		return
	}
	if err := input.ApplyTo(item); err != nil {
		respondError(c, "updateMenuItem", err)
		return
	}
	if err := h.Store.SaveMenuItem(ctx, item); err != nil {
		respondError(c, "updateMenuItem", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// deleteMenuItem drops the dish and its recipe. Past transactions keep their snapshots.
func (h *Handler) deleteMenuItem(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.Store.DeleteMenuItem(ctx, id); err != nil {
		respondError(c, "deleteMenuItem", err)
		return
	}
	if err := h.Store.SetRecipe(ctx, models.Recipe{MenuItemID: id}); err != nil {
		respondError(c, "deleteMenuItem", err)
		return
	}
	c.Status(http.StatusNoContent)
}
