package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goodlandcafe/pos_backend/models"
)

type openPackRequest struct {
	Packs int `json:"packs"`
}

type recipeRequest struct {
	Ingredients []models.NewRecipeIngredient `json:"ingredients"`
}

func (h *Handler) listInventory(c *gin.Context) {
	items, err := h.Store.ListInventory(c.Request.Context())
	if err != nil {
		respondError(c, "listInventory", err)
		return
	}
	if c.Query("low_stock") == "true" {
		low := make([]models.InventoryItem, 0, len(items))
		for _, it := range items {
			if it.IsLowStock() {
				low = append(low, it)
			}
		}
		items = low
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createInventoryItem(c *gin.Context) {
	var input models.NewInventoryItem
	if !bindJSON(c, &input) {
		return
	}
	result, err := h.Inventory.CreateItem(c.Request.Context(), input)
	if err != nil {
		respondError(c, "createInventoryItem", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) updateInventoryItem(c *gin.Context) {
	var input models.InventoryItemUpdate
	if !bindJSON(c, &input) {
		return
	}
	result, err := h.Inventory.UpdateItem(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, "updateInventoryItem", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) openPack(c *gin.Context) {
	req := openPackRequest{Packs: 1}
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	result, err := h.Inventory.OpenPack(c.Request.Context(), c.Param("id"), req.Packs)
	if err != nil {
		respondError(c, "openPack", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) listRecipes(c *gin.Context) {
	recipes, err := h.Store.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, "listRecipes", err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// getRecipe returns an empty ingredient list for dishes without a recipe.
func (h *Handler) getRecipe(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("menuItemId")
	if _, err := h.Store.GetMenuItem(ctx, id); err != nil {
		respondError(c, "getRecipe", err)
		return
	}
	recipe, ok, err := h.Store.GetRecipe(ctx, id)
	if err != nil {
		respondError(c, "getRecipe", err)
		return
	}
	if !ok {
		recipe = models.Recipe{MenuItemID: id, Ingredients: []models.RecipeIngredient{}}
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) putRecipe(c *gin.Context) {
	var req recipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.Ledger.EditRecipe(c.Request.Context(), c.Param("menuItemId"), req.Ingredients)
	if err != nil {
		respondError(c, "putRecipe", err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) listUsageLogs(c *gin.Context) {
	logs, err := h.Store.ListUsageLogs(c.Request.Context())
	if err != nil {
		respondError(c, "listUsageLogs", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *Handler) listNotifications(c *gin.Context) {
	notifications, err := h.Store.ListNotifications(c.Request.Context())
	if err != nil {
		respondError(c, "listNotifications", err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}
