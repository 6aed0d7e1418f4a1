package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platefork/backend/internal/service"
	"github.com/platefork/backend/internal/types"
)

// ShoppingListHandler serves the authenticated shopping list endpoints.
type ShoppingListHandler struct {
	shoppingService *service.ShoppingListService
}

func NewShoppingListHandler(shoppingService *service.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{shoppingService: shoppingService}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/shopping-list", h.List)
	router.POST("/shopping-list", h.Create)
	router.PUT("/shopping-list/:id", h.Update)
	router.DELETE("/shopping-list/:id", h.Delete)
	router.PATCH("/shopping-list/:id/toggle-purchased", h.TogglePurchased)
}

func (h *ShoppingListHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	items, err := h.shoppingService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ShoppingListHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var input types.ShoppingListItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.shoppingService.Create(c.Request.Context(), userID, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ShoppingListHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input types.ShoppingListItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.shoppingService.Update(c.Request.Context(), userID, itemID, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShoppingListHandler) Delete(c *gin.Context) {
	// gin cannot register a static /shopping-list/clear-purchased route
	// next to the /shopping-list/:id wildcard, so the dispatch happens here.
	if c.Param("id") == "clear-purchased" {
		h.ClearPurchased(c)
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.shoppingService.Delete(c.Request.Context(), userID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShoppingListHandler) TogglePurchased(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := h.shoppingService.TogglePurchased(c.Request.Context(), userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShoppingListHandler) ClearPurchased(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	count, err := h.shoppingService.ClearPurchased(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d purchased items cleared", count)})
}
