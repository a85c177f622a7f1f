package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-pantry/backend/internal/middleware"
	"github.com/pageza/alchemorsel-pantry/backend/internal/service"
)

type InventoryHandler struct {
	inventory   service.IInventoryService
	authService service.IAuthService
	logger      *slog.Logger
}

func NewInventoryHandler(inventory service.IInventoryService, authService service.IAuthService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, authService: authService, logger: logger}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inventory := router.Group("/inventory")
	inventory.Use(middleware.AuthMiddleware(h.authService))
	{
		inventory.GET("", h.ListItems)
		inventory.POST("", h.CreateItem)
		inventory.PUT("/:id", h.UpdateItem)
		inventory.DELETE("/:id", h.DeleteItem)
	}
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	items, err := h.inventory.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	in, ok := bindInventory(c)
	if !ok {
		return
	}

	item, err := h.inventory.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := pathID(c, "invalid inventory item id")
	if !ok {
		return
	}
	in, ok := bindInventory(c)
	if !ok {
		return
	}

	item, err := h.inventory.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := pathID(c, "invalid inventory item id")
	if !ok {
		return
	}

	if err := h.inventory.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindInventory(c *gin.Context) (service.InventoryInput, bool) {
	var req InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.InventoryInput{}, false
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Quantity.Value) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and quantity are required"})
		return service.InventoryInput{}, false
	}

	in := service.InventoryInput{Name: req.Name, Quantity: req.Quantity.Value}
	if req.Unit != nil {
		in.Unit = *req.Unit
	}
	return in, true
}

func pathID(c *gin.Context, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return uuid.Nil, false
	}
	return id, true
}
