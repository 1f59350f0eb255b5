package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appinventory "github.com/resale/backend/internal/application/inventory"
	"github.com/resale/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles read access to materialized inventory.
// Inventory is written only by receiving commits.
type InventoryHandler struct {
	BaseHandler
	inventoryService *appinventory.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *appinventory.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// List godoc
// @ID           listInventory
// @Summary      List inventory items
// @Description  List materialized inventory with filtering and pagination
// @Tags         inventory
// @Produce      json
// @Param        status query string false "Filter by status" Enums(Pending, Active, Damaged, Archived)
// @Param        purchase_order_id query string false "Filter by purchase order"
// @Param        search query string false "Search seller SKU or product ref"
// @Success      200 {object} APIResponse[[]appinventory.InventoryItemResponse]
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var filter appinventory.InventoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @ID           getInventoryItemById
// @Summary      Get inventory item by ID
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Inventory item ID"
// @Success      200 {object} APIResponse[appinventory.InventoryItemResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid inventory item ID")
		return
	}
	itemID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid inventory item ID")
		return
	}

	item, err := h.inventoryService.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// GetBySellerSKU godoc
// @ID           getInventoryItemBySku
// @Summary      Get inventory item by seller SKU
// @Tags         inventory
// @Produce      json
// @Param        sku path string true "Seller SKU"
// @Success      200 {object} APIResponse[appinventory.InventoryItemResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /inventory/sku/{sku} [get]
func (h *InventoryHandler) GetBySellerSKU(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		h.BadRequest(c, "Seller SKU is required")
		return
	}

	item, err := h.inventoryService.GetBySellerSKU(c.Request.Context(), sku)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}
