package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apppurchasing "github.com/resale/backend/internal/application/purchasing"
	"github.com/resale/backend/internal/interfaces/http/dto"
)

// PurchaseOrderHandler handles purchase order API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *apppurchasing.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *apppurchasing.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		orderService: orderService,
	}
}

// Create godoc
// @ID           createPurchaseOrder
// @Summary      Create a new purchase order
// @Description  Create a purchase order header with an optional initial set of lines
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        request body apppurchasing.CreatePurchaseOrderRequest true "Purchase order creation request"
// @Success      201 {object} APIResponse[apppurchasing.PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req apppurchasing.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// List godoc
// @ID           listPurchaseOrders
// @Summary      List purchase orders
// @Description  List purchase orders with filtering and pagination
// @Tags         purchase-orders
// @Produce      json
// @Param        status query string false "Filter by status" Enums(open, partially_received, received)
// @Param        is_locked query bool false "Filter by lock state"
// @Param        search query string false "Search order number or source"
// @Success      200 {object} APIResponse[[]apppurchasing.PurchaseOrderListItemResponse]
// @Router       /purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var filter apppurchasing.PurchaseOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @ID           getPurchaseOrderById
// @Summary      Get purchase order by ID
// @Description  Retrieve a purchase order with its lines
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Success      200 {object} APIResponse[apppurchasing.PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateHeader godoc
// @ID           updatePurchaseOrderHeader
// @Summary      Update purchase order header
// @Description  Update the header cost fields of an unlocked purchase order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Param        request body apppurchasing.UpdatePurchaseOrderRequest true "Header update request"
// @Success      200 {object} APIResponse[apppurchasing.PurchaseOrderResponse]
// @Failure      409 {object} ErrorResponse
// @Router       /purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) UpdateHeader(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	var req apppurchasing.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateHeader(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// AddItem godoc
// @ID           addPurchaseOrderItem
// @Summary      Add a line to a purchase order
// @Description  Add a line to an unlocked purchase order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Param        request body apppurchasing.LineItemInput true "Line item"
// @Success      201 {object} APIResponse[apppurchasing.PurchaseOrderItemResponse]
// @Failure      409 {object} ErrorResponse
// @Router       /purchase-orders/{id}/items [post]
func (h *PurchaseOrderHandler) AddItem(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	var req apppurchasing.LineItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.orderService.AddItem(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// UpdateItem godoc
// @ID           updatePurchaseOrderItem
// @Summary      Update a purchase order line
// @Description  Update a line of an unlocked purchase order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Param        itemID path string true "Line item ID"
// @Param        request body apppurchasing.LineItemInput true "Line item"
// @Success      200 {object} APIResponse[apppurchasing.PurchaseOrderItemResponse]
// @Failure      409 {object} ErrorResponse
// @Router       /purchase-orders/{id}/items/{itemID} [put]
func (h *PurchaseOrderHandler) UpdateItem(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}
	itemID, ok := h.bindItemID(c)
	if !ok {
		return
	}

	var req apppurchasing.LineItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.orderService.UpdateItem(c.Request.Context(), orderID, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// RemoveItem godoc
// @ID           removePurchaseOrderItem
// @Summary      Delete a purchase order line
// @Description  Delete a line from an unlocked purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Param        itemID path string true "Line item ID"
// @Success      204
// @Failure      409 {object} ErrorResponse
// @Router       /purchase-orders/{id}/items/{itemID} [delete]
func (h *PurchaseOrderHandler) RemoveItem(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}
	itemID, ok := h.bindItemID(c)
	if !ok {
		return
	}

	if err := h.orderService.RemoveItem(c.Request.Context(), orderID, itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Lock godoc
// @ID           lockPurchaseOrder
// @Summary      Allocate costs and lock a purchase order
// @Description  Runs cost allocation over every line and freezes the order in one transaction
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Success      200 {object} APIResponse[apppurchasing.PurchaseOrderResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /purchase-orders/{id}/lock [post]
func (h *PurchaseOrderHandler) Lock(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Lock(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// bindOrderID extracts and validates the order ID path parameter
func (h *PurchaseOrderHandler) bindOrderID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return uuid.Nil, false
	}
	orderID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return uuid.Nil, false
	}
	return orderID, true
}

// bindItemID extracts and validates the line item ID path parameter
func (h *PurchaseOrderHandler) bindItemID(c *gin.Context) (uuid.UUID, bool) {
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		h.BadRequest(c, "Invalid line item ID")
		return uuid.Nil, false
	}
	return itemID, true
}
