package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apppurchasing "github.com/resale/backend/internal/application/purchasing"
	"github.com/resale/backend/internal/interfaces/http/dto"
)

// ReceivingHandler handles receiving API endpoints for locked purchase orders
type ReceivingHandler struct {
	BaseHandler
	receivingService *apppurchasing.ReceivingService
}

// NewReceivingHandler creates a new ReceivingHandler
func NewReceivingHandler(receivingService *apppurchasing.ReceivingService) *ReceivingHandler {
	return &ReceivingHandler{
		receivingService: receivingService,
	}
}

// GetStaging godoc
// @ID           getReceivingStaging
// @Summary      Get the receiving staging view
// @Description  Returns outstanding receivable quantities per line with the concurrency tokens a commit must echo back
// @Tags         receiving
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Success      200 {object} APIResponse[apppurchasing.StagingViewResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /purchase-orders/{id}/receiving/staging [get]
func (h *ReceivingHandler) GetStaging(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	view, err := h.receivingService.GetStagingView(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, view)
}

// Commit godoc
// @ID           commitReceiving
// @Summary      Commit a receiving batch
// @Description  Applies all receipts atomically: every line validates against its token or the whole batch rolls back
// @Tags         receiving
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Param        request body apppurchasing.CommitReceivingRequest true "Receiving commit payload"
// @Success      200 {object} APIResponse[apppurchasing.CommitReceivingResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /purchase-orders/{id}/receiving/commit [post]
func (h *ReceivingHandler) Commit(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	var req apppurchasing.CommitReceivingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.receivingService.Commit(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListEvents godoc
// @ID           listReceivingEvents
// @Summary      List receiving audit events
// @Description  Returns the append-only receive/damage/short audit trail for an order
// @Tags         receiving
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Success      200 {object} APIResponse[[]apppurchasing.ReceivingEventResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /purchase-orders/{id}/receiving/events [get]
func (h *ReceivingHandler) ListEvents(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	events, err := h.receivingService.ListEvents(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, events)
}

// bindOrderID extracts and validates the order ID path parameter
func (h *ReceivingHandler) bindOrderID(c *gin.Context) (uuid.UUID, bool) {
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
