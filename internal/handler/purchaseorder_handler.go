package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bizdesk/internal/domain"
	"bizdesk/internal/service"
)

// PurchaseOrderHandler handles purchase-order endpoints.
type PurchaseOrderHandler struct {
	orderService service.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler.
func NewPurchaseOrderHandler(orderService service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// Create handles POST /api/v1/purchase-orders
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		SupplierID uuid.UUID                        `json:"supplier_id" binding:"required"`
		OrderDate  *time.Time                       `json:"order_date"`
		Notes      string                           `json:"notes"`
		Lines      []service.PurchaseOrderLineInput `json:"lines" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	input := &service.CreatePurchaseOrderInput{
		TenantID:   tenantID,
		CreatedBy:  userID,
		SupplierID: req.SupplierID,
		Notes:      req.Notes,
		Lines:      req.Lines,
	}
	if req.OrderDate != nil {
		input.OrderDate = *req.OrderDate
	}

	order, err := h.orderService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, order)
}

// List handles GET /api/v1/purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var supplierID *uuid.UUID
	if raw := c.Query("supplier_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier ID")
			return
		}
		supplierID = &id
	}
	status := domain.PurchaseOrderStatus(c.Query("status"))

	offset, limit := parsePagination(c)
	orders, total, err := h.orderService.List(c.Request.Context(), tenantID, supplierID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, orders, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id", "purchase order")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// UpdateStatus handles POST /api/v1/purchase-orders/:id/status
func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id", "purchase order")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=draft sent received cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.orderService.UpdateStatus(c.Request.Context(), tenantID, orderID, domain.PurchaseOrderStatus(req.Status)); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"status": req.Status})
}

// Convert handles POST /api/v1/purchase-orders/:id/convert
func (h *PurchaseOrderHandler) Convert(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id", "purchase order")
	if !ok {
		return
	}

	var req struct {
		CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.orderService.ConvertToInvoice(c.Request.Context(), &service.ConvertOrderInput{
		TenantID:   tenantID,
		CreatedBy:  userID,
		OrderID:    orderID,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, invoice)
}
