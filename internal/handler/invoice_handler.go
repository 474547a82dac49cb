package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
	"bizdesk/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService    service.InvoiceService
	creditNoteService service.CreditNoteService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, creditNoteService service.CreditNoteService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, creditNoteService: creditNoteService}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		CustomerID  uuid.UUID                        `json:"customer_id" binding:"required"`
		InvoiceDate *time.Time                       `json:"invoice_date"`
		DueDate     *time.Time                       `json:"due_date"`
		Notes       string                           `json:"notes"`
		Lines       []service.InvoiceLineInput       `json:"lines" binding:"required,min=1,dive"`
		CreditLines []service.InvoiceCreditLineInput `json:"credit_lines"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	input := &service.CreateInvoiceInput{
		TenantID:    tenantID,
		CreatedBy:   userID,
		CustomerID:  req.CustomerID,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
		Lines:       req.Lines,
		CreditLines: req.CreditLines,
	}
	if req.InvoiceDate != nil {
		input.InvoiceDate = *req.InvoiceDate
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, invoice)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filter := port.InvoiceFilter{
		Status: domain.InvoiceStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
			return
		}
		filter.CustomerID = &id
	}

	offset, limit := parsePagination(c)
	invoices, total, err := h.invoiceService.List(c.Request.Context(), tenantID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetDetail(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Lines handles GET /api/v1/invoices/:id/lines
//
// Returns the invoice's line items normalized into the grouped shape the
// credit-note form renders.
func (h *InvoiceHandler) Lines(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id", "invoice")
	if !ok {
		return
	}

	groups, err := h.creditNoteService.InvoiceLines(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"groups": groups})
}

// Send handles POST /api/v1/invoices/:id/send
func (h *InvoiceHandler) Send(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Send(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Void handles POST /api/v1/invoices/:id/void
func (h *InvoiceHandler) Void(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id", "invoice")
	if !ok {
		return
	}

	if err := h.invoiceService.Void(c.Request.Context(), tenantID, invoiceID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"voided": true})
}
