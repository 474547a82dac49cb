package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bizdesk/internal/creditnote"
	"bizdesk/internal/domain"
	"bizdesk/internal/port"
	"bizdesk/internal/service"
)

// CreditNoteHandler handles credit-note endpoints.
type CreditNoteHandler struct {
	creditNoteService service.CreditNoteService
}

// NewCreditNoteHandler creates a new CreditNoteHandler.
func NewCreditNoteHandler(creditNoteService service.CreditNoteService) *CreditNoteHandler {
	return &CreditNoteHandler{creditNoteService: creditNoteService}
}

// creditNoteRequest is the shared request body for create and update.
// Line items are accepted under both "line_items" and the legacy "items"
// key; "line_items" wins when both are present.
type creditNoteRequest struct {
	CustomerID   uuid.UUID                  `json:"customer_id"`
	InvoiceID    *uuid.UUID                 `json:"invoice_id"`
	CreditDate   *time.Time                 `json:"credit_date"`
	Description  string                     `json:"description"`
	CreditAmount decimal.Decimal            `json:"credit_amount"`
	LineItems    []creditnote.LineItemInput `json:"line_items"`
	Items        []creditnote.LineItemInput `json:"items"`
	Process      bool                       `json:"process"`
}

func (r *creditNoteRequest) lineItems() []creditnote.LineItemInput {
	if len(r.LineItems) > 0 {
		return r.LineItems
	}
	return r.Items
}

// Create handles POST /api/v1/credit-notes
func (h *CreditNoteHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req creditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.CustomerID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "customer_id is required")
		return
	}

	input := &service.CreateCreditNoteInput{
		TenantID:     tenantID,
		CreatedBy:    userID,
		CustomerID:   req.CustomerID,
		InvoiceID:    req.InvoiceID,
		Description:  req.Description,
		CreditAmount: req.CreditAmount,
		LineItems:    req.lineItems(),
		Process:      req.Process,
	}
	if req.CreditDate != nil {
		input.CreditDate = *req.CreditDate
	}

	note, err := h.creditNoteService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, note)
}

// List handles GET /api/v1/credit-notes
func (h *CreditNoteHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filter := port.CreditNoteFilter{
		Status: domain.CreditNoteStatus(c.Query("status")),
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
	if raw := c.Query("invoice_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
			return
		}
		filter.InvoiceID = &id
	}

	offset, limit := parsePagination(c)
	notes, total, err := h.creditNoteService.List(c.Request.Context(), tenantID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, notes, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/credit-notes/:id
func (h *CreditNoteHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	noteID, ok := parseIDParam(c, "id", "credit note")
	if !ok {
		return
	}

	note, err := h.creditNoteService.GetByID(c.Request.Context(), tenantID, noteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, note)
}

// EditState handles GET /api/v1/credit-notes/:id/edit-state
//
// Returns the note together with the normalized lines of its invoice and
// the persisted selections reconciled onto them, which is everything the
// edit form needs to render.
func (h *CreditNoteHandler) EditState(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	noteID, ok := parseIDParam(c, "id", "credit note")
	if !ok {
		return
	}

	state, err := h.creditNoteService.GetEditState(c.Request.Context(), tenantID, noteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, state)
}

// Update handles PUT /api/v1/credit-notes/:id
func (h *CreditNoteHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	noteID, ok := parseIDParam(c, "id", "credit note")
	if !ok {
		return
	}

	var req creditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	input := &service.UpdateCreditNoteInput{
		TenantID:     tenantID,
		NoteID:       noteID,
		Description:  req.Description,
		CreditAmount: req.CreditAmount,
		LineItems:    req.lineItems(),
	}
	if req.CreditDate != nil {
		input.CreditDate = *req.CreditDate
	}

	note, err := h.creditNoteService.Update(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, note)
}

// Process handles POST /api/v1/credit-notes/:id/process
func (h *CreditNoteHandler) Process(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	noteID, ok := parseIDParam(c, "id", "credit note")
	if !ok {
		return
	}

	note, err := h.creditNoteService.Process(c.Request.Context(), tenantID, noteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, note)
}

// Delete handles DELETE /api/v1/credit-notes/:id
func (h *CreditNoteHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	noteID, ok := parseIDParam(c, "id", "credit note")
	if !ok {
		return
	}

	if err := h.creditNoteService.Delete(c.Request.Context(), tenantID, noteID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
