package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
	"bizdesk/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles register download endpoints.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Invoices handles GET /api/v1/exports/invoices
func (h *ExportHandler) Invoices(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filter := port.InvoiceFilter{
		Status: domain.InvoiceStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	buf, err := h.exportService.InvoiceRegister(c.Request.Context(), tenantID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	name := fmt.Sprintf("invoices-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// CreditNotes handles GET /api/v1/exports/credit-notes
func (h *ExportHandler) CreditNotes(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filter := port.CreditNoteFilter{
		Status: domain.CreditNoteStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	buf, err := h.exportService.CreditNoteRegister(c.Request.Context(), tenantID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	name := fmt.Sprintf("credit-notes-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
