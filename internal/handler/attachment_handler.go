package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizdesk/internal/domain"
	"bizdesk/internal/service"
)

// AttachmentHandler handles attachment endpoints.
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

func parseReference(c *gin.Context) (domain.ReferenceType, bool) {
	refType := domain.ReferenceType(c.Param("refType"))
	switch refType {
	case domain.ReferenceInvoice, domain.ReferenceCreditNote, domain.ReferencePurchaseOrder:
		return refType, true
	}
	RespondError(c, http.StatusBadRequest, "INVALID_REFERENCE_TYPE", "reference type must be invoice, credit_note, or purchase_order")
	return "", false
}

// Upload handles POST /api/v1/attachments/:refType/:refID
func (h *AttachmentHandler) Upload(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	refType, ok := parseReference(c)
	if !ok {
		return
	}
	refID, ok := parseIDParam(c, "refID", "reference")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file form field is required")
		return
	}
	defer file.Close()

	att, err := h.attachmentService.Upload(c.Request.Context(), service.AttachmentUploadInput{
		TenantID:      tenantID,
		UploadedBy:    userID,
		ReferenceType: refType,
		ReferenceID:   refID,
		File:          file,
		Header:        header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, att)
}

// List handles GET /api/v1/attachments/:refType/:refID
func (h *AttachmentHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	refType, ok := parseReference(c)
	if !ok {
		return
	}
	refID, ok := parseIDParam(c, "refID", "reference")
	if !ok {
		return
	}

	atts, err := h.attachmentService.ListByReference(c.Request.Context(), tenantID, refType, refID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, atts)
}

// Download handles GET /api/v1/attachments/:refType/:refID/:id/download
func (h *AttachmentHandler) Download(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	attachmentID, ok := parseIDParam(c, "id", "attachment")
	if !ok {
		return
	}

	url, err := h.attachmentService.GetDownloadURL(c.Request.Context(), tenantID, attachmentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Delete handles DELETE /api/v1/attachments/:refType/:refID/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	attachmentID, ok := parseIDParam(c, "id", "attachment")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), tenantID, attachmentID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
