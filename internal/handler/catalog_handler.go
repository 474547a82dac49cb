package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"bizdesk/internal/domain"
	"bizdesk/internal/service"
)

// CatalogHandler handles catalog item endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Create handles POST /api/v1/catalog
func (h *CatalogHandler) Create(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Kind        string          `json:"kind" binding:"required,oneof=product service"`
		Name        string          `json:"name" binding:"required"`
		SKU         string          `json:"sku"`
		Description string          `json:"description"`
		UnitPrice   decimal.Decimal `json:"unit_price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.catalogService.Create(c.Request.Context(), &service.CreateCatalogItemInput{
		TenantID:    tenantID,
		Kind:        domain.CatalogKind(req.Kind),
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// List handles GET /api/v1/catalog
func (h *CatalogHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	kind := domain.CatalogKind(c.Query("kind"))

	items, total, err := h.catalogService.List(c.Request.Context(), tenantID, kind, c.Query("search"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/catalog/:id
func (h *CatalogHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id", "catalog item")
	if !ok {
		return
	}

	item, err := h.catalogService.GetByID(c.Request.Context(), tenantID, itemID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Update handles PUT /api/v1/catalog/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id", "catalog item")
	if !ok {
		return
	}

	var req struct {
		Name        string           `json:"name"`
		SKU         string           `json:"sku"`
		Description string           `json:"description"`
		UnitPrice   *decimal.Decimal `json:"unit_price"`
		IsActive    *bool            `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.catalogService.Update(c.Request.Context(), &service.UpdateCatalogItemInput{
		TenantID:    tenantID,
		ItemID:      itemID,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		IsActive:    req.IsActive,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Delete handles DELETE /api/v1/catalog/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id", "catalog item")
	if !ok {
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), tenantID, itemID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
