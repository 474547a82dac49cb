package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

// CreateCatalogItemInput is the DTO for creating a catalog item.
type CreateCatalogItemInput struct {
	TenantID    uuid.UUID
	Kind        domain.CatalogKind
	Name        string
	SKU         string
	Description string
	UnitPrice   decimal.Decimal
}

// UpdateCatalogItemInput is the DTO for updating a catalog item.
type UpdateCatalogItemInput struct {
	TenantID    uuid.UUID
	ItemID      uuid.UUID
	Name        string
	SKU         string
	Description string
	UnitPrice   *decimal.Decimal
	IsActive    *bool
}

// CatalogService defines the catalog management contract.
type CatalogService interface {
	Create(ctx context.Context, input *CreateCatalogItemInput) (*domain.CatalogItem, error)
	GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.CatalogItem, error)
	List(ctx context.Context, tenantID uuid.UUID, kind domain.CatalogKind, search string, offset, limit int) ([]domain.CatalogItem, int, error)
	Update(ctx context.Context, input *UpdateCatalogItemInput) (*domain.CatalogItem, error)
	Delete(ctx context.Context, tenantID, itemID uuid.UUID) error
}

type catalogService struct {
	catalogRepo port.CatalogItemRepository
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(catalogRepo port.CatalogItemRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) Create(ctx context.Context, input *CreateCatalogItemInput) (*domain.CatalogItem, error) {
	if input.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidLineItem
	}

	item := &domain.CatalogItem{
		TenantID:    input.TenantID,
		Kind:        input.Kind,
		Name:        input.Name,
		SKU:         input.SKU,
		Description: input.Description,
		UnitPrice:   input.UnitPrice,
		IsActive:    true,
	}
	if err := s.catalogRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("catalog.Create: %w", err)
	}
	return item, nil
}

func (s *catalogService) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.CatalogItem, error) {
	return s.catalogRepo.GetByID(ctx, tenantID, itemID)
}

func (s *catalogService) List(ctx context.Context, tenantID uuid.UUID, kind domain.CatalogKind, search string, offset, limit int) ([]domain.CatalogItem, int, error) {
	return s.catalogRepo.List(ctx, tenantID, kind, search, offset, limit)
}

func (s *catalogService) Update(ctx context.Context, input *UpdateCatalogItemInput) (*domain.CatalogItem, error) {
	item, err := s.catalogRepo.GetByID(ctx, input.TenantID, input.ItemID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	item.SKU = input.SKU
	item.Description = input.Description
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidLineItem
		}
		item.UnitPrice = *input.UnitPrice
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.catalogRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("catalog.Update: %w", err)
	}
	return item, nil
}

func (s *catalogService) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	return s.catalogRepo.Delete(ctx, tenantID, itemID)
}
