package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

// CreateSupplierInput is the DTO for creating a supplier.
type CreateSupplierInput struct {
	TenantID      uuid.UUID
	Name          string
	Email         string
	Phone         string
	Address       string
	ContactPerson string
}

// UpdateSupplierInput is the DTO for updating a supplier.
type UpdateSupplierInput struct {
	TenantID      uuid.UUID
	SupplierID    uuid.UUID
	Name          string
	Email         string
	Phone         string
	Address       string
	ContactPerson string
	IsActive      *bool
}

// SupplierService defines the supplier management contract.
type SupplierService interface {
	Create(ctx context.Context, input *CreateSupplierInput) (*domain.Supplier, error)
	GetByID(ctx context.Context, tenantID, supplierID uuid.UUID) (*domain.Supplier, error)
	List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Supplier, int, error)
	Update(ctx context.Context, input *UpdateSupplierInput) (*domain.Supplier, error)
	Delete(ctx context.Context, tenantID, supplierID uuid.UUID) error
}

type supplierService struct {
	supplierRepo port.SupplierRepository
}

// NewSupplierService creates a new SupplierService implementation.
func NewSupplierService(supplierRepo port.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) Create(ctx context.Context, input *CreateSupplierInput) (*domain.Supplier, error) {
	supplier := &domain.Supplier{
		TenantID:      input.TenantID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		ContactPerson: input.ContactPerson,
		IsActive:      true,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("supplier.Create: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) GetByID(ctx context.Context, tenantID, supplierID uuid.UUID) (*domain.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, tenantID, supplierID)
}

func (s *supplierService) List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Supplier, int, error) {
	return s.supplierRepo.List(ctx, tenantID, search, offset, limit)
}

func (s *supplierService) Update(ctx context.Context, input *UpdateSupplierInput) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.TenantID, input.SupplierID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		supplier.Name = input.Name
	}
	supplier.Email = input.Email
	supplier.Phone = input.Phone
	supplier.Address = input.Address
	supplier.ContactPerson = input.ContactPerson
	if input.IsActive != nil {
		supplier.IsActive = *input.IsActive
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("supplier.Update: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) Delete(ctx context.Context, tenantID, supplierID uuid.UUID) error {
	return s.supplierRepo.Delete(ctx, tenantID, supplierID)
}
