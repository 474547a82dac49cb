package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

// CreateCustomerInput is the DTO for creating a customer.
type CreateCustomerInput struct {
	TenantID  uuid.UUID
	Name      string
	Email     string
	Phone     string
	Address   string
	TaxNumber string
}

// UpdateCustomerInput is the DTO for updating a customer.
type UpdateCustomerInput struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	Name       string
	Email      string
	Phone      string
	Address    string
	TaxNumber  string
	IsActive   *bool
}

// CustomerService defines the customer management contract.
type CustomerService interface {
	Create(ctx context.Context, input *CreateCustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, input *UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, tenantID, customerID uuid.UUID) error
}

type customerService struct {
	customerRepo port.CustomerRepository
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(customerRepo port.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ctx context.Context, input *CreateCustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{
		TenantID:  input.TenantID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		TaxNumber: input.TaxNumber,
		IsActive:  true,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("customer.Create: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, tenantID, customerID)
}

func (s *customerService) List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error) {
	return s.customerRepo.List(ctx, tenantID, search, offset, limit)
}

func (s *customerService) Update(ctx context.Context, input *UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.TenantID, input.CustomerID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		customer.Name = input.Name
	}
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.TaxNumber = input.TaxNumber
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("customer.Update: %w", err)
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	return s.customerRepo.Delete(ctx, tenantID, customerID)
}
