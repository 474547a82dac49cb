package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizdesk/internal/domain"
)

// MockPurchaseOrderRepo is a mock implementation of port.PurchaseOrderRepository.
type MockPurchaseOrderRepo struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepo) Create(ctx context.Context, order *domain.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepo) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepo) List(ctx context.Context, tenantID uuid.UUID, supplierID *uuid.UUID, status domain.PurchaseOrderStatus, offset, limit int) ([]domain.PurchaseOrder, int, error) {
	args := m.Called(ctx, tenantID, supplierID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PurchaseOrder), args.Int(1), args.Error(2)
}

func (m *MockPurchaseOrderRepo) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status domain.PurchaseOrderStatus) error {
	args := m.Called(ctx, tenantID, orderID, status)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepo) LinkInvoice(ctx context.Context, tenantID, orderID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, tenantID, orderID, invoiceID)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepo) NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}
