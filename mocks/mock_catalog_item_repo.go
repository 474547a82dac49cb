package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizdesk/internal/domain"
)

// MockCatalogItemRepo is a mock implementation of port.CatalogItemRepository.
type MockCatalogItemRepo struct {
	mock.Mock
}

func (m *MockCatalogItemRepo) Create(ctx context.Context, item *domain.CatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCatalogItemRepo) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.CatalogItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogItemRepo) List(ctx context.Context, tenantID uuid.UUID, kind domain.CatalogKind, search string, offset, limit int) ([]domain.CatalogItem, int, error) {
	args := m.Called(ctx, tenantID, kind, search, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CatalogItem), args.Int(1), args.Error(2)
}

func (m *MockCatalogItemRepo) Update(ctx context.Context, item *domain.CatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCatalogItemRepo) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	args := m.Called(ctx, tenantID, itemID)
	return args.Error(0)
}
