package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

// MockCreditNoteRepo is a mock implementation of port.CreditNoteRepository.
type MockCreditNoteRepo struct {
	mock.Mock
}

func (m *MockCreditNoteRepo) Create(ctx context.Context, note *domain.CreditNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockCreditNoteRepo) GetByID(ctx context.Context, tenantID, noteID uuid.UUID) (*domain.CreditNote, error) {
	args := m.Called(ctx, tenantID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.CreditNoteFilter, offset, limit int) ([]domain.CreditNote, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CreditNote), args.Int(1), args.Error(2)
}

func (m *MockCreditNoteRepo) Update(ctx context.Context, note *domain.CreditNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockCreditNoteRepo) MarkProcessed(ctx context.Context, tenantID, noteID uuid.UUID) error {
	args := m.Called(ctx, tenantID, noteID)
	return args.Error(0)
}

func (m *MockCreditNoteRepo) Delete(ctx context.Context, tenantID, noteID uuid.UUID) error {
	args := m.Called(ctx, tenantID, noteID)
	return args.Error(0)
}

func (m *MockCreditNoteRepo) NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}
