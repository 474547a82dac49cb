package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizdesk/internal/creditnote"
	"bizdesk/internal/domain"
	"bizdesk/internal/port"
	"bizdesk/internal/service"
)

// MockCreditNoteService is a mock implementation of service.CreditNoteService.
type MockCreditNoteService struct {
	mock.Mock
}

func (m *MockCreditNoteService) Create(ctx context.Context, input *service.CreateCreditNoteInput) (*domain.CreditNote, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteService) GetByID(ctx context.Context, tenantID, noteID uuid.UUID) (*domain.CreditNote, error) {
	args := m.Called(ctx, tenantID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteService) GetEditState(ctx context.Context, tenantID, noteID uuid.UUID) (*service.EditState, error) {
	args := m.Called(ctx, tenantID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EditState), args.Error(1)
}

func (m *MockCreditNoteService) List(ctx context.Context, tenantID uuid.UUID, filter port.CreditNoteFilter, offset, limit int) ([]domain.CreditNote, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CreditNote), args.Int(1), args.Error(2)
}

func (m *MockCreditNoteService) Update(ctx context.Context, input *service.UpdateCreditNoteInput) (*domain.CreditNote, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteService) Process(ctx context.Context, tenantID, noteID uuid.UUID) (*domain.CreditNote, error) {
	args := m.Called(ctx, tenantID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteService) Delete(ctx context.Context, tenantID, noteID uuid.UUID) error {
	args := m.Called(ctx, tenantID, noteID)
	return args.Error(0)
}

func (m *MockCreditNoteService) InvoiceLines(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]creditnote.Group, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]creditnote.Group), args.Error(1)
}
