package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bizdesk/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendCreditNoteIssued(ctx context.Context, toEmail, toName string, note *domain.CreditNote) error {
	args := m.Called(ctx, toEmail, toName, note)
	return args.Error(0)
}

func (m *MockEmailSender) SendInvoiceIssued(ctx context.Context, toEmail, toName string, invoice *domain.Invoice) error {
	args := m.Called(ctx, toEmail, toName, invoice)
	return args.Error(0)
}
