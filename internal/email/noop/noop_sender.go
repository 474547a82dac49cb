package noop

import (
	"context"
	"log"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendCreditNoteIssued(_ context.Context, toEmail, toName string, note *domain.CreditNote) error {
	log.Printf("[NOOP EMAIL] Credit note %s (%s) issued to %s (%s)",
		note.CreditNoteNumber, note.CreditAmount.StringFixed(2), toName, toEmail)
	return nil
}

func (s *noopSender) SendInvoiceIssued(_ context.Context, toEmail, toName string, invoice *domain.Invoice) error {
	log.Printf("[NOOP EMAIL] Invoice %s (%s) issued to %s (%s)",
		invoice.InvoiceNumber, invoice.TotalAmount.StringFixed(2), toName, toEmail)
	return nil
}
