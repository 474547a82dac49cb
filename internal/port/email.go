package port

import (
	"context"

	"bizdesk/internal/domain"
)

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	// SendCreditNoteIssued notifies a customer that a credit note was
	// issued against their account.
	SendCreditNoteIssued(ctx context.Context, toEmail, toName string, note *domain.CreditNote) error
	// SendInvoiceIssued notifies a customer that an invoice was issued.
	SendInvoiceIssued(ctx context.Context, toEmail, toName string, invoice *domain.Invoice) error
}
