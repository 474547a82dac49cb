package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"bizdesk/internal/export"
	"bizdesk/internal/port"
)

// Export list queries are not paginated; cap the row count instead.
const exportLimit = 10000

// ExportService builds downloadable registers.
type ExportService interface {
	InvoiceRegister(ctx context.Context, tenantID uuid.UUID, filter port.InvoiceFilter) (*bytes.Buffer, error)
	CreditNoteRegister(ctx context.Context, tenantID uuid.UUID, filter port.CreditNoteFilter) (*bytes.Buffer, error)
}

type exportService struct {
	invoiceRepo port.InvoiceRepository
	noteRepo    port.CreditNoteRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(invoiceRepo port.InvoiceRepository, noteRepo port.CreditNoteRepository) ExportService {
	return &exportService{invoiceRepo: invoiceRepo, noteRepo: noteRepo}
}

func (s *exportService) InvoiceRegister(ctx context.Context, tenantID uuid.UUID, filter port.InvoiceFilter) (*bytes.Buffer, error) {
	invoices, _, err := s.invoiceRepo.List(ctx, tenantID, filter, 0, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("export.InvoiceRegister: %w", err)
	}
	return export.InvoiceRegister(invoices)
}

func (s *exportService) CreditNoteRegister(ctx context.Context, tenantID uuid.UUID, filter port.CreditNoteFilter) (*bytes.Buffer, error) {
	notes, _, err := s.noteRepo.List(ctx, tenantID, filter, 0, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("export.CreditNoteRegister: %w", err)
	}
	return export.CreditNoteRegister(notes)
}
