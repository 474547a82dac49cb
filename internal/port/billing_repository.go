package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bizdesk/internal/domain"
)

// InvoiceFilter narrows invoice list queries.
type InvoiceFilter struct {
	CustomerID *uuid.UUID
	Status     domain.InvoiceStatus
	Search     string
}

// InvoiceRepository defines the contract for invoice persistence.
// GetDetail loads the invoice with its line collections split by kind,
// which is the shape the credit-note reconciliation consumes.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	GetDetail(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	UpdateStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, status domain.InvoiceStatus) error
	ApplyCredit(ctx context.Context, tenantID, invoiceID uuid.UUID, amount decimal.Decimal) error
	CountCreditNotes(ctx context.Context, tenantID, invoiceID uuid.UUID) (int, error)
	NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// CreditNoteFilter narrows credit-note list queries.
type CreditNoteFilter struct {
	CustomerID *uuid.UUID
	InvoiceID  *uuid.UUID
	Status     domain.CreditNoteStatus
	Search     string
}

// CreditNoteRepository defines the contract for credit-note persistence.
// Create and Update persist the note together with its line items in one
// transaction.
type CreditNoteRepository interface {
	Create(ctx context.Context, note *domain.CreditNote) error
	GetByID(ctx context.Context, tenantID, noteID uuid.UUID) (*domain.CreditNote, error)
	List(ctx context.Context, tenantID uuid.UUID, filter CreditNoteFilter, offset, limit int) ([]domain.CreditNote, int, error)
	Update(ctx context.Context, note *domain.CreditNote) error
	MarkProcessed(ctx context.Context, tenantID, noteID uuid.UUID) error
	Delete(ctx context.Context, tenantID, noteID uuid.UUID) error
	NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// PurchaseOrderRepository defines the contract for purchase-order (LPO)
// persistence.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *domain.PurchaseOrder) error
	GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.PurchaseOrder, error)
	List(ctx context.Context, tenantID uuid.UUID, supplierID *uuid.UUID, status domain.PurchaseOrderStatus, offset, limit int) ([]domain.PurchaseOrder, int, error)
	UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status domain.PurchaseOrderStatus) error
	LinkInvoice(ctx context.Context, tenantID, orderID, invoiceID uuid.UUID) error
	NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// StatsRepository defines the contract for dashboard aggregates.
type StatsRepository interface {
	Counts(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardStats, error)
	MonthlyRevenue(ctx context.Context, tenantID uuid.UUID, months int) ([]domain.MonthlyTotal, error)
	RecentInvoices(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.Invoice, error)
	RecentCreditNotes(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.CreditNote, error)
}

// AttachmentRepository defines the contract for attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.Attachment) error
	GetByID(ctx context.Context, tenantID, attachmentID uuid.UUID) (*domain.Attachment, error)
	ListByReference(ctx context.Context, tenantID uuid.UUID, refType domain.ReferenceType, refID uuid.UUID) ([]domain.Attachment, error)
	Delete(ctx context.Context, tenantID, attachmentID uuid.UUID) error
}
