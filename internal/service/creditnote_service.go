package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"bizdesk/internal/creditnote"
	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

// CreateCreditNoteInput is the DTO for creating a credit note.
type CreateCreditNoteInput struct {
	TenantID     uuid.UUID
	CreatedBy    uuid.UUID
	CustomerID   uuid.UUID
	InvoiceID    *uuid.UUID
	CreditDate   time.Time
	Description  string
	CreditAmount decimal.Decimal
	LineItems    []creditnote.LineItemInput
	Process      bool
}

// UpdateCreditNoteInput is the DTO for updating an open credit note.
type UpdateCreditNoteInput struct {
	TenantID     uuid.UUID
	NoteID       uuid.UUID
	CreditDate   time.Time
	Description  string
	CreditAmount decimal.Decimal
	LineItems    []creditnote.LineItemInput
}

// EditState is what the edit form needs to rebuild a credit note: the
// normalized line groups of the linked invoice with the persisted
// selections already applied.
type EditState struct {
	Note      *domain.CreditNote `json:"credit_note"`
	Invoice   *domain.Invoice    `json:"invoice,omitempty"`
	Groups    []creditnote.Group `json:"groups,omitempty"`
	Selection []creditnote.Entry `json:"selection,omitempty"`
}

// CreditNoteService defines the credit-note management contract.
type CreditNoteService interface {
	Create(ctx context.Context, input *CreateCreditNoteInput) (*domain.CreditNote, error)
	GetByID(ctx context.Context, tenantID, noteID uuid.UUID) (*domain.CreditNote, error)
	GetEditState(ctx context.Context, tenantID, noteID uuid.UUID) (*EditState, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.CreditNoteFilter, offset, limit int) ([]domain.CreditNote, int, error)
	Update(ctx context.Context, input *UpdateCreditNoteInput) (*domain.CreditNote, error)
	Process(ctx context.Context, tenantID, noteID uuid.UUID) (*domain.CreditNote, error)
	Delete(ctx context.Context, tenantID, noteID uuid.UUID) error
	InvoiceLines(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]creditnote.Group, error)
}

type creditNoteService struct {
	noteRepo     port.CreditNoteRepository
	invoiceRepo  port.InvoiceRepository
	customerRepo port.CustomerRepository
	emailSender  port.EmailSender
}

// NewCreditNoteService creates a new CreditNoteService implementation.
func NewCreditNoteService(
	noteRepo port.CreditNoteRepository,
	invoiceRepo port.InvoiceRepository,
	customerRepo port.CustomerRepository,
	emailSender port.EmailSender,
) CreditNoteService {
	return &creditNoteService{
		noteRepo:     noteRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		emailSender:  emailSender,
	}
}

// reconcile fetches the linked invoice when one is given and runs the
// submitted rows through the same reconciliation the edit form uses. The
// returned submission carries the effective credit amount.
func (s *creditNoteService) reconcile(ctx context.Context, tenantID uuid.UUID, invoiceID *uuid.UUID, items []creditnote.LineItemInput, manualAmount decimal.Decimal) (*creditnote.Submission, *domain.Invoice, error) {
	var inv *domain.Invoice
	id := uuid.Nil
	if invoiceID != nil {
		var err error
		inv, err = s.invoiceRepo.GetDetail(ctx, tenantID, *invoiceID)
		if err != nil {
			return nil, nil, err
		}
		id = *invoiceID
	}

	sub, err := creditnote.ReconcileSubmission(id, inv, items, manualAmount)
	if err != nil {
		return nil, nil, err
	}
	if inv != nil && sub.CreditAmount.GreaterThan(inv.TotalAmount) {
		return nil, nil, domain.ErrCreditExceedsInvoice
	}
	return sub, inv, nil
}

func (s *creditNoteService) Create(ctx context.Context, input *CreateCreditNoteInput) (*domain.CreditNote, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.TenantID, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, domain.ErrCustomerInactive
	}

	sub, _, err := s.reconcile(ctx, input.TenantID, input.InvoiceID, input.LineItems, input.CreditAmount)
	if err != nil {
		return nil, err
	}

	number, err := s.noteRepo.NextNumber(ctx, input.TenantID)
	if err != nil {
		return nil, fmt.Errorf("creditNote.Create: %w", err)
	}

	note := &domain.CreditNote{
		TenantID:         input.TenantID,
		CustomerID:       input.CustomerID,
		InvoiceID:        input.InvoiceID,
		CreditNoteNumber: number,
		CreditDate:       input.CreditDate,
		Description:      input.Description,
		CreditAmount:     sub.CreditAmount,
		Status:           domain.CreditNoteStatusOpen,
		CreatedBy:        input.CreatedBy,
		LineItems:        submissionLines(sub),
	}
	if note.CreditDate.IsZero() {
		note.CreditDate = time.Now().UTC()
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("creditNote.Create: %w", err)
	}

	if input.Process {
		processed, err := s.Process(ctx, input.TenantID, note.ID)
		if err != nil {
			return nil, err
		}
		note = processed
	}

	if customer.Email != "" {
		if err := s.emailSender.SendCreditNoteIssued(ctx, customer.Email, customer.Name, note); err != nil {
			log.Printf("creditNote.Create: email for %s failed: %v", note.CreditNoteNumber, err)
		}
	}

	note.CustomerName = customer.Name
	return note, nil
}

func submissionLines(sub *creditnote.Submission) []domain.CreditNoteLineItem {
	return lo.Map(sub.LineItems, func(li creditnote.SubmissionLineItem, _ int) domain.CreditNoteLineItem {
		return domain.CreditNoteLineItem{
			ItemID:    li.ItemID,
			ItemType:  li.ItemType,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		}
	})
}

func (s *creditNoteService) GetByID(ctx context.Context, tenantID, noteID uuid.UUID) (*domain.CreditNote, error) {
	return s.noteRepo.GetByID(ctx, tenantID, noteID)
}

// GetEditState rebuilds the edit form state for an open note: the linked
// invoice is re-fetched, normalized, and the persisted line items are
// reconciled back onto the current invoice lines. Persisted rows the
// invoice no longer carries are dropped silently.
func (s *creditNoteService) GetEditState(ctx context.Context, tenantID, noteID uuid.UUID) (*EditState, error) {
	note, err := s.noteRepo.GetByID(ctx, tenantID, noteID)
	if err != nil {
		return nil, err
	}

	state := &EditState{Note: note}
	if note.InvoiceID == nil {
		return state, nil
	}

	inv, err := s.invoiceRepo.GetDetail(ctx, tenantID, *note.InvoiceID)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return state, nil
		}
		return nil, fmt.Errorf("creditNote.GetEditState: %w", err)
	}

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(*note.InvoiceID)
	ed.SetEditingRecord(note.LineItems)
	if err := ed.ApplyInvoiceDetail(gen, inv); err != nil {
		return nil, fmt.Errorf("creditNote.GetEditState: %w", err)
	}

	state.Invoice = inv
	state.Groups = ed.Groups()
	state.Selection = ed.Selection().Entries()
	return state, nil
}

func (s *creditNoteService) List(ctx context.Context, tenantID uuid.UUID, filter port.CreditNoteFilter, offset, limit int) ([]domain.CreditNote, int, error) {
	return s.noteRepo.List(ctx, tenantID, filter, offset, limit)
}

func (s *creditNoteService) Update(ctx context.Context, input *UpdateCreditNoteInput) (*domain.CreditNote, error) {
	note, err := s.noteRepo.GetByID(ctx, input.TenantID, input.NoteID)
	if err != nil {
		return nil, err
	}
	switch note.Status {
	case domain.CreditNoteStatusProcessed:
		return nil, domain.ErrCreditNoteProcessed
	case domain.CreditNoteStatusVoid:
		return nil, domain.ErrCreditNoteVoid
	}

	sub, _, err := s.reconcile(ctx, input.TenantID, note.InvoiceID, input.LineItems, input.CreditAmount)
	if err != nil {
		return nil, err
	}

	if !input.CreditDate.IsZero() {
		note.CreditDate = input.CreditDate
	}
	note.Description = input.Description
	note.CreditAmount = sub.CreditAmount
	note.LineItems = submissionLines(sub)

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("creditNote.Update: %w", err)
	}
	return note, nil
}

// Process applies an open note against its invoice and marks it
// processed. Notes without an invoice only change status; the credit
// stays on the customer account.
func (s *creditNoteService) Process(ctx context.Context, tenantID, noteID uuid.UUID) (*domain.CreditNote, error) {
	note, err := s.noteRepo.GetByID(ctx, tenantID, noteID)
	if err != nil {
		return nil, err
	}
	switch note.Status {
	case domain.CreditNoteStatusProcessed:
		return nil, domain.ErrCreditNoteProcessed
	case domain.CreditNoteStatusVoid:
		return nil, domain.ErrCreditNoteVoid
	}

	if note.InvoiceID != nil {
		if err := s.invoiceRepo.ApplyCredit(ctx, tenantID, *note.InvoiceID, note.CreditAmount); err != nil {
			return nil, fmt.Errorf("creditNote.Process: %w", err)
		}
	}
	if err := s.noteRepo.MarkProcessed(ctx, tenantID, noteID); err != nil {
		return nil, fmt.Errorf("creditNote.Process: %w", err)
	}

	now := time.Now().UTC()
	note.Status = domain.CreditNoteStatusProcessed
	note.ProcessedAt = &now
	return note, nil
}

func (s *creditNoteService) Delete(ctx context.Context, tenantID, noteID uuid.UUID) error {
	note, err := s.noteRepo.GetByID(ctx, tenantID, noteID)
	if err != nil {
		return err
	}
	if note.Status == domain.CreditNoteStatusProcessed {
		return domain.ErrCreditNoteProcessed
	}
	return s.noteRepo.Delete(ctx, tenantID, noteID)
}

// InvoiceLines returns the normalized, grouped line items of an invoice,
// the shape the credit-note form renders its checkboxes from.
func (s *creditNoteService) InvoiceLines(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]creditnote.Group, error) {
	inv, err := s.invoiceRepo.GetDetail(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	return creditnote.Normalize(inv), nil
}
