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

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

// InvoiceLineInput is one product or service row on an invoice request.
type InvoiceLineInput struct {
	CatalogItemID  *uuid.UUID      `json:"catalog_item_id"`
	Kind           string          `json:"kind" binding:"required,oneof=product service"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Note           string          `json:"note"`
	AdditionalNote string          `json:"additional_note"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"price"`
}

// InvoiceCreditLineInput is one inline credit row on an invoice request.
type InvoiceCreditLineInput struct {
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

// CreateInvoiceInput is the DTO for creating an invoice.
type CreateInvoiceInput struct {
	TenantID    uuid.UUID
	CreatedBy   uuid.UUID
	CustomerID  uuid.UUID
	InvoiceDate time.Time
	DueDate     *time.Time
	Notes       string
	Lines       []InvoiceLineInput
	CreditLines []InvoiceCreditLineInput
}

// InvoiceService defines the invoice management contract.
type InvoiceService interface {
	Create(ctx context.Context, input *CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	GetDetail(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	Send(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	Void(ctx context.Context, tenantID, invoiceID uuid.UUID) error
}

type invoiceService struct {
	invoiceRepo  port.InvoiceRepository
	customerRepo port.CustomerRepository
	catalogRepo  port.CatalogItemRepository
	emailSender  port.EmailSender
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	customerRepo port.CustomerRepository,
	catalogRepo port.CatalogItemRepository,
	emailSender port.EmailSender,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		catalogRepo:  catalogRepo,
		emailSender:  emailSender,
	}
}

func (s *invoiceService) Create(ctx context.Context, input *CreateInvoiceInput) (*domain.Invoice, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.TenantID, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, domain.ErrCustomerInactive
	}

	invoice := &domain.Invoice{
		TenantID:    input.TenantID,
		CustomerID:  input.CustomerID,
		InvoiceDate: input.InvoiceDate,
		DueDate:     input.DueDate,
		Status:      domain.InvoiceStatusDraft,
		Notes:       input.Notes,
		AmountPaid:  decimal.Zero,
		CreatedBy:   input.CreatedBy,
	}
	if invoice.InvoiceDate.IsZero() {
		invoice.InvoiceDate = time.Now().UTC()
	}

	for _, in := range input.Lines {
		line, err := s.buildItemLine(ctx, input.TenantID, in)
		if err != nil {
			return nil, err
		}
		if line.Kind == domain.KindService {
			invoice.Services = append(invoice.Services, line)
		} else {
			invoice.Products = append(invoice.Products, line)
		}
	}
	invoice.Credits = lo.Map(input.CreditLines, func(in InvoiceCreditLineInput, _ int) domain.InvoiceCreditLine {
		return domain.InvoiceCreditLine{
			Title:  in.Title,
			Amount: in.Amount.Round(2),
			Note:   in.Note,
		}
	})

	invoice.TotalAmount = invoiceTotal(invoice)
	if invoice.TotalAmount.IsNegative() {
		return nil, domain.ErrNonPositiveAmount
	}

	number, err := s.invoiceRepo.NextNumber(ctx, input.TenantID)
	if err != nil {
		return nil, fmt.Errorf("invoice.Create: %w", err)
	}
	invoice.InvoiceNumber = number

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("invoice.Create: %w", err)
	}

	invoice.CustomerName = customer.Name
	return invoice, nil
}

// buildItemLine resolves a catalog reference when present, letting the
// request override name and price for ad-hoc adjustments.
func (s *invoiceService) buildItemLine(ctx context.Context, tenantID uuid.UUID, in InvoiceLineInput) (domain.InvoiceItemLine, error) {
	line := domain.InvoiceItemLine{
		CatalogItemID:  in.CatalogItemID,
		Kind:           domain.CatalogKind(in.Kind),
		Name:           in.Name,
		SKU:            in.SKU,
		Note:           in.Note,
		AdditionalNote: in.AdditionalNote,
		Quantity:       in.Quantity,
		UnitPrice:      in.UnitPrice,
	}

	if in.CatalogItemID != nil {
		item, err := s.catalogRepo.GetByID(ctx, tenantID, *in.CatalogItemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return line, domain.ErrInvalidLineItem
			}
			return line, fmt.Errorf("invoice.buildItemLine: %w", err)
		}
		line.Kind = item.Kind
		if line.Name == "" {
			line.Name = item.Name
		}
		if line.SKU == "" {
			line.SKU = item.SKU
		}
		if line.UnitPrice.IsZero() {
			line.UnitPrice = item.UnitPrice
		}
	}

	if line.Quantity.LessThanOrEqual(decimal.Zero) || line.UnitPrice.IsNegative() {
		return line, domain.ErrInvalidLineItem
	}
	line.Quantity = line.Quantity.Round(3)
	line.UnitPrice = line.UnitPrice.Round(2)
	return line, nil
}

// invoiceTotal sums item lines and subtracts inline credits, rounded to
// 2 decimals.
func invoiceTotal(invoice *domain.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, line := range invoice.Products {
		total = total.Add(line.Quantity.Mul(line.UnitPrice))
	}
	for _, line := range invoice.Services {
		total = total.Add(line.Quantity.Mul(line.UnitPrice))
	}
	for _, line := range invoice.Credits {
		total = total.Sub(line.Amount)
	}
	return total.Round(2)
}

func (s *invoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
}

func (s *invoiceService) GetDetail(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetDetail(ctx, tenantID, invoiceID)
}

func (s *invoiceService) List(ctx context.Context, tenantID uuid.UUID, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.List(ctx, tenantID, filter, offset, limit)
}

// Send marks a draft invoice sent and emails the customer. Email failure
// does not roll back the status change.
func (s *invoiceService) Send(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		return invoice, nil
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, tenantID, invoiceID, domain.InvoiceStatusSent); err != nil {
		return nil, fmt.Errorf("invoice.Send: %w", err)
	}
	invoice.Status = domain.InvoiceStatusSent

	customer, err := s.customerRepo.GetByID(ctx, tenantID, invoice.CustomerID)
	if err == nil && customer.Email != "" {
		if err := s.emailSender.SendInvoiceIssued(ctx, customer.Email, customer.Name, invoice); err != nil {
			log.Printf("invoice.Send: email for %s failed: %v", invoice.InvoiceNumber, err)
		}
	}
	return invoice, nil
}

// Void refuses invoices that credit notes were issued against.
func (s *invoiceService) Void(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	count, err := s.invoiceRepo.CountCreditNotes(ctx, tenantID, invoiceID)
	if err != nil {
		return fmt.Errorf("invoice.Void: %w", err)
	}
	if count > 0 {
		return domain.ErrInvoiceHasCreditNotes
	}
	return s.invoiceRepo.UpdateStatus(ctx, tenantID, invoiceID, domain.InvoiceStatusVoid)
}
