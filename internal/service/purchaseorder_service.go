package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

// PurchaseOrderLineInput is one row on a purchase order request.
type PurchaseOrderLineInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderInput is the DTO for creating a purchase order.
type CreatePurchaseOrderInput struct {
	TenantID   uuid.UUID
	CreatedBy  uuid.UUID
	SupplierID uuid.UUID
	OrderDate  time.Time
	Notes      string
	Lines      []PurchaseOrderLineInput
}

// ConvertOrderInput is the DTO for converting a received order into an
// invoice billed to a customer.
type ConvertOrderInput struct {
	TenantID   uuid.UUID
	CreatedBy  uuid.UUID
	OrderID    uuid.UUID
	CustomerID uuid.UUID
}

// PurchaseOrderService defines the purchase-order management contract.
type PurchaseOrderService interface {
	Create(ctx context.Context, input *CreatePurchaseOrderInput) (*domain.PurchaseOrder, error)
	GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.PurchaseOrder, error)
	List(ctx context.Context, tenantID uuid.UUID, supplierID *uuid.UUID, status domain.PurchaseOrderStatus, offset, limit int) ([]domain.PurchaseOrder, int, error)
	UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status domain.PurchaseOrderStatus) error
	ConvertToInvoice(ctx context.Context, input *ConvertOrderInput) (*domain.Invoice, error)
}

type purchaseOrderService struct {
	orderRepo    port.PurchaseOrderRepository
	supplierRepo port.SupplierRepository
	invoiceSvc   InvoiceService
}

// NewPurchaseOrderService creates a new PurchaseOrderService implementation.
func NewPurchaseOrderService(
	orderRepo port.PurchaseOrderRepository,
	supplierRepo port.SupplierRepository,
	invoiceSvc InvoiceService,
) PurchaseOrderService {
	return &purchaseOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		invoiceSvc:   invoiceSvc,
	}
}

func (s *purchaseOrderService) Create(ctx context.Context, input *CreatePurchaseOrderInput) (*domain.PurchaseOrder, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.TenantID, input.SupplierID)
	if err != nil {
		return nil, err
	}

	order := &domain.PurchaseOrder{
		TenantID:   input.TenantID,
		SupplierID: input.SupplierID,
		OrderDate:  input.OrderDate,
		Status:     domain.PurchaseOrderStatusDraft,
		Notes:      input.Notes,
		CreatedBy:  input.CreatedBy,
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}

	total := decimal.Zero
	for _, in := range input.Lines {
		if in.Quantity.LessThanOrEqual(decimal.Zero) || in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidLineItem
		}
		line := domain.PurchaseOrderLine{
			Description: in.Description,
			Quantity:    in.Quantity.Round(3),
			UnitPrice:   in.UnitPrice.Round(2),
		}
		total = total.Add(line.Quantity.Mul(line.UnitPrice))
		order.Lines = append(order.Lines, line)
	}
	order.TotalAmount = total.Round(2)

	number, err := s.orderRepo.NextNumber(ctx, input.TenantID)
	if err != nil {
		return nil, fmt.Errorf("purchaseOrder.Create: %w", err)
	}
	order.OrderNumber = number

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("purchaseOrder.Create: %w", err)
	}

	order.SupplierName = supplier.Name
	return order, nil
}

func (s *purchaseOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.PurchaseOrder, error) {
	return s.orderRepo.GetByID(ctx, tenantID, orderID)
}

func (s *purchaseOrderService) List(ctx context.Context, tenantID uuid.UUID, supplierID *uuid.UUID, status domain.PurchaseOrderStatus, offset, limit int) ([]domain.PurchaseOrder, int, error) {
	return s.orderRepo.List(ctx, tenantID, supplierID, status, offset, limit)
}

func (s *purchaseOrderService) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status domain.PurchaseOrderStatus) error {
	order, err := s.orderRepo.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return err
	}
	if order.Status == domain.PurchaseOrderStatusConverted {
		return domain.ErrOrderAlreadyConverted
	}
	return s.orderRepo.UpdateStatus(ctx, tenantID, orderID, status)
}

// ConvertToInvoice bills a received order on to a customer: the order
// lines become service lines on a new invoice and the order is marked
// converted with a link to it.
func (s *purchaseOrderService) ConvertToInvoice(ctx context.Context, input *ConvertOrderInput) (*domain.Invoice, error) {
	order, err := s.orderRepo.GetByID(ctx, input.TenantID, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.PurchaseOrderStatusConverted {
		return nil, domain.ErrOrderAlreadyConverted
	}
	if order.Status != domain.PurchaseOrderStatusReceived {
		return nil, domain.ErrOrderNotReceived
	}

	lines := lo.Map(order.Lines, func(line domain.PurchaseOrderLine, _ int) InvoiceLineInput {
		return InvoiceLineInput{
			Kind:      string(domain.KindService),
			Name:      line.Description,
			Note:      fmt.Sprintf("From order %s", order.OrderNumber),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	})

	invoice, err := s.invoiceSvc.Create(ctx, &CreateInvoiceInput{
		TenantID:   input.TenantID,
		CreatedBy:  input.CreatedBy,
		CustomerID: input.CustomerID,
		Notes:      order.Notes,
		Lines:      lines,
	})
	if err != nil {
		return nil, fmt.Errorf("purchaseOrder.ConvertToInvoice: %w", err)
	}

	if err := s.orderRepo.LinkInvoice(ctx, input.TenantID, order.ID, invoice.ID); err != nil {
		return nil, fmt.Errorf("purchaseOrder.ConvertToInvoice: %w", err)
	}
	return invoice, nil
}
