package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bizdesk/internal/domain"
	"bizdesk/internal/service"
	"bizdesk/mocks"
)

type orderFixture struct {
	orderRepo    *mocks.MockPurchaseOrderRepo
	supplierRepo *mocks.MockSupplierRepo
	invoiceSvc   *mocks.MockInvoiceService
	svc          service.PurchaseOrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orderRepo:    new(mocks.MockPurchaseOrderRepo),
		supplierRepo: new(mocks.MockSupplierRepo),
		invoiceSvc:   new(mocks.MockInvoiceService),
	}
	f.svc = service.NewPurchaseOrderService(f.orderRepo, f.supplierRepo, f.invoiceSvc)
	return f
}

func TestPurchaseOrderService_Create_Totals(t *testing.T) {
	f := newOrderFixture()

	tenantID := uuid.New()
	supplierID := uuid.New()
	supplier := &domain.Supplier{ID: supplierID, TenantID: tenantID, Name: "Parts Co"}
	f.supplierRepo.On("GetByID", mock.Anything, tenantID, supplierID).Return(supplier, nil)
	f.orderRepo.On("NextNumber", mock.Anything, tenantID).Return("LPO-00003", nil)
	f.orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrder")).Return(nil)

	order, err := f.svc.Create(context.Background(), &service.CreatePurchaseOrderInput{
		TenantID:   tenantID,
		SupplierID: supplierID,
		Lines: []service.PurchaseOrderLineInput{
			{Description: "Steel brackets", Quantity: dec("10"), UnitPrice: dec("4.50")},
			{Description: "Delivery", Quantity: dec("1"), UnitPrice: dec("30.00")},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "LPO-00003", order.OrderNumber)
	assert.Equal(t, domain.PurchaseOrderStatusDraft, order.Status)
	assert.True(t, order.TotalAmount.Equal(dec("75.00")), "got %s", order.TotalAmount)
	assert.Equal(t, "Parts Co", order.SupplierName)
}

func TestPurchaseOrderService_Create_InvalidLine(t *testing.T) {
	f := newOrderFixture()

	tenantID := uuid.New()
	supplierID := uuid.New()
	supplier := &domain.Supplier{ID: supplierID, TenantID: tenantID, Name: "Parts Co"}
	f.supplierRepo.On("GetByID", mock.Anything, tenantID, supplierID).Return(supplier, nil)

	_, err := f.svc.Create(context.Background(), &service.CreatePurchaseOrderInput{
		TenantID:   tenantID,
		SupplierID: supplierID,
		Lines: []service.PurchaseOrderLineInput{
			{Description: "Bad line", Quantity: dec("-1"), UnitPrice: dec("4.50")},
		},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
}

func TestPurchaseOrderService_UpdateStatus_ConvertedLocked(t *testing.T) {
	f := newOrderFixture()

	tenantID := uuid.New()
	orderID := uuid.New()
	order := &domain.PurchaseOrder{
		ID: orderID, TenantID: tenantID, Status: domain.PurchaseOrderStatusConverted,
	}
	f.orderRepo.On("GetByID", mock.Anything, tenantID, orderID).Return(order, nil)

	err := f.svc.UpdateStatus(context.Background(), tenantID, orderID, domain.PurchaseOrderStatusCancelled)

	assert.ErrorIs(t, err, domain.ErrOrderAlreadyConverted)
}

func TestPurchaseOrderService_ConvertToInvoice_Success(t *testing.T) {
	f := newOrderFixture()

	tenantID := uuid.New()
	orderID := uuid.New()
	customerID := uuid.New()
	createdBy := uuid.New()
	order := &domain.PurchaseOrder{
		ID:          orderID,
		TenantID:    tenantID,
		OrderNumber: "LPO-00009",
		Status:      domain.PurchaseOrderStatusReceived,
		Notes:       "Urgent",
		Lines: []domain.PurchaseOrderLine{
			{Description: "Steel brackets", Quantity: dec("10"), UnitPrice: dec("4.50")},
		},
	}
	invoice := &domain.Invoice{ID: uuid.New(), TenantID: tenantID, InvoiceNumber: "INV-00010"}

	f.orderRepo.On("GetByID", mock.Anything, tenantID, orderID).Return(order, nil)
	f.invoiceSvc.On("Create", mock.Anything, mock.MatchedBy(func(in *service.CreateInvoiceInput) bool {
		return in.CustomerID == customerID &&
			in.Notes == "Urgent" &&
			len(in.Lines) == 1 &&
			in.Lines[0].Kind == string(domain.KindService) &&
			in.Lines[0].Note == "From order LPO-00009"
	})).Return(invoice, nil)
	f.orderRepo.On("LinkInvoice", mock.Anything, tenantID, orderID, invoice.ID).Return(nil)

	result, err := f.svc.ConvertToInvoice(context.Background(), &service.ConvertOrderInput{
		TenantID:   tenantID,
		OrderID:    orderID,
		CustomerID: customerID,
		CreatedBy:  createdBy,
	})

	assert.NoError(t, err)
	assert.Equal(t, invoice, result)
	f.orderRepo.AssertExpectations(t)
	f.invoiceSvc.AssertExpectations(t)
}

func TestPurchaseOrderService_ConvertToInvoice_NotReceived(t *testing.T) {
	f := newOrderFixture()

	tenantID := uuid.New()
	orderID := uuid.New()
	order := &domain.PurchaseOrder{
		ID: orderID, TenantID: tenantID, Status: domain.PurchaseOrderStatusSent,
	}
	f.orderRepo.On("GetByID", mock.Anything, tenantID, orderID).Return(order, nil)

	_, err := f.svc.ConvertToInvoice(context.Background(), &service.ConvertOrderInput{
		TenantID: tenantID,
		OrderID:  orderID,
	})

	assert.ErrorIs(t, err, domain.ErrOrderNotReceived)
	f.invoiceSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_ConvertToInvoice_AlreadyConverted(t *testing.T) {
	f := newOrderFixture()

	tenantID := uuid.New()
	orderID := uuid.New()
	order := &domain.PurchaseOrder{
		ID: orderID, TenantID: tenantID, Status: domain.PurchaseOrderStatusConverted,
	}
	f.orderRepo.On("GetByID", mock.Anything, tenantID, orderID).Return(order, nil)

	_, err := f.svc.ConvertToInvoice(context.Background(), &service.ConvertOrderInput{
		TenantID: tenantID,
		OrderID:  orderID,
	})

	assert.ErrorIs(t, err, domain.ErrOrderAlreadyConverted)
}
