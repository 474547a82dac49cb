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

func TestStatsService_Dashboard(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(statsRepo)

	tenantID := uuid.New()
	counts := &domain.DashboardStats{
		CustomerCount:    12,
		SupplierCount:    3,
		InvoiceCount:     40,
		OpenCreditNotes:  2,
		TotalInvoiced:    dec("10500.00"),
		TotalOutstanding: dec("1200.00"),
		TotalCredited:    dec("300.00"),
	}
	revenue := []domain.MonthlyTotal{
		{Month: "2026-08", Total: dec("2500.00")},
		{Month: "2026-09", Total: dec("1800.00")},
	}
	invoices := []domain.Invoice{{ID: uuid.New(), InvoiceNumber: "INV-00040"}}
	notes := []domain.CreditNote{{ID: uuid.New(), CreditNoteNumber: "CN-00002"}}

	statsRepo.On("Counts", mock.Anything, tenantID).Return(counts, nil)
	statsRepo.On("MonthlyRevenue", mock.Anything, tenantID, 6).Return(revenue, nil)
	statsRepo.On("RecentInvoices", mock.Anything, tenantID, 5).Return(invoices, nil)
	statsRepo.On("RecentCreditNotes", mock.Anything, tenantID, 5).Return(notes, nil)

	stats, err := svc.Dashboard(context.Background(), tenantID)

	assert.NoError(t, err)
	assert.Equal(t, 12, stats.CustomerCount)
	assert.Len(t, stats.MonthlyRevenue, 2)
	assert.Len(t, stats.RecentInvoices, 1)
	assert.Len(t, stats.RecentCreditNotes, 1)
	statsRepo.AssertExpectations(t)
}

func TestStatsService_Dashboard_CountsError(t *testing.T) {
	statsRepo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(statsRepo)

	tenantID := uuid.New()
	statsRepo.On("Counts", mock.Anything, tenantID).Return(nil, assert.AnError)

	stats, err := svc.Dashboard(context.Background(), tenantID)

	assert.Nil(t, stats)
	assert.Error(t, err)
}
