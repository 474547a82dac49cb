package export_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bizdesk/internal/domain"
	"bizdesk/internal/export"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestInvoiceRegister(t *testing.T) {
	invoices := []domain.Invoice{
		{
			ID:            uuid.New(),
			InvoiceNumber: "INV-00001",
			InvoiceDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			CustomerName:  "Acme Trading",
			Status:        domain.InvoiceStatusSent,
			TotalAmount:   dec("540.00"),
			AmountPaid:    dec("100.00"),
		},
	}

	buf, err := export.InvoiceRegister(invoices)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Invoice No", rows[0][0])
	assert.Equal(t, "INV-00001", rows[1][0])
	assert.Equal(t, "2026-03-15", rows[1][1])
	assert.Equal(t, "Acme Trading", rows[1][2])
	assert.Equal(t, "sent", rows[1][3])
	assert.Equal(t, "540", rows[1][4])
	// Outstanding = total - paid
	assert.Equal(t, "440", rows[1][6])
}

func TestCreditNoteRegister(t *testing.T) {
	notes := []domain.CreditNote{
		{
			ID:               uuid.New(),
			CreditNoteNumber: "CN-00004",
			CreditDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			CustomerName:     "Acme Trading",
			Status:           domain.CreditNoteStatusOpen,
			CreditAmount:     dec("75.50"),
		},
	}

	buf, err := export.CreditNoteRegister(notes)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Credit Notes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CN-00004", rows[1][0])
	assert.Equal(t, "75.5", rows[1][4])
}

func TestInvoiceRegister_Empty(t *testing.T) {
	buf, err := export.InvoiceRegister(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
