package creditnote_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdesk/internal/creditnote"
	"bizdesk/internal/domain"
)

// Scenario: one product line {qty 5, price 10}, toggled on, credits the
// full 50; reducing the quantity to 2 credits 20.
func TestEditor_ProductCreditFlow(t *testing.T) {
	inv := &domain.Invoice{
		ID: uuid.New(),
		Products: []domain.InvoiceItemLine{
			itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10"),
		},
	}
	key := inv.Products[0].ID.String()

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))

	require.NoError(t, ed.ToggleItem(key))
	entry, ok := ed.Selection().Get(key)
	require.True(t, ok)
	assert.True(t, entry.Quantity.Equal(dec("5")))
	assert.Equal(t, "10.00", entry.UnitPrice)
	assert.True(t, ed.EffectiveAmount().Equal(dec("50")))

	ed.Selection().SetQuantity(key, "2")
	assert.True(t, ed.EffectiveAmount().Equal(dec("20")))

	sub, err := ed.BuildSubmission()
	require.NoError(t, err)
	assert.Equal(t, inv.ID, sub.InvoiceID)
	require.Len(t, sub.LineItems, 1)
	assert.Equal(t, key, sub.LineItems[0].ItemID)
	assert.Equal(t, "product", sub.LineItems[0].ItemType)
	assert.True(t, sub.LineItems[0].Quantity.Equal(dec("2")))
	assert.True(t, sub.LineItems[0].UnitPrice.Equal(dec("10")))
	assert.True(t, sub.CreditAmount.Equal(dec("20")))
}

// Scenario: a credit line {amount 75} is indivisible; its quantity cannot
// be changed and it credits exactly 75.
func TestEditor_CreditLineFlow(t *testing.T) {
	inv := &domain.Invoice{
		ID: uuid.New(),
		Credits: []domain.InvoiceCreditLine{
			{ID: uuid.New(), Title: "Overpayment", Amount: dec("75")},
		},
	}
	key := inv.Credits[0].ID.String()

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))

	require.NoError(t, ed.ToggleItem(key))
	ed.Selection().SetQuantity(key, "99")

	entry, _ := ed.Selection().Get(key)
	assert.True(t, entry.Quantity.Equal(dec("1")))
	assert.True(t, ed.EffectiveAmount().Equal(dec("75")))
}

func TestEditor_StaleFetchDiscarded(t *testing.T) {
	first := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "Old", "1", "1")},
	}
	second := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "New", "2", "2")},
	}

	ed := creditnote.NewEditor()
	staleGen := ed.BeginInvoice(first.ID)
	liveGen := ed.BeginInvoice(second.ID)

	require.NoError(t, ed.ApplyInvoiceDetail(liveGen, second))

	// The fetch for the first invoice completes late and must not clobber
	// the current groups.
	err := ed.ApplyInvoiceDetail(staleGen, first)
	assert.ErrorIs(t, err, domain.ErrStaleInvoiceFetch)

	require.Len(t, ed.Groups(), 1)
	assert.Equal(t, "New", ed.Groups()[0].Items[0].Name)
}

func TestEditor_BeginInvoiceResetsSelection(t *testing.T) {
	inv := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10")},
	}

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))
	require.NoError(t, ed.ToggleItem(inv.Products[0].ID.String()))

	ed.BeginInvoice(uuid.New())

	assert.Equal(t, 0, ed.Selection().Len())
	assert.Empty(t, ed.Groups())
}

func TestEditor_ClearInvoice(t *testing.T) {
	inv := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10")},
	}

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))
	require.NoError(t, ed.ToggleItem(inv.Products[0].ID.String()))

	ed.ClearInvoice()

	assert.Equal(t, uuid.Nil, ed.InvoiceID())
	assert.Equal(t, 0, ed.Selection().Len())
	assert.Empty(t, ed.Groups())

	// The stale fetch for the cleared invoice is discarded too.
	assert.ErrorIs(t, ed.ApplyInvoiceDetail(gen, inv), domain.ErrStaleInvoiceFetch)
}

func TestEditor_ManualAmountFallback(t *testing.T) {
	ed := creditnote.NewEditor()
	ed.SetManualAmount(dec("120.55"))

	assert.True(t, ed.EffectiveAmount().Equal(dec("120.55")))

	sub, err := ed.BuildSubmission()
	require.NoError(t, err)
	assert.Empty(t, sub.LineItems)
	assert.True(t, sub.CreditAmount.Equal(dec("120.55")))
}

func TestEditor_SubmissionRejectsNonPositiveAmount(t *testing.T) {
	ed := creditnote.NewEditor()

	_, err := ed.BuildSubmission()
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)

	ed.SetManualAmount(dec("-5"))
	_, err = ed.BuildSubmission()
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)
}

func TestEditor_SubmissionRejectsInvalidEntry(t *testing.T) {
	inv := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10")},
	}
	key := inv.Products[0].ID.String()

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))
	require.NoError(t, ed.ToggleItem(key))

	// Clearing the price mid-edit leaves an entry that must block submit.
	ed.Selection().SetUnitPrice(key, "")

	_, err := ed.BuildSubmission()
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
}

func TestEditor_ToggleUnknownKey(t *testing.T) {
	ed := creditnote.NewEditor()
	assert.ErrorIs(t, ed.ToggleItem("missing"), domain.ErrNotFound)
}
