package creditnote_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdesk/internal/creditnote"
	"bizdesk/internal/domain"
)

func prefillItem(itemID, itemType, qty, price string) domain.CreditNoteLineItem {
	return domain.CreditNoteLineItem{
		ItemID:    itemID,
		ItemType:  itemType,
		Quantity:  dec(qty),
		UnitPrice: dec(price),
	}
}

// Scenario: prefill {qty 3, price 12} against an invoice row with qty 5
// restores {3, "12.00"} and keeps MaxQuantity 5 so the row can still be
// edited up to 5.
func TestPrefill_RestoresPersistedSelection(t *testing.T) {
	inv := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10")},
	}
	key := inv.Products[0].ID.String()

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))

	ed.SetEditingRecord([]domain.CreditNoteLineItem{prefillItem(key, "product", "3", "12")})

	assert.Equal(t, creditnote.PrefillApplied, ed.PrefillState())
	entry, ok := ed.Selection().Get(key)
	require.True(t, ok)
	assert.True(t, entry.Quantity.Equal(dec("3")))
	assert.Equal(t, "12.00", entry.UnitPrice)
	assert.True(t, entry.MaxQuantity.Equal(dec("5")))

	ed.Selection().SetQuantity(key, "5")
	entry, _ = ed.Selection().Get(key)
	assert.True(t, entry.Quantity.Equal(dec("5")))
}

func TestPrefill_WaitsForGroupsThenApplies(t *testing.T) {
	inv := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10")},
	}
	key := inv.Products[0].ID.String()

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)

	// Editing record arrives before the invoice fetch completes: the
	// reconciler must wait, not mark itself applied.
	ed.SetEditingRecord([]domain.CreditNoteLineItem{prefillItem(key, "product", "3", "12")})
	assert.Equal(t, creditnote.PrefillNotStarted, ed.PrefillState())
	assert.Equal(t, 0, ed.Selection().Len())

	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))
	assert.Equal(t, creditnote.PrefillApplied, ed.PrefillState())
	assert.Equal(t, 1, ed.Selection().Len())
}

func TestPrefill_RunsAtMostOnce(t *testing.T) {
	inv := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10")},
	}
	key := inv.Products[0].ID.String()

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))
	ed.SetEditingRecord([]domain.CreditNoteLineItem{prefillItem(key, "product", "3", "12")})

	// User edits after the prefill...
	ed.Selection().SetQuantity(key, "4")
	ed.Selection().SetUnitPrice(key, "9.99")

	// ...and a re-fetch of the same invoice must not revert them.
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))

	entry, _ := ed.Selection().Get(key)
	assert.True(t, entry.Quantity.Equal(dec("4")))
	assert.Equal(t, "9.99", entry.UnitPrice)
}

func TestPrefill_AppliesEvenWithZeroMatches(t *testing.T) {
	inv := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10")},
	}

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))

	ed.SetEditingRecord([]domain.CreditNoteLineItem{prefillItem(uuid.New().String(), "product", "1", "1")})

	assert.Equal(t, creditnote.PrefillApplied, ed.PrefillState())
	assert.Equal(t, 0, ed.Selection().Len())
}

func TestPrefill_MatchesWithoutItemType(t *testing.T) {
	inv := &domain.Invoice{
		ID:       uuid.New(),
		Services: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindService, "Install", "2", "150")},
	}
	key := inv.Services[0].ID.String()

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))

	// Older records may omit the item type; the id alone is unambiguous.
	ed.SetEditingRecord([]domain.CreditNoteLineItem{prefillItem(key, "", "1", "140")})

	entry, ok := ed.Selection().Get(key)
	require.True(t, ok)
	assert.True(t, entry.Quantity.Equal(dec("1")))
	assert.Equal(t, "140.00", entry.UnitPrice)
}

func TestPrefill_ItemTypeMismatchDoesNotMatch(t *testing.T) {
	inv := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10")},
	}
	key := inv.Products[0].ID.String()

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))

	ed.SetEditingRecord([]domain.CreditNoteLineItem{prefillItem(key, "service", "1", "10")})

	assert.Equal(t, 0, ed.Selection().Len())
	assert.Equal(t, creditnote.PrefillApplied, ed.PrefillState())
}

func TestPrefill_CreditRowPinnedToOne(t *testing.T) {
	inv := &domain.Invoice{
		ID:      uuid.New(),
		Credits: []domain.InvoiceCreditLine{{ID: uuid.New(), Title: "Goodwill", Amount: dec("75")}},
	}
	key := inv.Credits[0].ID.String()

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))

	ed.SetEditingRecord([]domain.CreditNoteLineItem{prefillItem(key, "credit", "4", "75")})

	entry, ok := ed.Selection().Get(key)
	require.True(t, ok)
	assert.True(t, entry.Quantity.Equal(dec("1")))
}

func TestPrefill_FallbacksForNonPositiveValues(t *testing.T) {
	inv := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10")},
	}
	key := inv.Products[0].ID.String()

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen, inv))

	// Zero quantity and price in the record fall back to the invoice row.
	ed.SetEditingRecord([]domain.CreditNoteLineItem{prefillItem(key, "product", "0", "0")})

	entry, ok := ed.Selection().Get(key)
	require.True(t, ok)
	assert.True(t, entry.Quantity.Equal(dec("5")))
	assert.Equal(t, "10.00", entry.UnitPrice)
}

func TestPrefill_ClearInvoiceAbandonsPending(t *testing.T) {
	inv := &domain.Invoice{
		ID:       uuid.New(),
		Products: []domain.InvoiceItemLine{itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10")},
	}
	key := inv.Products[0].ID.String()

	ed := creditnote.NewEditor()
	gen := ed.BeginInvoice(inv.ID)
	ed.SetEditingRecord([]domain.CreditNoteLineItem{prefillItem(key, "product", "3", "12")})

	ed.ClearInvoice()
	_ = gen

	// Re-selecting the invoice later must not resurrect the prefill.
	gen2 := ed.BeginInvoice(inv.ID)
	require.NoError(t, ed.ApplyInvoiceDetail(gen2, inv))
	assert.Equal(t, 0, ed.Selection().Len())
}
