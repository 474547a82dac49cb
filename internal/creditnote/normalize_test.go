package creditnote_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdesk/internal/creditnote"
	"bizdesk/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func itemLine(id uuid.UUID, kind domain.CatalogKind, name string, qty, price string) domain.InvoiceItemLine {
	return domain.InvoiceItemLine{
		ID:        id,
		Kind:      kind,
		Name:      name,
		Quantity:  dec(qty),
		UnitPrice: dec(price),
	}
}

func testInvoice() *domain.Invoice {
	return &domain.Invoice{
		ID: uuid.New(),
		Products: []domain.InvoiceItemLine{
			itemLine(uuid.New(), domain.KindProduct, "Widget", "5", "10"),
			itemLine(uuid.New(), domain.KindProduct, "Gadget", "2", "24.5"),
		},
		Services: []domain.InvoiceItemLine{
			itemLine(uuid.New(), domain.KindService, "Installation", "1", "150"),
		},
		Credits: []domain.InvoiceCreditLine{
			{ID: uuid.New(), Title: "Goodwill credit", Amount: dec("75")},
		},
	}
}

func TestNormalize_GroupsAndTotals(t *testing.T) {
	inv := testInvoice()

	groups := creditnote.Normalize(inv)
	require.Len(t, groups, 3)

	assert.Equal(t, "products", groups[0].Key)
	assert.Equal(t, "services", groups[1].Key)
	assert.Equal(t, "credits", groups[2].Key)
	assert.Len(t, groups[0].Items, 2)
	assert.Len(t, groups[1].Items, 1)
	assert.Len(t, groups[2].Items, 1)

	widget := groups[0].Items[0]
	assert.Equal(t, inv.Products[0].ID.String(), widget.Key)
	assert.Equal(t, widget.Key, widget.ItemID)
	assert.Equal(t, creditnote.ItemTypeProduct, widget.ItemType)
	assert.True(t, widget.Total.Equal(dec("50")), "total = %s", widget.Total)
	assert.True(t, widget.MaxQuantity.Equal(dec("5")))

	gadget := groups[0].Items[1]
	assert.True(t, gadget.Total.Equal(dec("49")), "total = %s", gadget.Total)
}

func TestNormalize_OmitsEmptyGroups(t *testing.T) {
	inv := testInvoice()
	inv.Services = nil
	inv.Credits = nil

	groups := creditnote.Normalize(inv)
	require.Len(t, groups, 1)
	assert.Equal(t, "products", groups[0].Key)
}

func TestNormalize_NilInvoice(t *testing.T) {
	assert.Nil(t, creditnote.Normalize(nil))
}

func TestNormalize_Pure(t *testing.T) {
	inv := testInvoice()

	first := creditnote.Normalize(inv)
	second := creditnote.Normalize(inv)

	assert.Equal(t, first, second)
}

func TestNormalize_KeysUnique(t *testing.T) {
	inv := testInvoice()
	// Two rows without identifiers must still get distinct synthetic keys.
	inv.Products = append(inv.Products,
		itemLine(uuid.Nil, domain.KindProduct, "", "1", "1"),
		itemLine(uuid.Nil, domain.KindProduct, "", "1", "1"),
	)

	seen := map[string]bool{}
	for _, g := range creditnote.Normalize(inv) {
		for _, item := range g.Items {
			assert.False(t, seen[item.Key], "duplicate key %s", item.Key)
			seen[item.Key] = true
		}
	}
}

func TestNormalize_SyntheticKeyFallback(t *testing.T) {
	inv := &domain.Invoice{
		Products: []domain.InvoiceItemLine{
			itemLine(uuid.Nil, domain.KindProduct, "Loose row", "3", "7"),
		},
	}

	groups := creditnote.Normalize(inv)
	item := groups[0].Items[0]
	assert.Equal(t, "product:0", item.Key)
	assert.Equal(t, "product:0", item.ItemID)
}

func TestNormalize_CreditLineInvariant(t *testing.T) {
	inv := &domain.Invoice{
		Credits: []domain.InvoiceCreditLine{
			{ID: uuid.New(), Title: "Overpayment", Amount: dec("75")},
		},
	}

	item := creditnote.Normalize(inv)[0].Items[0]
	assert.Equal(t, creditnote.ItemTypeCredit, item.ItemType)
	assert.True(t, item.Quantity.Equal(dec("1")))
	assert.True(t, item.MaxQuantity.Equal(dec("1")))
	assert.True(t, item.UnitPrice.Equal(dec("75")))
	assert.True(t, item.Total.Equal(dec("75")))
}

func TestNormalize_NameFallbackChain(t *testing.T) {
	inv := &domain.Invoice{
		Products: []domain.InvoiceItemLine{
			{ID: uuid.New(), Name: "Named", Note: "note", Quantity: dec("1"), UnitPrice: dec("1")},
			{ID: uuid.New(), Note: "from note", Quantity: dec("1"), UnitPrice: dec("1")},
			{ID: uuid.New(), Quantity: dec("1"), UnitPrice: dec("1")},
		},
		Services: []domain.InvoiceItemLine{
			{ID: uuid.New(), Quantity: dec("1"), UnitPrice: dec("1")},
		},
		Credits: []domain.InvoiceCreditLine{
			{ID: uuid.New(), Amount: dec("5")},
		},
	}

	groups := creditnote.Normalize(inv)
	products := groups[0].Items
	assert.Equal(t, "Named", products[0].Name)
	assert.Equal(t, "from note", products[1].Name)
	assert.Equal(t, "Product Item", products[2].Name)
	assert.Equal(t, "Service Item", groups[1].Items[0].Name)
	assert.Equal(t, "Invoice Credit", groups[2].Items[0].Name)
}

func TestNormalize_DescriptionAndCodeFallbacks(t *testing.T) {
	inv := &domain.Invoice{
		Products: []domain.InvoiceItemLine{
			{ID: uuid.New(), Name: "A", SKU: "SKU-1", AdditionalNote: "extra", Note: "note", Quantity: dec("1"), UnitPrice: dec("1")},
			{ID: uuid.New(), Name: "B", Note: "note only", Quantity: dec("1"), UnitPrice: dec("1")},
			{ID: uuid.New(), Name: "C", Quantity: dec("1"), UnitPrice: dec("1")},
		},
	}

	items := creditnote.Normalize(inv)[0].Items
	assert.Equal(t, "extra", items[0].Description)
	assert.Equal(t, "SKU-1", items[0].Code)
	assert.Equal(t, "note only", items[1].Description)
	assert.Equal(t, "", items[2].Description)
	assert.Equal(t, "", items[2].Code)
}
