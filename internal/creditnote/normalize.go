// Package creditnote implements the credit-note line-item reconciliation
// core: it flattens an invoice's heterogeneous line collections into a
// uniform shape, tracks which rows are being credited and at what adjusted
// values, derives the aggregate credit amount, and restores persisted
// selections when an existing credit note is edited.
package creditnote

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bizdesk/internal/domain"
)

// ItemType classifies a normalized invoice row.
type ItemType string

const (
	ItemTypeProduct ItemType = "product"
	ItemTypeService ItemType = "service"
	ItemTypeCredit  ItemType = "credit"
)

// LineItem is the uniform shape produced from any of the three raw invoice
// line kinds.
type LineItem struct {
	// Key is the stable identity within one invoice's normalized set: the
	// resolved line id when present, else a synthetic "<type>:<index>".
	Key      string   `json:"key"`
	ItemID   string   `json:"item_id"`
	ItemType ItemType `json:"item_type"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code,omitempty"`

	// Quantity is the invoice-side quantity; always 1 for credit rows,
	// which are indivisible amounts.
	Quantity    decimal.Decimal `json:"quantity"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Group is one section of normalized items. Groups with zero items are
// never emitted.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Items []LineItem `json:"items"`
}

var one = decimal.NewFromInt(1)

// firstNonEmpty evaluates accessors in order and returns the first
// non-blank result. Field fallback chains are expressed this way so the
// resolution order stays explicit and testable.
func firstNonEmpty(accessors ...func() string) string {
	for _, f := range accessors {
		if v := strings.TrimSpace(f()); v != "" {
			return v
		}
	}
	return ""
}

func resolveLineID(id uuid.UUID, itemType ItemType, index int) string {
	if id != uuid.Nil {
		return id.String()
	}
	return fmt.Sprintf("%s:%d", itemType, index)
}

func normalizeItemLine(line domain.InvoiceItemLine, itemType ItemType, index int) LineItem {
	key := resolveLineID(line.ID, itemType, index)

	placeholder := "Product Item"
	if itemType == ItemTypeService {
		placeholder = "Service Item"
	}

	name := firstNonEmpty(
		func() string { return line.Name },
		func() string { return line.Note },
		func() string { return placeholder },
	)
	description := firstNonEmpty(
		func() string { return line.AdditionalNote },
		func() string { return line.Note },
	)
	code := firstNonEmpty(
		func() string { return line.SKU },
	)

	qty := line.Quantity
	price := line.UnitPrice
	return LineItem{
		Key:         key,
		ItemID:      key,
		ItemType:    itemType,
		Name:        name,
		Description: description,
		Code:        code,
		Quantity:    qty,
		MaxQuantity: qty,
		UnitPrice:   price,
		Total:       qty.Mul(price).Round(2),
	}
}

func normalizeCreditLine(line domain.InvoiceCreditLine, index int) LineItem {
	key := resolveLineID(line.ID, ItemTypeCredit, index)

	name := firstNonEmpty(
		func() string { return line.Title },
		func() string { return "Invoice Credit" },
	)
	description := firstNonEmpty(
		func() string { return line.Note },
	)

	// A credit line is an indivisible amount: quantity pinned to 1 and the
	// credit total treated as the unit price.
	return LineItem{
		Key:         key,
		ItemID:      key,
		ItemType:    ItemTypeCredit,
		Name:        name,
		Description: description,
		Quantity:    one,
		MaxQuantity: one,
		UnitPrice:   line.Amount,
		Total:       line.Amount.Round(2),
	}
}

// Normalize flattens the invoice's product, service, and credit lines into
// uniform groups. It is pure with respect to its input: calling it twice on
// the same invoice produces structurally equal output.
func Normalize(inv *domain.Invoice) []Group {
	if inv == nil {
		return nil
	}

	var groups []Group

	if len(inv.Products) > 0 {
		items := make([]LineItem, 0, len(inv.Products))
		for i, line := range inv.Products {
			items = append(items, normalizeItemLine(line, ItemTypeProduct, i))
		}
		groups = append(groups, Group{Key: "products", Label: "Products", Items: items})
	}

	if len(inv.Services) > 0 {
		items := make([]LineItem, 0, len(inv.Services))
		for i, line := range inv.Services {
			items = append(items, normalizeItemLine(line, ItemTypeService, i))
		}
		groups = append(groups, Group{Key: "services", Label: "Services", Items: items})
	}

	if len(inv.Credits) > 0 {
		items := make([]LineItem, 0, len(inv.Credits))
		for i, line := range inv.Credits {
			items = append(items, normalizeCreditLine(line, i))
		}
		groups = append(groups, Group{Key: "credits", Label: "Invoice Credits", Items: items})
	}

	return groups
}
