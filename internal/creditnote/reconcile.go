package creditnote

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bizdesk/internal/domain"
)

// LineItemInput is one client-submitted credited row on a create or
// update request.
type LineItemInput struct {
	ItemID    string          `json:"item_id" binding:"required"`
	ItemType  string          `json:"item_type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ReconcileSubmission rebuilds the editor state server-side from a
// submitted request and serializes it: the invoice is normalized, every
// submitted row is matched back onto a normalized item, quantities are
// clamped to the invoice-side quantity, and the same validation that
// guards the interactive form runs again. Clients cannot credit rows the
// invoice does not have or quantities beyond what it carries.
func ReconcileSubmission(invoiceID uuid.UUID, inv *domain.Invoice, items []LineItemInput, manualAmount decimal.Decimal) (*Submission, error) {
	if len(items) > 0 && (inv == nil || invoiceID == uuid.Nil) {
		return nil, domain.ErrNoInvoiceSelected
	}

	ed := NewEditor()
	if inv != nil {
		gen := ed.BeginInvoice(invoiceID)
		if err := ed.ApplyInvoiceDetail(gen, inv); err != nil {
			return nil, err
		}
	}
	ed.SetManualAmount(manualAmount)

	for _, in := range items {
		if in.ItemID == "" {
			continue
		}
		item, ok := matchInput(ed.Groups(), in)
		if !ok {
			return nil, domain.ErrInvalidLineItem
		}

		qty := in.Quantity
		if item.ItemType == ItemTypeCredit {
			qty = one
		} else if qty.GreaterThan(item.MaxQuantity) {
			qty = item.MaxQuantity
		}

		ed.selection.insert(&Entry{
			Key:         item.Key,
			ItemID:      item.ItemID,
			ItemType:    item.ItemType,
			MaxQuantity: item.MaxQuantity,
			Quantity:    qty.Round(3),
			UnitPrice:   in.UnitPrice.StringFixed(2),
		})
	}

	if len(items) > 0 && ed.selection.Len() == 0 {
		return nil, domain.ErrNoLineItems
	}

	return ed.BuildSubmission()
}

func matchInput(groups []Group, in LineItemInput) (LineItem, bool) {
	for _, g := range groups {
		for _, item := range g.Items {
			if item.ItemID != in.ItemID {
				continue
			}
			if in.ItemType != "" && in.ItemType != string(item.ItemType) {
				continue
			}
			return item, true
		}
	}
	return LineItem{}, false
}
