package creditnote

import (
	"github.com/shopspring/decimal"

	"bizdesk/internal/domain"
)

// PrefillState is the one-shot reconciliation state machine. It
// transitions from PrefillNotStarted to PrefillApplied exactly once per
// edit session, so a late-arriving invoice fetch can never overwrite user
// edits.
type PrefillState int

const (
	PrefillNotStarted PrefillState = iota
	PrefillApplied
)

// SetEditingRecord seeds the editor with an existing credit note's
// persisted line items and arms the prefill reconciler. The reconciliation
// runs immediately if the invoice's normalized groups are already
// available, otherwise on the next ApplyInvoiceDetail.
func (e *Editor) SetEditingRecord(items []domain.CreditNoteLineItem) {
	e.editing = true
	e.prefill = items
	e.prefillState = PrefillNotStarted
	e.reconcilePrefill()
}

// PrefillState reports whether the prefill pass has run.
func (e *Editor) PrefillState() PrefillState {
	return e.prefillState
}

// reconcilePrefill matches persisted line items back onto the freshly
// normalized invoice items and bulk-installs the matched entries in one
// update. It waits (no-op, state unchanged) while the groups are still
// empty so a slow invoice fetch does not permanently skip prefilling, and
// transitions to PrefillApplied unconditionally after one full pass, even
// with zero matches.
func (e *Editor) reconcilePrefill() {
	if !e.editing || len(e.prefill) == 0 || e.prefillState != PrefillNotStarted {
		return
	}
	if len(e.groups) == 0 {
		return
	}

	var matched []*Entry
	for _, g := range e.groups {
		for _, item := range g.Items {
			p, ok := matchPrefill(e.prefill, item)
			if !ok {
				continue
			}
			matched = append(matched, prefillEntry(p, item))
		}
	}

	for _, entry := range matched {
		e.selection.insert(entry)
	}
	e.prefillState = PrefillApplied
}

// matchPrefill finds the persisted line item for a normalized invoice
// item. Ids are compared as strings; the persisted item type may be empty
// when the source is unambiguous.
func matchPrefill(prefill []domain.CreditNoteLineItem, item LineItem) (domain.CreditNoteLineItem, bool) {
	for _, p := range prefill {
		if p.ItemID != item.ItemID {
			continue
		}
		if p.ItemType != "" && p.ItemType != string(item.ItemType) {
			continue
		}
		return p, true
	}
	return domain.CreditNoteLineItem{}, false
}

// prefillEntry synthesizes a selection entry from a persisted line item
// and its matching normalized item. Credit rows stay at quantity 1; other
// rows take the persisted quantity when positive, falling back to the
// invoice-side quantity. MaxQuantity always comes from the invoice so the
// row remains editable up to its original quantity.
func prefillEntry(p domain.CreditNoteLineItem, item LineItem) *Entry {
	qty := item.Quantity
	if item.ItemType == ItemTypeCredit {
		qty = one
	} else if p.Quantity.GreaterThan(decimal.Zero) {
		qty = p.Quantity
	}

	price := item.UnitPrice
	if p.UnitPrice.GreaterThan(decimal.Zero) {
		price = p.UnitPrice
	}

	return &Entry{
		Key:         item.Key,
		ItemID:      item.ItemID,
		ItemType:    item.ItemType,
		MaxQuantity: item.MaxQuantity,
		Quantity:    qty,
		UnitPrice:   price.StringFixed(2),
	}
}
