package creditnote

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bizdesk/internal/domain"
)

// Editor owns the state of one credit-note editing session: the selected
// invoice, its normalized line groups, the selection of credited rows, the
// manual flat amount, and the one-shot prefill reconciler. All operations
// are synchronous; the only asynchronous boundary is the invoice detail
// fetch, which is superseded by generation: a result applied with a stale
// generation token is discarded.
type Editor struct {
	invoiceID  uuid.UUID
	generation int

	groups    []Group
	selection *Selection

	manualAmount decimal.Decimal

	prefill      []domain.CreditNoteLineItem
	prefillState PrefillState
	editing      bool
}

// NewEditor creates an editor with no invoice selected.
func NewEditor() *Editor {
	return &Editor{selection: NewSelection()}
}

// BeginInvoice records a new invoice selection and returns the generation
// token the eventual fetch result must present to ApplyInvoiceDetail.
// Any previous groups and selection are discarded.
func (e *Editor) BeginInvoice(invoiceID uuid.UUID) int {
	e.invoiceID = invoiceID
	e.generation++
	e.groups = nil
	e.selection.Reset()
	return e.generation
}

// ApplyInvoiceDetail installs the fetched invoice's normalized groups. A
// stale generation means the user changed the invoice selection while the
// fetch was in flight; the result is discarded and
// domain.ErrStaleInvoiceFetch returned so the caller can drop it without
// surfacing an error to the user.
func (e *Editor) ApplyInvoiceDetail(generation int, inv *domain.Invoice) error {
	if generation != e.generation {
		return domain.ErrStaleInvoiceFetch
	}
	e.groups = Normalize(inv)
	e.reconcilePrefill()
	return nil
}

// ClearInvoice drops the invoice selection, its groups, and the current
// selection. A pending prefill is abandoned: clearing the invoice is an
// explicit user action that invalidates the persisted selections.
func (e *Editor) ClearInvoice() {
	e.invoiceID = uuid.Nil
	e.generation++
	e.groups = nil
	e.selection.Reset()
	e.prefill = nil
	e.prefillState = PrefillApplied
}

// InvoiceID returns the currently selected invoice, uuid.Nil if none.
func (e *Editor) InvoiceID() uuid.UUID {
	return e.invoiceID
}

// Groups returns the normalized line groups of the current invoice.
func (e *Editor) Groups() []Group {
	return e.groups
}

// Selection returns the live selection store.
func (e *Editor) Selection() *Selection {
	return e.selection
}

// SetManualAmount sets the flat amount used when no line items are
// selected.
func (e *Editor) SetManualAmount(amount decimal.Decimal) {
	e.manualAmount = amount
}

// EffectiveAmount is the credit amount the form would submit right now.
func (e *Editor) EffectiveAmount() decimal.Decimal {
	return EffectiveAmount(e.selection, e.manualAmount)
}

// findItem looks up a normalized item by key across all groups.
func (e *Editor) findItem(key string) (LineItem, bool) {
	for _, g := range e.groups {
		for _, item := range g.Items {
			if item.Key == key {
				return item, true
			}
		}
	}
	return LineItem{}, false
}

// ToggleItem toggles the normalized item with the given key.
func (e *Editor) ToggleItem(key string) error {
	item, ok := e.findItem(key)
	if !ok {
		return domain.ErrNotFound
	}
	return e.selection.Toggle(item)
}

// SubmissionLineItem is the wire shape of one credited row.
type SubmissionLineItem struct {
	ItemID    string          `json:"item_id"`
	ItemType  string          `json:"item_type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Submission is the serialized form of the editor state, ready for the
// create/update request.
type Submission struct {
	InvoiceID    uuid.UUID
	LineItems    []SubmissionLineItem
	CreditAmount decimal.Decimal
}

// BuildSubmission serializes the selection into the wire format: unit
// prices rounded to 2 decimals as numbers, quantities as numbers. Entries
// whose item id went missing are filtered out; if that leaves a non-empty
// selection empty, the submission fails rather than silently producing a
// zero-item credit note. The effective amount must be positive.
func (e *Editor) BuildSubmission() (*Submission, error) {
	entries := e.selection.Entries()
	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}

	lineItems := make([]SubmissionLineItem, 0, len(entries))
	for _, entry := range entries {
		if entry.ItemID == "" {
			continue
		}
		lineItems = append(lineItems, SubmissionLineItem{
			ItemID:    entry.ItemID,
			ItemType:  string(entry.ItemType),
			Quantity:  entry.Quantity,
			UnitPrice: ParseNumberOrDefault(entry.UnitPrice, decimal.Zero).Round(2),
		})
	}
	if len(entries) > 0 && len(lineItems) == 0 {
		return nil, domain.ErrNoLineItems
	}
	if len(lineItems) > 0 && e.invoiceID == uuid.Nil {
		return nil, domain.ErrNoInvoiceSelected
	}

	amount := e.EffectiveAmount()
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrNonPositiveAmount
	}

	return &Submission{
		InvoiceID:    e.invoiceID,
		LineItems:    lineItems,
		CreditAmount: amount,
	}, nil
}
