package creditnote

import (
	"github.com/shopspring/decimal"

	"bizdesk/internal/domain"
)

// Entry is one selected invoice row with the user's chosen credit values.
// UnitPrice is kept as the raw editable string so the input stays editable
// mid-typing; consumers re-parse it defensively.
type Entry struct {
	Key         string          `json:"key"`
	ItemID      string          `json:"item_id"`
	ItemType    ItemType        `json:"item_type"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   string          `json:"unit_price"`
}

// Selection is an ordered map of line-item key to Entry. An entry exists
// iff the row is checked: unchecking or setting quantity to zero removes
// it entirely, so there is no "selected but zero" state.
type Selection struct {
	order   []string
	entries map[string]*Entry
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{entries: make(map[string]*Entry)}
}

// Len reports the number of selected rows.
func (s *Selection) Len() int {
	return len(s.order)
}

// Get returns a copy of the entry for key.
func (s *Selection) Get(key string) (Entry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns copies of all entries in insertion order.
func (s *Selection) Entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, *s.entries[key])
	}
	return out
}

// Toggle selects item if it is not selected, seeding the full invoice-side
// quantity and the invoice unit price, and deselects it otherwise. Items
// missing a real identifier cannot be serialized later, so toggling them on
// is refused with domain.ErrLineItemNoID and no state change.
func (s *Selection) Toggle(item LineItem) error {
	if _, ok := s.entries[item.Key]; ok {
		s.remove(item.Key)
		return nil
	}

	if item.ItemID == "" {
		return domain.ErrLineItemNoID
	}

	qty := item.MaxQuantity
	if item.ItemType == ItemTypeCredit {
		qty = one
	}
	s.insert(&Entry{
		Key:         item.Key,
		ItemID:      item.ItemID,
		ItemType:    item.ItemType,
		MaxQuantity: item.MaxQuantity,
		Quantity:    qty,
		UnitPrice:   item.UnitPrice.StringFixed(2),
	})
	return nil
}

// SetQuantity updates the credited quantity for a selected row. Unknown
// keys and credit rows (fixed at 1) are no-ops. A value that parses to
// zero or less removes the entry, mirroring a toggle off; anything else is
// clamped to the invoice-side quantity and stored at 3 decimal places.
func (s *Selection) SetQuantity(key, raw string) {
	e, ok := s.entries[key]
	if !ok || e.ItemType == ItemTypeCredit {
		return
	}

	qty := ParseNumberOrDefault(raw, decimal.Zero)
	if qty.LessThanOrEqual(decimal.Zero) {
		s.remove(key)
		return
	}
	if qty.GreaterThan(e.MaxQuantity) {
		qty = e.MaxQuantity
	}
	e.Quantity = qty.Round(3)
}

// SetUnitPrice updates the unit price for a selected row. The empty string
// is stored as-is so the user can clear the field while typing; otherwise
// the value must parse to a non-negative number or the prior value is
// kept. Accepted values are stored as the raw string, preserving the
// user's formatting until serialization.
func (s *Selection) SetUnitPrice(key, raw string) {
	e, ok := s.entries[key]
	if !ok {
		return
	}
	if raw == "" {
		e.UnitPrice = ""
		return
	}
	d, ok := ParseNumber(raw)
	if !ok || d.IsNegative() {
		return
	}
	e.UnitPrice = raw
}

// Reset removes all entries.
func (s *Selection) Reset() {
	s.order = s.order[:0]
	s.entries = make(map[string]*Entry)
}

func (s *Selection) insert(e *Entry) {
	if _, ok := s.entries[e.Key]; !ok {
		s.order = append(s.order, e.Key)
	}
	s.entries[e.Key] = e
}

func (s *Selection) remove(key string) {
	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
