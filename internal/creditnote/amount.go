package creditnote

import (
	"github.com/shopspring/decimal"

	"bizdesk/internal/domain"
)

// ComputeAmount derives the aggregate credit amount from the selected
// entries: the sum of quantity times unit price, rounded to 2 decimal
// places. Each unit price is re-parsed defensively; an unparseable value
// contributes zero. An empty selection computes to zero and the caller
// falls back to the manually entered amount.
func ComputeAmount(entries []Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		price := ParseNumberOrDefault(e.UnitPrice, decimal.Zero)
		sum = sum.Add(e.Quantity.Mul(price))
	}
	return sum.Round(2)
}

// EffectiveAmount is the credit amount exposed to the rest of the form:
// the computed sum when rows are selected, the manual flat amount
// otherwise.
func EffectiveAmount(sel *Selection, manualAmount decimal.Decimal) decimal.Decimal {
	if sel != nil && sel.Len() > 0 {
		return ComputeAmount(sel.Entries())
	}
	return manualAmount
}

// ValidateEntries checks every selected entry before submission: each must
// have a positive quantity and a strictly positive parsed unit price.
// Invalid entries fail the whole submission rather than being dropped
// silently.
func ValidateEntries(entries []Entry) error {
	for _, e := range entries {
		if e.Quantity.LessThanOrEqual(decimal.Zero) {
			return domain.ErrInvalidLineItem
		}
		price, ok := ParseNumber(e.UnitPrice)
		if !ok || price.LessThanOrEqual(decimal.Zero) {
			return domain.ErrInvalidLineItem
		}
	}
	return nil
}
