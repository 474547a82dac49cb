package creditnote

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber parses a user-entered numeric string. The second return is
// false when the string is empty or not a valid number.
func ParseNumber(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseNumberOrDefault parses a user-entered numeric string, returning
// fallback when it does not parse. All arithmetic on selection state goes
// through this helper so no raw string ever reaches a computation unguarded.
func ParseNumberOrDefault(raw string, fallback decimal.Decimal) decimal.Decimal {
	d, ok := ParseNumber(raw)
	if !ok {
		return fallback
	}
	return d
}
