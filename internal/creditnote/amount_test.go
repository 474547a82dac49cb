package creditnote_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdesk/internal/creditnote"
	"bizdesk/internal/domain"
)

func TestComputeAmount_Empty(t *testing.T) {
	assert.True(t, creditnote.ComputeAmount(nil).IsZero())
}

func TestComputeAmount_SumsQuantityTimesPrice(t *testing.T) {
	entries := []creditnote.Entry{
		{Quantity: dec("5"), UnitPrice: "10.00"},
		{Quantity: dec("2"), UnitPrice: "24.5"},
	}
	assert.True(t, creditnote.ComputeAmount(entries).Equal(dec("99")))
}

func TestComputeAmount_RoundsToTwoDecimals(t *testing.T) {
	entries := []creditnote.Entry{
		{Quantity: dec("1"), UnitPrice: "0.10"},
		{Quantity: dec("1"), UnitPrice: "0.10"},
		{Quantity: dec("1"), UnitPrice: "0.10"},
	}
	got := creditnote.ComputeAmount(entries)
	assert.Equal(t, "0.30", got.StringFixed(2))
	assert.True(t, got.Equal(dec("0.3")))
}

func TestComputeAmount_UnparseablePriceContributesZero(t *testing.T) {
	entries := []creditnote.Entry{
		{Quantity: dec("3"), UnitPrice: ""},
		{Quantity: dec("2"), UnitPrice: "5"},
	}
	assert.True(t, creditnote.ComputeAmount(entries).Equal(dec("10")))
}

func TestEffectiveAmount_FallsBackToManual(t *testing.T) {
	manual := dec("42.50")

	sel := creditnote.NewSelection()
	assert.True(t, creditnote.EffectiveAmount(sel, manual).Equal(manual))
	assert.True(t, creditnote.EffectiveAmount(nil, manual).Equal(manual))

	require.NoError(t, sel.Toggle(productItem("p1", "5", "10")))
	assert.True(t, creditnote.EffectiveAmount(sel, manual).Equal(dec("50")))
}

func TestValidateEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []creditnote.Entry
		wantErr error
	}{
		{name: "empty ok"},
		{
			name:    "valid entry",
			entries: []creditnote.Entry{{Quantity: dec("2"), UnitPrice: "5.00"}},
		},
		{
			name:    "zero quantity",
			entries: []creditnote.Entry{{Quantity: decimal.Zero, UnitPrice: "5.00"}},
			wantErr: domain.ErrInvalidLineItem,
		},
		{
			name:    "zero price",
			entries: []creditnote.Entry{{Quantity: dec("2"), UnitPrice: "0"}},
			wantErr: domain.ErrInvalidLineItem,
		},
		{
			name:    "blank price",
			entries: []creditnote.Entry{{Quantity: dec("2"), UnitPrice: ""}},
			wantErr: domain.ErrInvalidLineItem,
		},
		{
			name: "one bad entry fails the batch",
			entries: []creditnote.Entry{
				{Quantity: dec("2"), UnitPrice: "5.00"},
				{Quantity: dec("1"), UnitPrice: "oops"},
			},
			wantErr: domain.ErrInvalidLineItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := creditnote.ValidateEntries(tt.entries)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseNumberOrDefault(t *testing.T) {
	fallback := dec("7")
	assert.True(t, creditnote.ParseNumberOrDefault("3.25", fallback).Equal(dec("3.25")))
	assert.True(t, creditnote.ParseNumberOrDefault("  3.25 ", fallback).Equal(dec("3.25")))
	assert.True(t, creditnote.ParseNumberOrDefault("", fallback).Equal(fallback))
	assert.True(t, creditnote.ParseNumberOrDefault("abc", fallback).Equal(fallback))
	assert.True(t, creditnote.ParseNumberOrDefault("-2", fallback).Equal(dec("-2")))
}
