package validation

import (
	"testing"
	"time"

	"github.com/Zakaria-Tajer/fx/internal/currency"
	"github.com/Zakaria-Tajer/fx/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// fakeCodeSet records every lookup so tests can assert the set was not consulted.
type fakeCodeSet struct {
	codes   map[string]bool
	lookups []string
}

func (f *fakeCodeSet) Contains(code string) bool {
	f.lookups = append(f.lookups, code)
	return f.codes[code]
}

func (f *fakeCodeSet) Size() int {
	return len(f.codes)
}

func newTestValidator() DealValidator {
	codes := currency.NewCodeSet("USD", "EUR", "GBP", "JPY", "MAD")
	return NewDealValidator(codes, zerolog.Nop(), WithClock(func() time.Time { return fixedNow }))
}

func validDeal() model.Deal {
	return model.NewDeal("D1", "USD", "EUR", fixedNow.Add(-time.Hour), decimal.RequireFromString("100.0"))
}

func TestDealValidator_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(d *model.Deal)
		expected error
	}{
		{
			name:     "Valid deal",
			mutate:   func(d *model.Deal) {},
			expected: nil,
		},
		{
			name:     "Timestamp equal to now is accepted",
			mutate:   func(d *model.Deal) { d.Timestamp = fixedNow },
			expected: nil,
		},
		{
			name:     "Lower case currency accepted by the set",
			mutate:   func(d *model.Deal) { d.FromCurrency = "usd" },
			expected: nil,
		},
		{
			name:     "Empty deal id",
			mutate:   func(d *model.Deal) { d.DealID = "" },
			expected: model.ErrDealIDRequired,
		},
		{
			name:     "Blank deal id",
			mutate:   func(d *model.Deal) { d.DealID = "   " },
			expected: model.ErrDealIDRequired,
		},
		{
			name:     "Empty from currency",
			mutate:   func(d *model.Deal) { d.FromCurrency = "" },
			expected: model.ErrInvalidFromCurrency,
		},
		{
			name:     "Two letter from currency",
			mutate:   func(d *model.Deal) { d.FromCurrency = "US" },
			expected: model.ErrInvalidFromCurrency,
		},
		{
			name:     "Four letter from currency",
			mutate:   func(d *model.Deal) { d.FromCurrency = "USDT" },
			expected: model.ErrInvalidFromCurrency,
		},
		{
			name:     "Unknown from currency",
			mutate:   func(d *model.Deal) { d.FromCurrency = "XYZ" },
			expected: model.ErrInvalidFromCurrency,
		},
		{
			name:     "Unknown to currency",
			mutate:   func(d *model.Deal) { d.ToCurrency = "ABC" },
			expected: model.ErrInvalidToCurrency,
		},
		{
			name:     "Blank to currency",
			mutate:   func(d *model.Deal) { d.ToCurrency = "   " },
			expected: model.ErrInvalidToCurrency,
		},
		{
			name:     "Zero amount",
			mutate:   func(d *model.Deal) { d.Amount = decimal.Zero },
			expected: model.ErrInvalidAmount,
		},
		{
			name:     "Missing amount",
			mutate:   func(d *model.Deal) { d.Amount = decimal.Decimal{} },
			expected: model.ErrInvalidAmount,
		},
		{
			name:     "Negative amount",
			mutate:   func(d *model.Deal) { d.Amount = decimal.RequireFromString("-5.25") },
			expected: model.ErrInvalidAmount,
		},
		{
			name:     "Missing timestamp",
			mutate:   func(d *model.Deal) { d.Timestamp = time.Time{} },
			expected: model.ErrInvalidTimestamp,
		},
		{
			name:     "Future timestamp",
			mutate:   func(d *model.Deal) { d.Timestamp = fixedNow.Add(time.Second) },
			expected: model.ErrInvalidTimestamp,
		},
	}

	v := newTestValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := validDeal()
			tt.mutate(&deal)

			err := v.Validate(deal)

			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestDealValidator_FirstFailingRuleWins(t *testing.T) {
	v := newTestValidator()

	deal := model.NewDeal("", "XX", "YY", time.Time{}, decimal.Zero)
	err := v.Validate(deal)
	require.Error(t, err)
	assert.Equal(t, "Deal ID is required", err.Error())

	deal.DealID = "D9"
	err = v.Validate(deal)
	require.Error(t, err)
	assert.Equal(t, "Invalid fromCurrency code", err.Error())

	deal.FromCurrency = "USD"
	err = v.Validate(deal)
	require.Error(t, err)
	assert.Equal(t, "Invalid toCurrency code", err.Error())

	deal.ToCurrency = "EUR"
	err = v.Validate(deal)
	require.Error(t, err)
	assert.Equal(t, "Amount must be a positive number", err.Error())

	deal.Amount = decimal.NewFromInt(1)
	err = v.Validate(deal)
	require.Error(t, err)
	assert.Equal(t, "Invalid or future timestamp", err.Error())
}

func TestDealValidator_LengthCheckedBeforeLookup(t *testing.T) {
	codes := &fakeCodeSet{codes: map[string]bool{"USD": true, "EUR": true}}
	v := NewDealValidator(codes, zerolog.Nop(), WithClock(func() time.Time { return fixedNow }))

	deal := validDeal()
	deal.FromCurrency = "USDOLLAR"

	err := v.Validate(deal)

	assert.ErrorIs(t, err, model.ErrInvalidFromCurrency)
	assert.Empty(t, codes.lookups)
}

func TestDealValidator_MultiByteCodeLength(t *testing.T) {
	codes := &fakeCodeSet{codes: map[string]bool{"USD": true, "EUR": true, "€UR": true}}
	v := NewDealValidator(codes, zerolog.Nop(), WithClock(func() time.Time { return fixedNow }))

	deal := validDeal()
	deal.ToCurrency = "€UR"

	assert.NoError(t, v.Validate(deal))
	assert.Equal(t, []string{"USD", "€UR"}, codes.lookups)
}

func TestDealValidator_DefaultClock(t *testing.T) {
	v := NewDealValidator(currency.NewCodeSet("USD", "EUR"), zerolog.Nop())

	deal := model.NewDeal("D1", "USD", "EUR", time.Now().Add(time.Hour), decimal.NewFromInt(10))
	assert.ErrorIs(t, v.Validate(deal), model.ErrInvalidTimestamp)

	deal = model.NewDeal("D1", "USD", "EUR", time.Now().Add(-time.Hour), decimal.NewFromInt(10))
	assert.NoError(t, v.Validate(deal))
}
