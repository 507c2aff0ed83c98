// Package validation applies the business rules a deal must satisfy before it is stored.
package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Zakaria-Tajer/fx/internal/currency"
	"github.com/Zakaria-Tajer/fx/internal/model"

	"github.com/rs/zerolog"
)

// currencyCodeLength is the length of an ISO 4217 alphabetic code.
const currencyCodeLength = 3

// DealValidator checks a single deal against the business rules.
type DealValidator interface {
	// Validate returns nil for a valid deal, otherwise a *model.DomainError
	// whose message is the rejection reason of the first failing rule.
	Validate(deal model.Deal) error
}

// Option configures a validator.
type Option func(*dealValidator)

// WithClock overrides the source of the processing instant used by the timestamp rule.
func WithClock(now func() time.Time) Option {
	return func(v *dealValidator) {
		v.now = now
	}
}

// dealValidator implements DealValidator.
type dealValidator struct {
	codes  currency.CodeSet
	now    func() time.Time
	logger zerolog.Logger
}

// NewDealValidator creates a validator backed by the given currency code set.
func NewDealValidator(codes currency.CodeSet, logger zerolog.Logger, opts ...Option) DealValidator {
	v := &dealValidator{
		codes:  codes,
		now:    time.Now,
		logger: logger.With().Str("component", "deal-validator").Logger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate applies the rules in order: deal id, source currency, target currency, amount, timestamp.
func (v *dealValidator) Validate(deal model.Deal) error {
	err := v.check(deal)
	if err != nil {
		v.logger.Debug().
			Str("deal_id", deal.DealID).
			Err(err).
			Msg("deal rejected")
	}
	return err
}

func (v *dealValidator) check(deal model.Deal) error {
	if strings.TrimSpace(deal.DealID) == "" {
		return model.ErrDealIDRequired
	}

	if !v.validCurrency(deal.FromCurrency) {
		return model.ErrInvalidFromCurrency
	}

	if !v.validCurrency(deal.ToCurrency) {
		return model.ErrInvalidToCurrency
	}

	if !deal.Amount.IsPositive() {
		return model.ErrInvalidAmount
	}

	if deal.Timestamp.IsZero() || deal.Timestamp.After(v.now()) {
		return model.ErrInvalidTimestamp
	}

	return nil
}

// validCurrency enforces the code length before consulting the set.
func (v *dealValidator) validCurrency(code string) bool {
	if strings.TrimSpace(code) == "" || utf8.RuneCountInString(code) != currencyCodeLength {
		return false
	}
	return v.codes.Contains(code)
}
