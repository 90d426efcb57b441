// Package money provides currency codes and helpers for exact decimal amounts.
//
// Invariants:
//   - Amounts are shopspring decimals, never floating point.
//   - Currency code must be valid ISO 4217 (3 uppercase letters).
//   - An amount accepted for a currency never has more decimal places than its minor unit.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount parses s as an exact decimal amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// MustParse is like ParseAmount but panics on error. Intended for constants and tests.
func MustParse(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		panic(fmt.Sprintf("money.MustParse(%q): %v", s, err))
	}
	return d
}

// CheckPrecision returns ErrTooPrecise when amount cannot be expressed in
// the minor unit of the given currency.
func CheckPrecision(amount decimal.Decimal, code Code) error {
	if !amount.Equal(amount.Truncate(code.Decimals())) {
		return fmt.Errorf("%w: %s %s", ErrTooPrecise, amount.String(), code)
	}
	return nil
}

// MaxAmount is the exclusive upper bound of any amount or balance: twelve
// integer digits, as stored in decimal(20,8) columns.
var MaxAmount = decimal.New(1, 12)

// CheckRange returns ErrAmountTooLarge when the magnitude of amount reaches
// MaxAmount.
func CheckRange(amount decimal.Decimal) error {
	if amount.Abs().GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("%w: %s", ErrAmountTooLarge, amount.String())
	}
	return nil
}

// RoundTo rounds amount half away from zero to the currency's minor unit.
func RoundTo(amount decimal.Decimal, code Code) decimal.Decimal {
	return amount.Round(code.Decimals())
}
