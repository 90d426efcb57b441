package money

import "errors"

// Common money package errors
var (
	// ErrInvalidCurrency is returned when a currency code is not three uppercase letters.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrInvalidAmount is returned when an amount cannot be parsed as a decimal.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTooPrecise is returned when an amount has more decimal places than
	// the currency's minor unit allows.
	ErrTooPrecise = errors.New("amount has more decimal places than the currency allows")

	// ErrAmountTooLarge is returned when an amount does not fit the stored
	// precision.
	ErrAmountTooLarge = errors.New("amount is too large")
)
