package money

import "strings"

// Code represents a currency code (e.g., "USD", "EUR").
type Code string

// Common currency codes
const (
	USD Code = "USD" // US Dollar
	EUR Code = "EUR" // Euro
	JPY Code = "JPY" // Japanese Yen
	KWD Code = "KWD" // Kuwaiti Dinar
	GBP Code = "GBP" // British Pound
)

// DefaultCode is the default currency code (USD)
var DefaultCode = USD

// minorUnits lists currencies whose minor unit differs from two decimals.
var minorUnits = map[Code]int32{
	JPY: 0,
	KWD: 3,
}

// IsValid checks if the currency code is a well-formed ISO 4217 code.
func (c Code) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	return c[0] >= 'A' && c[0] <= 'Z' &&
		c[1] >= 'A' && c[1] <= 'Z' &&
		c[2] >= 'A' && c[2] <= 'Z'
}

// Decimals returns the number of decimal places of the currency's minor unit.
func (c Code) Decimals() int32 {
	if d, ok := minorUnits[c]; ok {
		return d
	}
	return 2
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// ParseCode normalizes s and returns it as a Code. An empty string yields DefaultCode.
func ParseCode(s string) (Code, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultCode, nil
	}
	c := Code(s)
	if !c.IsValid() {
		return "", ErrInvalidCurrency
	}
	return c, nil
}
