// Package money carries monetary values as exact decimals that always
// cross the wire with two fraction digits.
package money

import "github.com/shopspring/decimal"

// Amount wraps a decimal so JSON output is fixed to two decimals:
// decimal's own MarshalJSON trims trailing zeros ("150" for 150.00),
// but the storefront API emits "150.00". Decoding accepts both quoted
// strings and bare numbers, inherited from the embedded decimal.
type Amount struct {
	decimal.Decimal
}

func New(d decimal.Decimal) Amount { return Amount{Decimal: d} }

// Require parses s or panics. For seed data and tests.
func Require(s string) Amount { return Amount{Decimal: decimal.RequireFromString(s)} }

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.StringFixed(2) + `"`), nil
}
