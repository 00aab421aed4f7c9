// Package money converts between stored cent amounts and decimal currency values.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FromCents converts a stored amount in cents to a decimal currency value
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents converts a decimal currency value to cents, rounding half away from zero
func ToCents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// FromFloat converts a request amount such as 12.5 to cents
func FromFloat(amount float64) int64 {
	return ToCents(decimal.NewFromFloat(amount))
}

// Percent returns amount * rate / 100 without intermediate rounding
func Percent(amount decimal.Decimal, rate float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(rate)).Div(hundred)
}

// Float rounds d to two decimal places and returns it as float64 for JSON output
func Float(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// CentsToFloat is a shorthand for Float(FromCents(cents))
func CentsToFloat(cents int64) float64 {
	return Float(FromCents(cents))
}
