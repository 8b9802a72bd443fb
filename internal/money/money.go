// Package money holds the rounding rules shared by booking pricing and
// settlement netting.
package money

import "github.com/shopspring/decimal"

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// Round rounds to 2 decimal places, ties toward positive infinity
// (1.005 -> 1.01, -1.005 -> -1.00). Decimal arithmetic is exact, so the
// epsilon nudging float code needs is unnecessary here.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(half).Floor().Shift(-2)
}

// Percent returns pct% of amount, rounded.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return Round(amount.Mul(pct).Div(hundred))
}
