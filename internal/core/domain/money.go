package domain

import "github.com/shopspring/decimal"

// AmountScale is the number of decimal places kept for base-currency amounts.
const AmountScale int32 = 2

// OriginalAmountScale is the most decimal places an amount may be entered with.
const OriginalAmountScale int32 = 4

// DefaultBalanceTolerance is the largest debit/credit difference treated as balanced (exclusive).
var DefaultBalanceTolerance = decimal.New(1, -AmountScale)

// RoundAmount rounds half-to-even at AmountScale. It is the only rounding rule
// applied to base-currency amounts, both at conversion and in aggregation.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(AmountScale)
}

// FitsOriginalScale reports whether d has no more than OriginalAmountScale decimal places.
func FitsOriginalScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(OriginalAmountScale))
}

// WithinTolerance reports whether |a - b| is strictly below tolerance.
func WithinTolerance(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(tolerance)
}
