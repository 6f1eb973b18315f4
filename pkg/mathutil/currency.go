// Package mathutil provides common decimal helpers for monetary arithmetic.
//
// All rounding is half-up. For the non-negative amounts the optimizer works
// with this is exactly what decimal.Decimal.Round does (half away from zero).
package mathutil

import (
	"github.com/iwvelando/payment-optimizer/pkg/constants"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(constants.PercentageMultiplier)
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.MoneyScale)
}

// PercentToRate converts a percentage such as 15 into a rate such as 0.15,
// kept at six decimal places.
func PercentToRate(percent decimal.Decimal) decimal.Decimal {
	return percent.DivRound(hundred, constants.RateScale)
}

// ApplyPercentage applies a percentage to a value and rounds the result to currency.
func ApplyPercentage(value, percent decimal.Decimal) decimal.Decimal {
	return Round(value.Mul(PercentToRate(percent)))
}

// Ratio divides a by b at the precision used for density comparisons.
// The caller must ensure b is not zero.
func Ratio(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, constants.DensityScale)
}

// IsPositive checks if a value is strictly greater than zero
func IsPositive(val decimal.Decimal) bool {
	return val.Sign() > 0
}

// Min returns the minimum of two values
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the maximum of two values
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
