// Package weight formats gram quantities for display.
package weight

import (
	"github.com/shopspring/decimal"
)

// KilogramThreshold is the smallest gram amount displayed in kilograms.
const KilogramThreshold = 1000

var (
	kilogramThreshold = decimal.NewFromInt(KilogramThreshold)
	gramsPerKilogram  = decimal.NewFromInt(1000)
)

// Format renders grams as "1.5 кг" at or above one kilogram and as "999 г" below it.
func Format(grams float64) string {
	return FormatDecimal(decimal.NewFromFloat(grams))
}

// FormatDecimal is Format for an exact decimal amount.
// Kilograms keep one decimal place, grams are rounded to the nearest gram, half away from zero.
func FormatDecimal(grams decimal.Decimal) string {
	if grams.GreaterThanOrEqual(kilogramThreshold) {
		return grams.Div(gramsPerKilogram).StringFixed(1) + " кг"
	}
	return grams.Round(0).StringFixed(0) + " г"
}
