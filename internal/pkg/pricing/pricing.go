package pricing

import "github.com/shopspring/decimal"

// ComputeTotal derives a booking's total amount from its price components:
// base + additional charges - discount, rounded to 2 decimal places.
// Amounts are persisted and displayed as currency, so the arithmetic is done
// with decimals rather than floats. A zero-value decimal stands in for a
// missing additional charge or discount.
func ComputeTotal(base, additionalCharges, discount decimal.Decimal) decimal.Decimal {
	return base.Add(additionalCharges).Sub(discount).Round(2)
}
