package order

import "github.com/shopspring/decimal"

var (
	flatShippingFee   = decimal.NewFromInt(30000)
	freeShippingAbove = decimal.NewFromInt(5000000)
)

// CalculateShippingFee returns the flat shipping fee, waived for
// subtotals above the free-shipping threshold.
func CalculateShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeShippingAbove) {
		return decimal.Zero
	}
	return flatShippingFee
}
