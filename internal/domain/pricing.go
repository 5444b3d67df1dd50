package domain

import "github.com/shopspring/decimal"

// Wholesale discount: 9% off the unit price from 20 units of the same product.
const (
	DiscountThreshold = 20
	DiscountPercent   = 9
)

var discountFactor = decimal.NewFromInt(100 - DiscountPercent).Div(decimal.NewFromInt(100))

func HasDiscount(quantity int) bool {
	return quantity >= DiscountThreshold
}

// EffectiveUnitPrice is the per-unit price charged for a line of quantity units.
func EffectiveUnitPrice(price decimal.Decimal, quantity int) decimal.Decimal {
	if HasDiscount(quantity) {
		return price.Mul(discountFactor)
	}
	return price
}

func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return EffectiveUnitPrice(price, quantity).Mul(decimal.NewFromInt(int64(quantity)))
}
