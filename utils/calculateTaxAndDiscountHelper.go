package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the precision amounts are rounded to for display and persistence.
const MoneyPlaces = 2

var (
	VatRate      = decimal.RequireFromString("0.12")
	DiscountRate = decimal.RequireFromString("0.20")
)

// RoundMoney rounds half away from zero to two places.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// CalculateVatFee returns the 12% VAT on a base price, rounded to two places.
func CalculateVatFee(basePrice decimal.Decimal) decimal.Decimal {
	return RoundMoney(basePrice.Mul(VatRate))
}

// CalculateDiscountAmount applies a percentage rate to the subtotal without rounding.
func CalculateDiscountAmount(subTotal decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() || !subTotal.IsPositive() {
		return decimal.Zero
	}
	return subTotal.Mul(rate)
}

// LineAmount is unit price times quantity.
func LineAmount(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}
