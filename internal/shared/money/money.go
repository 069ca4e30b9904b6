package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discounted applies a percentage discount to price. A zero or missing percentage leaves it unchanged.
func Discounted(price, percentage float64) decimal.Decimal {
	base := decimal.NewFromFloat(price)
	if percentage <= 0 {
		return base
	}
	cut := base.Mul(decimal.NewFromFloat(percentage)).Div(hundred)
	return base.Sub(cut)
}

// LineTotal is the discounted unit price times quantity.
func LineTotal(price, percentage float64, quantity int) decimal.Decimal {
	return Discounted(price, percentage).Mul(decimal.NewFromInt(int64(quantity)))
}

// Sum adds the given amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}

// FormatRupiah renders amounts the way the canteen pages show them, e.g. "Rp 12,500".
func FormatRupiah(amount decimal.Decimal) string {
	if amount.IsInteger() {
		return "Rp " + humanize.Comma(amount.IntPart())
	}
	return "Rp " + humanize.CommafWithDigits(amount.Round(2).InexactFloat64(), 2)
}
