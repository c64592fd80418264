package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is the only currency the tracker knows about.
const CurrencySymbol = "$"

// Balance is the arithmetic sum of every price in the list. Non-numeric
// prices contribute zero. The balance is derived, never persisted.
func Balance(list []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range list {
		if !t.HasPrice() {
			continue
		}
		total = total.Add(decimal.NewFromFloat(t.PriceValue()))
	}
	return total
}

// IsNegative reports whether an amount should get the negative style.
// The amount is rounded to cents first, so anything displayed as zero is
// not negative.
func IsNegative(d decimal.Decimal) bool {
	return d.Round(2).Sign() < 0
}

// Amount is a display-ready money value split into whole and fraction parts
// ("$400" and "00").
type Amount struct {
	Whole    string
	Fraction string
	Negative bool
}

// String joins the parts back together ("$400.00").
func (a Amount) String() string {
	return a.Whole + "." + a.Fraction
}

// FormatBalance renders an amount with two decimals and the currency symbol.
func FormatBalance(d decimal.Decimal) Amount {
	neg := IsNegative(d)
	whole, frac, _ := strings.Cut(d.Round(2).Abs().StringFixed(2), ".")
	sign := ""
	if neg {
		sign = "-"
	}
	return Amount{
		Whole:    sign + CurrencySymbol + whole,
		Fraction: frac,
		Negative: neg,
	}
}

// FormatPrice renders a single transaction price. A non-numeric price is
// shown as "NaN", the same thing a browser prints for it.
func FormatPrice(p *float64) string {
	if p == nil {
		return CurrencySymbol + "NaN"
	}
	return FormatBalance(decimal.NewFromFloat(*p)).String()
}
