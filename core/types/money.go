// Package types defines the pricing rules data model and the priced
// result/trace types shared across the engine.
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Round2 rounds a monetary amount to two decimal places, half away from
// zero. Every amount is rounded with this at the point it enters a result.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MulRound2 multiplies a unit cost by a quantity and rounds the product
// to two decimal places.
func MulRound2(cost, quantity decimal.Decimal) decimal.Decimal {
	return Round2(cost.Mul(quantity))
}

// PercentOf returns rate percent of amount, rounded to two decimal places.
// The rate is in percentage form (20 means 20%).
func PercentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(rate).Div(decimal.NewFromInt(100)))
}
