// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point drift across repeated
// balance updates. Rounding to 2 decimals happens only at the
// presentation boundary, never inside calculations.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Quantity is a product quantity. Quantities share Money's decimal
// representation: line subtotals are quantity times unit price and the
// multiplication must stay exact.
type Quantity = decimal.Decimal

// NewQuantity creates a Quantity from a float.
func NewQuantity(f float64) Quantity {
	return decimal.NewFromFloat(f)
}

// Percent converts a 0-100 percentage value into a decimal rate.
// Percent(NewMoney(18)) == 0.18.
func Percent(v decimal.Decimal) decimal.Decimal {
	return v.Div(decimal.NewFromInt(100))
}
