// Package money provides an exact, rounding-safe monetary value.
// Amounts are shopspring decimals, never binary floats. Deltas passed
// to Increase/Decrease are always non-negative; direction comes from
// the operation, not the sign.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money holds an exact decimal amount. The zero value is zero money.
type Money struct {
	amount decimal.Decimal
}

// New creates Money from a decimal amount.
func New(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// FromString parses a decimal string into Money.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

// Amount returns the stored decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Increase adds a non-negative delta to the stored amount.
func (m *Money) Increase(delta decimal.Decimal) error {
	if delta.IsNegative() {
		return fmt.Errorf("increase by negative amount %s", delta)
	}
	m.amount = m.amount.Add(delta)
	return nil
}

// Decrease subtracts a non-negative delta from the stored amount.
// The result may go negative; callers decide whether that is allowed.
func (m *Money) Decrease(delta decimal.Decimal) error {
	if delta.IsNegative() {
		return fmt.Errorf("decrease by negative amount %s", delta)
	}
	m.amount = m.amount.Sub(delta)
	return nil
}

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Equal reports exact equality of amounts.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
