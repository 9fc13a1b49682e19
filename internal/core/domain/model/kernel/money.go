package kernel

import (
	"fmt"

	"timberops/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative EUR amount. It wraps shopspring/decimal so monetary
// values round-trip the database without floating point drift.
//
// The engine uses it for the optional transport cost of a shipment. The zero
// value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money value from a decimal amount.
// Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromFloat creates a Money value from a float, e.g. an HTTP request field.
func MoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// Amount returns the decimal amount in EUR.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether both values represent the same amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with two decimal places, e.g. "1250.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
