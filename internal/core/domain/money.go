// internal/core/domain/money.go
package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an immutable amount in a single currency. All arithmetic
// returns a new value; amounts are rounded to two decimal places.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// DefaultCurrency is used when no currency is supplied.
const DefaultCurrency = "BRL"

// NewMoney creates a Money value. The amount must not be negative and
// the currency code must not be blank.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: amount cannot be negative", ErrInvalidArgument)
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return Money{}, fmt.Errorf("%w: currency cannot be empty", ErrInvalidArgument)
	}

	return Money{
		Amount:   amount.Round(2),
		Currency: strings.ToUpper(currency),
	}, nil
}

// Add returns the sum of two amounts in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.validateSameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.Amount.Add(other.Amount), m.Currency)
}

// Subtract returns the difference of two amounts in the same currency.
// Subtracting past zero fails, since amounts are never negative.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.validateSameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.Amount.Sub(other.Amount), m.Currency)
}

// Multiply scales the amount by a factor.
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	return NewMoney(m.Amount.Mul(factor), m.Currency)
}

// Divide splits the amount by a divisor.
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, fmt.Errorf("%w: cannot divide by zero", ErrInvalidArgument)
	}
	return NewMoney(m.Amount.Div(divisor), m.Currency)
}

// IsGreaterThan compares two amounts in the same currency.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.validateSameCurrency(other); err != nil {
		return false, err
	}
	return m.Amount.GreaterThan(other.Amount), nil
}

// IsLessThan compares two amounts in the same currency.
func (m Money) IsLessThan(other Money) (bool, error) {
	if err := m.validateSameCurrency(other); err != nil {
		return false, err
	}
	return m.Amount.LessThan(other.Amount), nil
}

// Equal reports structural equality on amount and currency.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) validateSameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return fmt.Errorf("%w: cannot operate on different currencies: %s and %s",
			ErrInvalidArgument, m.Currency, other.Currency)
	}
	return nil
}

// String renders the amount with its currency symbol where one is
// known, falling back to "amount CODE".
func (m Money) String() string {
	amount := m.Amount.StringFixed(2)
	switch m.Currency {
	case "BRL":
		return "R$ " + amount
	case "USD":
		return "$ " + amount
	case "EUR":
		return "€ " + amount
	default:
		return amount + " " + m.Currency
	}
}
