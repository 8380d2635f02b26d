package order

import (
	"errors"
	"fmt"
)

// DefaultCurrency is used for totals of orders without any lines.
const DefaultCurrency = "USD"

var (
	ErrInvalidAmount    = errors.New("order: amount must be zero or greater")
	ErrCurrencyMismatch = errors.New("order: currency mismatch")
)

// Money is an immutable value object holding an amount in minor units.
// It has no identity; two values are equal when amount and currency match.
type Money struct {
	Amount   int64
	Currency string
}

// NewMoney builds a Money value. Negative amounts are rejected.
// An empty currency defaults to USD.
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, ErrInvalidAmount
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Zero returns a zero amount in the given currency, defaulting to USD.
func Zero(currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: 0, Currency: currency}
}

// Add returns a new value with the summed amount. Operands are never mutated.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Equal reports structural equality on amount and currency.
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.Currency == other.Currency
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}
