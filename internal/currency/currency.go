// Package currency implements conversion between the currencies the
// ledger accepts, based on a fixed rate table.
package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Base is the currency all aggregations are normalized to.
const Base = "USD"

// ErrUnknownCurrency is returned when a currency code is not part of the rate table.
var ErrUnknownCurrency = errors.New("unknown currency")

// Rates maps a currency code to its value in units per base currency.
// The base currency itself maps to 1.
type Rates map[string]decimal.Decimal

// DefaultRates returns the rate table the tracker ships with.
func DefaultRates() Rates {
	return Rates{
		"USD": decimal.NewFromInt(1),
		"KHR": decimal.NewFromInt(4000),
	}
}

// Valid reports whether a currency code is part of the rate table.
func (r Rates) Valid(code string) bool {
	_, ok := r[code]
	return ok
}

// Convert converts an amount between two currencies.
//
// When both codes are equal the amount is returned unchanged so that
// converting does not accumulate floating point error.
func (r Rates) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	fromRate, ok := r[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, from)
	}

	toRate, ok := r[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
	}

	return amount.Div(fromRate).Mul(toRate), nil
}

// ToBase converts an amount to the base currency.
func (r Rates) ToBase(amount decimal.Decimal, from string) (decimal.Decimal, error) {
	return r.Convert(amount, from, Base)
}
