// Package models holds the record types the ledger persists.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/luy-tracker/backend/internal/currency"
	"github.com/shopspring/decimal"
)

// MoneyType is the funding source of an expense.
type MoneyType string

const (
	MoneyTypeCash  MoneyType = "Cash"
	MoneyTypeHouse MoneyType = "House"
)

// Valid reports whether the money type is one of the known funding sources.
func (m MoneyType) Valid() bool {
	return m == MoneyTypeCash || m == MoneyTypeHouse
}

// Expense represents a single recorded transaction.
type Expense struct {
	ID uuid.UUID `json:"id"` // UUID for the expense, immutable after creation
	ExpenseEditable
}

// ExpenseEditable represents all user configurable parameters of an expense.
type ExpenseEditable struct {
	Date        string          `json:"date" example:"2024-06-15"`        // Calendar date in YYYY-MM-DD format
	Amount      decimal.Decimal `json:"amount" example:"14.50"`           // Amount in units of Currency
	Currency    string          `json:"currency" example:"USD"`           // Currency code, must be in the rate table
	Category    string          `json:"category" example:"Food"`          // Category name, not required to be registered
	MoneyType   MoneyType       `json:"moneyType" example:"Cash"`         // Funding source
	ExpenseType string          `json:"expenseType" example:"Cash"`       // Classification label, distinct from Category
	Note        string          `json:"note" example:"Lunch with Sokha"`  // Free text
}

// WithDefaults returns a copy with the funding source and expense type
// defaulted to Cash when unset.
func (e ExpenseEditable) WithDefaults() ExpenseEditable {
	if e.MoneyType == "" {
		e.MoneyType = MoneyTypeCash
	}

	if e.ExpenseType == "" {
		e.ExpenseType = string(MoneyTypeCash)
	}

	return e
}

// Validate checks that all required fields are present and well formed.
// It returns a ValidationError listing every offending field.
func (e ExpenseEditable) Validate(rates currency.Rates) error {
	var fields []string

	if e.Date == "" {
		fields = append(fields, "date")
	} else if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		fields = append(fields, "date")
	}

	// The decimal zero value is indistinguishable from an absent
	// amount, so the amount has to be strictly positive.
	if !e.Amount.IsPositive() {
		fields = append(fields, "amount")
	}

	if e.Currency == "" || !rates.Valid(e.Currency) {
		fields = append(fields, "currency")
	}

	if strings.TrimSpace(e.Category) == "" {
		fields = append(fields, "category")
	}

	if !e.MoneyType.Valid() {
		fields = append(fields, "moneyType")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

// MonthKey returns the YYYY-MM prefix of the expense date.
func (e ExpenseEditable) MonthKey() string {
	if len(e.Date) < 7 {
		return e.Date
	}

	return e.Date[:7]
}
