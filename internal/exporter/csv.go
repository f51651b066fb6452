// Package exporter renders the expense store as comma-separated text.
package exporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/luy-tracker/backend/internal/models"
)

// Header is the first line of every export.
const Header = "Date,Amount,Currency,Category,Money Type,Expense Type,Description"

// Filename is the suggested download name for exports.
const Filename = "expenses.csv"

// WriteCSV writes the expenses as CSV, one row per expense in the order
// given (the store's insertion order, not a filtered view). The note is
// always quoted with embedded quotes doubled; the other fields are
// written verbatim, they cannot contain commas or quotes.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")

	for _, expense := range expenses {
		row := []string{
			expense.Date,
			expense.Amount.String(),
			expense.Currency,
			expense.Category,
			string(expense.MoneyType),
			expense.ExpenseType,
			quote(expense.Note),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}

	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
