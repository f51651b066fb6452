// Package csvimport parses expense CSV files as produced by the export,
// tolerating reordered columns and a few alternative date formats.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/luy-tracker/backend/internal/currency"
	"github.com/luy-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
	txtcurrency "golang.org/x/text/currency"
)

// Column names recognized in the header line. Matching is exact after
// trimming surrounding whitespace.
const (
	columnDate        = "Date"
	columnAmount      = "Amount"
	columnCurrency    = "Currency"
	columnCategory    = "Category"
	columnMoneyType   = "Money Type"
	columnExpenseType = "Expense Type"
	columnNote        = "Description"
)

// Parse reads an expense CSV file. The first line must be a header naming
// at least the Date, Amount and Category columns. Missing optional values
// fall back to USD and the Cash money and expense types. Nothing is parsed
// partially, the first bad row fails the whole file.
func Parse(f io.Reader) ([]models.ExpenseEditable, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []models.ExpenseEditable{}, nil
	}
	if err != nil {
		return csvReadError(reader, fmt.Errorf("could not read header line: %w", err))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, required := range []string{columnDate, columnAmount, columnCategory} {
		if _, ok := columns[required]; !ok {
			return []models.ExpenseEditable{}, fmt.Errorf("the CSV header does not have a %q column", required)
		}
	}

	var expenses []models.ExpenseEditable

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		date, err := parseDate(field(record, columns, columnDate))
		if err != nil {
			return csvReadError(reader, err)
		}

		amount, err := decimal.NewFromString(field(record, columns, columnAmount))
		if err != nil {
			return csvReadError(reader, errors.New("the amount could not be parsed to a decimal"))
		}
		if !amount.IsPositive() {
			return csvReadError(reader, errors.New("the amount for an expense must be positive"))
		}

		code := field(record, columns, columnCurrency)
		if code == "" {
			code = currency.Base
		} else if _, err := txtcurrency.ParseISO(code); err != nil {
			return csvReadError(reader, fmt.Errorf("%q is not a valid currency code", code))
		}

		category := field(record, columns, columnCategory)
		if category == "" {
			return csvReadError(reader, errors.New("the category must not be empty"))
		}

		expense := models.ExpenseEditable{
			Date:        date,
			Amount:      amount,
			Currency:    code,
			Category:    category,
			MoneyType:   models.MoneyType(field(record, columns, columnMoneyType)),
			ExpenseType: field(record, columns, columnExpenseType),
			Note:        field(record, columns, columnNote),
		}.WithDefaults()

		if !expense.MoneyType.Valid() {
			return csvReadError(reader, fmt.Errorf("%q is not a valid money type", expense.MoneyType))
		}

		expenses = append(expenses, expense)
	}

	if expenses == nil {
		return []models.ExpenseEditable{}, nil
	}

	return expenses, nil
}

// field returns a named column of the record, or "" when the column is
// absent from the header or the record is too short.
func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}

func parseDate(value string) (string, error) {
	if value == "" {
		return "", errors.New("the date must not be empty")
	}

	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date.Format("2006-01-02"), nil
	}

	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date.Format("2006-01-02"), nil
	}

	return "", fmt.Errorf("could not parse %q as a date", value)
}

// csvReadError returns the error with the line of the input the error
// occurred in in the message.
func csvReadError(r *csv.Reader, err error) ([]models.ExpenseEditable, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return []models.ExpenseEditable{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
