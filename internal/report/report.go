// Package report computes the dashboard aggregates. Every amount is
// normalized to the base currency before it is summed or compared,
// heterogeneous currencies are never added directly.
//
// None of the functions read the clock: callers inject the anchor month
// and day of month.
package report

import (
	"strings"

	"github.com/luy-tracker/backend/internal/currency"
	"github.com/luy-tracker/backend/internal/models"
	"github.com/luy-tracker/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Registry is the category registry view the breakdown needs.
type Registry interface {
	Categories() []string
	ColorOf(name string) string
}

// CategoryTotal is one slice of the category breakdown.
type CategoryTotal struct {
	Name  string          `json:"name" example:"Food"`     // Category name
	Color string          `json:"color" example:"#007bff"` // Registry-assigned color
	Total decimal.Decimal `json:"total" example:"150"`     // Total in base currency
}

// MonthBucket is one point of the trailing-months series.
type MonthBucket struct {
	Month types.Month     `json:"month" example:"2024-06"` // The month
	Label string          `json:"label" example:"Jun 24"`  // Chart axis label
	Total decimal.Decimal `json:"total" example:"150"`     // Total in base currency, 0 for empty months
}

// Summary holds the dashboard statistics for one month.
type Summary struct {
	Month        types.Month      `json:"month" example:"2024-06"`
	Total        decimal.Decimal  `json:"total" example:"150"`           // Sum of all expenses in the month, in base currency
	DailyAverage *decimal.Decimal `json:"dailyAverage,omitempty"`        // Total divided by the injected day of month
	Largest      decimal.Decimal  `json:"largestExpense" example:"100"`  // Largest single expense, 0 when the month is empty
}

// inMonth reports whether an expense falls in a month, by lexical
// prefix match on the date.
func inMonth(e models.Expense, m types.Month) bool {
	return strings.HasPrefix(e.Date, m.String())
}

// MonthlyTotal sums the converted amounts of all expenses in a month.
func MonthlyTotal(expenses []models.Expense, m types.Month, rates currency.Rates) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, expense := range expenses {
		if !inMonth(expense, m) {
			continue
		}

		converted, err := rates.ToBase(expense.Amount, expense.Currency)
		if err != nil {
			return decimal.Zero, err
		}

		total = total.Add(converted)
	}

	return total, nil
}

// DailyAverage divides a month total by a day of month. Calendar days
// start at 1, callers must never pass 0.
func DailyAverage(total decimal.Decimal, dayOfMonth int) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(dayOfMonth)))
}

// LargestExpense returns the largest converted amount in the given set,
// or 0 for an empty set.
func LargestExpense(expenses []models.Expense, rates currency.Rates) (decimal.Decimal, error) {
	largest := decimal.Zero

	for _, expense := range expenses {
		converted, err := rates.ToBase(expense.Amount, expense.Currency)
		if err != nil {
			return decimal.Zero, err
		}

		if converted.GreaterThan(largest) {
			largest = converted
		}
	}

	return largest, nil
}

// Summarize computes the dashboard statistics for a month. dayOfMonth
// is the day component of the caller's "today"; when it is 0 the daily
// average is omitted from the summary.
func Summarize(expenses []models.Expense, m types.Month, dayOfMonth int, rates currency.Rates) (Summary, error) {
	inThisMonth := make([]models.Expense, 0)
	for _, expense := range expenses {
		if inMonth(expense, m) {
			inThisMonth = append(inThisMonth, expense)
		}
	}

	total, err := MonthlyTotal(inThisMonth, m, rates)
	if err != nil {
		return Summary{}, err
	}

	largest, err := LargestExpense(inThisMonth, rates)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Month:   m,
		Total:   total,
		Largest: largest,
	}

	if dayOfMonth > 0 {
		average := DailyAverage(total, dayOfMonth)
		summary.DailyAverage = &average
	}

	return summary, nil
}

// CategoryBreakdown sums the converted amounts per registered category
// for one month, in registry order. Categories with a total of exactly
// 0 are omitted: a zero-valued slice adds no information to a share
// chart. Expenses referencing unregistered names are ignored here, they
// still count towards MonthlyTotal.
func CategoryBreakdown(expenses []models.Expense, m types.Month, registry Registry, rates currency.Rates) ([]CategoryTotal, error) {
	totals := make([]CategoryTotal, 0)

	for _, name := range registry.Categories() {
		total := decimal.Zero

		for _, expense := range expenses {
			if expense.Category != name || !inMonth(expense, m) {
				continue
			}

			converted, err := rates.ToBase(expense.Amount, expense.Currency)
			if err != nil {
				return nil, err
			}

			total = total.Add(converted)
		}

		if total.IsZero() {
			continue
		}

		totals = append(totals, CategoryTotal{
			Name:  name,
			Color: registry.ColorOf(name),
			Total: total,
		})
	}

	return totals, nil
}

// TrailingMonths produces the n+1 buckets for the months anchor-n up to
// anchor inclusive, oldest first. Unlike the category breakdown, empty
// months are never omitted: their total is 0.
func TrailingMonths(expenses []models.Expense, n int, anchor types.Month, rates currency.Rates) ([]MonthBucket, error) {
	buckets := make([]MonthBucket, 0, n+1)
	position := make(map[string]int, n+1)

	start := anchor.AddDate(0, -n)
	for i := 0; i <= n; i++ {
		m := start.AddDate(0, i)
		position[m.String()] = i
		buckets = append(buckets, MonthBucket{
			Month: m,
			Label: m.Label(),
			Total: decimal.Zero,
		})
	}

	for _, expense := range expenses {
		i, ok := position[expense.MonthKey()]
		if !ok {
			continue
		}

		converted, err := rates.ToBase(expense.Amount, expense.Currency)
		if err != nil {
			return nil, err
		}

		buckets[i].Total = buckets[i].Total.Add(converted)
	}

	return buckets, nil
}
