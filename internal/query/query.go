// Package query derives filtered views of the expense store. All
// functions are pure, the store is never modified.
package query

import (
	"sort"
	"strings"

	"github.com/luy-tracker/backend/internal/models"
)

// Filter returns the expenses matching a free-text search and a month.
//
// An expense passes when its note or category contains the search text
// case-insensitively (empty search passes everything) and its date
// starts with the month key (empty month key passes everything, month
// keys are YYYY-MM). The search text is matched literally, it is not a
// pattern. The result is sorted by date descending; the sort is stable
// so same-day expenses keep their insertion order across repeated calls.
func Filter(expenses []models.Expense, search, monthKey string) []models.Expense {
	needle := strings.ToLower(search)

	out := make([]models.Expense, 0, len(expenses))
	for _, expense := range expenses {
		matchesSearch := needle == "" ||
			strings.Contains(strings.ToLower(expense.Note), needle) ||
			strings.Contains(strings.ToLower(expense.Category), needle)

		matchesMonth := monthKey == "" || strings.HasPrefix(expense.Date, monthKey)

		if matchesSearch && matchesMonth {
			out = append(out, expense)
		}
	}

	// Dates are zero-padded YYYY-MM-DD, so the lexical order is the
	// chronological order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})

	return out
}

// DistinctMonths returns every month that has at least one expense,
// as YYYY-MM keys sorted descending.
func DistinctMonths(expenses []models.Expense) []string {
	seen := make(map[string]bool)

	months := make([]string, 0)
	for _, expense := range expenses {
		key := expense.MonthKey()
		if key == "" || seen[key] {
			continue
		}

		seen[key] = true
		months = append(months, key)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}
