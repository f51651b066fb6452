package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luy-tracker/backend/internal/models"
)

// ErrConfirmationRequired is returned when a category delete targets a
// name that expenses still reference and the caller has not confirmed.
var ErrConfirmationRequired = errors.New("this category is still in use, deleting it requires confirmation")

// FallbackColor is used for category names that are not registered,
// including orphaned references left behind by a confirmed delete.
const FallbackColor = "#6c757d"

// palette is the fixed color cycle for categories. Order matters: the
// color of a category is derived from its position in the registry.
var palette = []string{
	"#007bff", // blue
	"#28a745", // green
	"#ffc107", // yellow
	"#dc3545", // red
	"#6f42c1", // purple
	"#fd7e14", // orange
	"#20c997", // teal
	"#17a2b8", // cyan
	"#6610f2", // indigo
	"#e83e8c", // pink
}

func defaultCategories() []string {
	return []string{"Food", "Travel", "Utilities", "Entertainment", "Shopping", "Healthcare"}
}

// CategoryDeleteRequest reports what a category delete would do. The
// decision to proceed is a caller concern, the registry only counts.
type CategoryDeleteRequest struct {
	Name                 string `json:"name" example:"Food"`              // Name of the category at the requested position
	UsageCount           int    `json:"usageCount" example:"2"`           // Number of expenses referencing the name
	RequiresConfirmation bool   `json:"requiresConfirmation" example:"true"` // Whether the delete needs to be confirmed
}

// Categories returns all registered category names in registry order.
func (l *Ledger) Categories() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.categories))
	copy(out, l.categories)
	return out
}

// AddCategory registers a new category name. The name is trimmed;
// an empty name is a validation error and an existing name is rejected
// with ErrDuplicateCategory.
func (l *Ledger) AddCategory(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return &models.ValidationError{Fields: []string{"name"}}
	}

	if l.position(name) >= 0 {
		return models.ErrDuplicateCategory
	}

	l.categories = append(l.categories, name)
	if err := l.save(); err != nil {
		l.categories = l.categories[:len(l.categories)-1]
		return err
	}

	return nil
}

// RenameCategory replaces the name at a position in place. Addressing
// is positional because the color of a category is derived from its
// position; callers must not interleave structural changes with a
// pending rename.
func (l *Ledger) RenameCategory(index int, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.categories) {
		return fmt.Errorf("%w category at position %d", models.ErrNotFound, index)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return &models.ValidationError{Fields: []string{"name"}}
	}

	if existing := l.position(name); existing >= 0 && existing != index {
		return models.ErrDuplicateCategory
	}

	previous := l.categories[index]
	l.categories[index] = name

	if err := l.save(); err != nil {
		l.categories[index] = previous
		return err
	}

	return nil
}

// RequestCategoryDelete reports the usage count for the category at a
// position without deleting anything.
func (l *Ledger) RequestCategoryDelete(index int) (CategoryDeleteRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.categories) {
		return CategoryDeleteRequest{}, fmt.Errorf("%w category at position %d", models.ErrNotFound, index)
	}

	name := l.categories[index]
	usage := l.usage(name)

	return CategoryDeleteRequest{
		Name:                 name,
		UsageCount:           usage,
		RequiresConfirmation: usage > 0,
	}, nil
}

// DeleteCategory removes the category at a position. When expenses
// still reference the name, the delete only proceeds with confirmed
// set. Referencing expenses are never touched: their category field
// keeps the now orphaned name.
func (l *Ledger) DeleteCategory(index int, confirmed bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.categories) {
		return fmt.Errorf("%w category at position %d", models.ErrNotFound, index)
	}

	if l.usage(l.categories[index]) > 0 && !confirmed {
		return ErrConfirmationRequired
	}

	previous := l.categories
	l.categories = append(append([]string{}, l.categories[:index]...), l.categories[index+1:]...)

	if err := l.save(); err != nil {
		l.categories = previous
		return err
	}

	return nil
}

// CategoryUsage returns the number of expenses referencing a name.
func (l *Ledger) CategoryUsage(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.usage(name)
}

// ColorOf returns the palette color assigned to a category by its
// registry position, or the fallback color for unregistered names.
func (l *Ledger) ColorOf(name string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.position(name)
	if i < 0 {
		return FallbackColor
	}

	return palette[i%len(palette)]
}

// usage counts expenses referencing a name. Callers must hold the mutex.
func (l *Ledger) usage(name string) int {
	count := 0
	for i := range l.expenses {
		if l.expenses[i].Category == name {
			count++
		}
	}

	return count
}

// position returns the registry position of a name, or -1 when the name
// is not registered. Matching is case-sensitive and exact.
// Callers must hold the mutex.
func (l *Ledger) position(name string) int {
	for i, category := range l.categories {
		if category == name {
			return i
		}
	}

	return -1
}
