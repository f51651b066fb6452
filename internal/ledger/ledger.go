// Package ledger implements the expense ledger engine: the expense
// store and the category registry, together with their persistence
// lifecycle.
package ledger

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/luy-tracker/backend/internal/currency"
	"github.com/luy-tracker/backend/internal/models"
	"github.com/luy-tracker/backend/internal/storage"
)

// Ledger owns the expense store and the category registry.
//
// Both aggregates are kept in memory and written back to the key-value
// store as a pair on every mutation, so a crash can never leave the
// dashboard computed against half-saved state. All mutations are
// serialized behind a mutex; in particular a bulk import is applied as
// one critical section.
type Ledger struct {
	mu sync.Mutex

	kv    storage.KV
	rates currency.Rates

	expenses   []models.Expense
	categories []string
}

// New returns a Ledger persisting to kv. Call Load before use.
func New(kv storage.KV, rates currency.Rates) *Ledger {
	return &Ledger{
		kv:    kv,
		rates: rates,
	}
}

// Rates returns the rate table the ledger normalizes amounts with.
func (l *Ledger) Rates() currency.Rates {
	return l.rates
}

// Load reads both aggregates from the store. A key that has never been
// written means "use defaults": no expenses, the built-in category set.
func (l *Ledger) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	value, ok, err := l.kv.Get(storage.KeyExpenses)
	if err != nil {
		return err
	}

	expenses := make([]models.Expense, 0)
	if ok {
		if err := json.Unmarshal([]byte(value), &expenses); err != nil {
			return fmt.Errorf("loading expenses: %w", err)
		}
	}

	value, ok, err = l.kv.Get(storage.KeyCategories)
	if err != nil {
		return err
	}

	categories := defaultCategories()
	if ok {
		categories = make([]string, 0)
		if err := json.Unmarshal([]byte(value), &categories); err != nil {
			return fmt.Errorf("loading categories: %w", err)
		}
	}

	l.expenses = expenses
	l.categories = categories
	return nil
}

// save writes both aggregates together. Callers must hold the mutex.
func (l *Ledger) save() error {
	expenses, err := json.Marshal(l.expenses)
	if err != nil {
		return fmt.Errorf("saving expenses: %w", err)
	}

	categories, err := json.Marshal(l.categories)
	if err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}

	return l.kv.SetAll(map[string]string{
		storage.KeyExpenses:   string(expenses),
		storage.KeyCategories: string(categories),
	})
}

// Expenses returns all expenses in insertion order, oldest added first.
// This is not date order, consumers that need date order sort explicitly.
func (l *Ledger) Expenses() []models.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Expense returns a single expense by ID.
func (l *Ledger) Expense(id uuid.UUID) (models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, err := l.index(id)
	if err != nil {
		return models.Expense{}, err
	}

	return l.expenses[i], nil
}

// AddExpense validates the fields, assigns a fresh ID, appends the
// expense and persists. On a validation error no state is changed.
func (l *Ledger) AddExpense(editable models.ExpenseEditable) (models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	editable = editable.WithDefaults()
	if err := editable.Validate(l.rates); err != nil {
		return models.Expense{}, err
	}

	expense := models.Expense{
		ID:              uuid.New(),
		ExpenseEditable: editable,
	}

	l.expenses = append(l.expenses, expense)
	if err := l.save(); err != nil {
		l.expenses = l.expenses[:len(l.expenses)-1]
		return models.Expense{}, err
	}

	return expense, nil
}

// UpdateExpense replaces all mutable fields of the expense with the
// given ID. The ID is preserved.
func (l *Ledger) UpdateExpense(id uuid.UUID, editable models.ExpenseEditable) (models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, err := l.index(id)
	if err != nil {
		return models.Expense{}, err
	}

	editable = editable.WithDefaults()
	if err := editable.Validate(l.rates); err != nil {
		return models.Expense{}, err
	}

	previous := l.expenses[i]
	l.expenses[i] = models.Expense{
		ID:              id,
		ExpenseEditable: editable,
	}

	if err := l.save(); err != nil {
		l.expenses[i] = previous
		return models.Expense{}, err
	}

	return l.expenses[i], nil
}

// DeleteExpense removes the expense with the given ID.
func (l *Ledger) DeleteExpense(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, err := l.index(id)
	if err != nil {
		return err
	}

	previous := l.expenses
	l.expenses = append(append([]models.Expense{}, l.expenses[:i]...), l.expenses[i+1:]...)

	if err := l.save(); err != nil {
		l.expenses = previous
		return err
	}

	return nil
}

// ClearExpenses removes every expense. Categories are not touched.
// Confirmation is a caller concern.
func (l *Ledger) ClearExpenses() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	previous := l.expenses
	l.expenses = make([]models.Expense, 0)

	if err := l.save(); err != nil {
		l.expenses = previous
		return err
	}

	return nil
}

// ImportExpenses applies a bulk import batch. The whole batch is
// validated first; a single invalid row aborts the import with no state
// change. Every imported expense gets a fresh ID.
func (l *Ledger) ImportExpenses(editables []models.ExpenseEditable) ([]models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	imported := make([]models.Expense, 0, len(editables))
	for i, editable := range editables {
		editable = editable.WithDefaults()
		if err := editable.Validate(l.rates); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		imported = append(imported, models.Expense{
			ID:              uuid.New(),
			ExpenseEditable: editable,
		})
	}

	previous := l.expenses
	l.expenses = append(append([]models.Expense{}, l.expenses...), imported...)

	if err := l.save(); err != nil {
		l.expenses = previous
		return nil, err
	}

	return imported, nil
}

// index returns the position of the expense with the given ID.
// Callers must hold the mutex.
func (l *Ledger) index(id uuid.UUID) (int, error) {
	for i := range l.expenses {
		if l.expenses[i].ID == id {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w expense with ID %s", models.ErrNotFound, id)
}
