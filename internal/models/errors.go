package models

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a mutation targets an expense ID or
	// category position that does not exist.
	ErrNotFound = errors.New("there is no")

	// ErrDuplicateCategory is returned when a category with the same name
	// is already registered.
	ErrDuplicateCategory = errors.New("this category already exists")
)

// ValidationError reports required fields that are missing or malformed.
// The failed operation has not changed any state.
type ValidationError struct {
	Fields []string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}
