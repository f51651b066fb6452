// Package storage persists the ledger state.
//
// The ledger saves its aggregates as two independent string values, one
// per key. Implementations only need to offer get and set-together
// semantics, mirroring the simple key-value store the tracker was built
// around.
package storage

import "errors"

// ErrStorage hides implementation details of storage failures from API consumers.
var ErrStorage = errors.New("an error occurred on the server during your request")

// Keys the ledger persists under.
const (
	KeyExpenses   = "expenses"
	KeyCategories = "categories"
)

// KV is a string key-value store.
type KV interface {
	// Get returns the value for a key. The second return value is false
	// when the key has never been written.
	Get(key string) (string, bool, error)

	// SetAll writes all pairs in a single atomic operation. Either every
	// pair is persisted or none is.
	SetAll(pairs map[string]string) error

	// Ping reports whether the store is reachable.
	Ping() error

	Close() error
}
