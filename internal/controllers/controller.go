// Package controllers implements the HTTP handlers of the API.
package controllers

import (
	"github.com/luy-tracker/backend/internal/ledger"
	"github.com/luy-tracker/backend/internal/storage"
)

// Controller holds the dependencies of all handlers.
type Controller struct {
	Ledger *ledger.Ledger
	KV     storage.KV
}
