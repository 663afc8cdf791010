// Package store provides item storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/wastenot-app/wastenot/internal/model"
)

// Store errors.
var (
	ErrNotFound  = errors.New("item not found")
	ErrInvalidID = errors.New("invalid item ID")
	ErrNilItem   = errors.New("item cannot be nil")
)

// Store defines the interface for item storage operations. Items are
// immutable once created: the interface deliberately has no update.
type Store interface {
	// List returns a snapshot of all items. Order is unspecified but
	// stable for the duration of the call.
	List(ctx context.Context) ([]model.Item, error)

	// Get retrieves an item by its ID.
	Get(ctx context.Context, id string) (*model.Item, error)

	// Create validates the item, assigns a fresh ID and creation time,
	// applies category/storage defaults, and persists it durably before
	// returning.
	Create(ctx context.Context, item *model.Item) (*model.Item, error)

	// Delete removes the item with the given ID if present and reports
	// whether a removal occurred. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) (bool, error)
}
