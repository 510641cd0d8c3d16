package repository

import (
	"context"

	"github.com/beanboard/menu-service/internal/menu"
)

// Store is everything the menu service needs from a document store.
// Implementations must be safe for concurrent use.
type Store interface {
	// List enumerates every item in the store's native order.
	List(ctx context.Context) ([]menu.MenuItem, error)
	// Add persists a new item and returns the id the store generated for it.
	// Any ID already set on item is ignored.
	Add(ctx context.Context, item menu.MenuItem) (string, error)
	// Update merges the submitted patch fields into the stored item.
	// It returns menu.ErrNotFound when id does not exist.
	Update(ctx context.Context, id string, p menu.Patch) error
	// Delete removes the item. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// Pinger is implemented by stores that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
