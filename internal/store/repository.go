package store

import (
	"context"
	"database/sql"

	"github.com/erazemk/inventory/internal/model"
)

// Items is a stateless facade over the item functions for callers that
// depend on an interface rather than on *sql.DB.
type Items struct {
	DB *sql.DB
}

// Insert stores a new item and returns it with its ID set.
func (r Items) Insert(ctx context.Context, item model.Item) (model.Item, error) {
	return InsertItem(ctx, r.DB, item)
}

// Get returns the item with the given ID, or nil.
func (r Items) Get(ctx context.Context, id int64) (*model.Item, error) {
	return GetItem(ctx, r.DB, id)
}

// List returns every stored item.
func (r Items) List(ctx context.Context) ([]model.Item, error) {
	return ListItems(ctx, r.DB)
}

// Update writes the item back to its row.
func (r Items) Update(ctx context.Context, item model.Item) (bool, error) {
	return UpdateItem(ctx, r.DB, item)
}

// Delete removes the item's row.
func (r Items) Delete(ctx context.Context, item model.Item) (bool, error) {
	return DeleteItem(ctx, r.DB, item.ID)
}
