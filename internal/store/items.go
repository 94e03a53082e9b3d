package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/inventory/internal/model"
)

const itemColumns = `_id, description, price, quantity, supplier, image`

// InsertItem writes a new item and returns it with the identifier assigned by the store.
// The caller validates the item beforehand.
func InsertItem(ctx context.Context, db *sql.DB, item model.Item) (model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO inventory (description, price, quantity, supplier, image) VALUES (?, ?, ?, ?, ?)`,
		item.Description, item.Price, item.Quantity, item.SupplierEmail, nullString(item.Image),
	)
	if err != nil {
		return model.Item{}, fmt.Errorf("inserting item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Item{}, fmt.Errorf("getting item id: %w", err)
	}

	item.ID = id
	return item, nil
}

// GetItem returns an item by ID, or nil if no row has that ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory WHERE _id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return &item, nil
}

// ListItems returns every item in storage order. No sort order is implied.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+itemColumns+` FROM inventory`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// UpdateItem overwrites every mutable column of the row with the item's ID.
// found is false when no row matched; that is not an error.
func UpdateItem(ctx context.Context, db *sql.DB, item model.Item) (found bool, err error) {
	result, err := db.ExecContext(ctx,
		`UPDATE inventory SET description = ?, price = ?, quantity = ?, supplier = ?, image = ?
		 WHERE _id = ?`,
		item.Description, item.Price, item.Quantity, item.SupplierEmail, nullString(item.Image), item.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating item: %w", err)
	}
	return affected(result)
}

// DeleteItem removes the row with the given ID.
// found is false when no row matched; that is not an error.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) (found bool, err error) {
	result, err := db.ExecContext(ctx, `DELETE FROM inventory WHERE _id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return affected(result)
}

// Summary holds aggregate stock figures.
type Summary struct {
	Items int
	Units int64
	Value float64
}

// Summarize returns the number of items, the units on hand and the stock value.
func Summarize(ctx context.Context, db *sql.DB) (Summary, error) {
	var s Summary
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * price), 0) FROM inventory`,
	).Scan(&s.Items, &s.Units, &s.Value)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing inventory: %w", err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (model.Item, error) {
	var item model.Item
	var image sql.NullString
	if err := s.Scan(&item.ID, &item.Description, &item.Price, &item.Quantity, &item.SupplierEmail, &image); err != nil {
		return model.Item{}, err
	}
	item.Image = image.String
	return item, nil
}

func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting affected rows: %w", err)
	}
	return n > 0, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
