package model

import (
	"fmt"
	"strings"
)

// Item is one inventory record. The zero ID means the item has not been stored yet.
type Item struct {
	ID            int64   `json:"id"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	SupplierEmail string  `json:"supplier_email"`
	Image         string  `json:"image,omitempty"`
}

// Persisted reports whether the item has an identifier assigned by the store.
func (i Item) Persisted() bool {
	return i.ID != 0
}

// HasImage reports whether the item references a picture.
func (i Item) HasImage() bool {
	return strings.TrimSpace(i.Image) != ""
}

// Validate checks the invariants an item must hold before it is written.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Description) == "" || strings.TrimSpace(i.SupplierEmail) == "" {
		return ErrRequired
	}
	if i.Price < 0 || i.Quantity < 0 {
		return ErrNegative
	}
	return nil
}

// ReorderSubject is the subject line of the supplier reorder e-mail.
func (i Item) ReorderSubject() string {
	return "Product Order For " + i.Description
}

func (i Item) String() string {
	return fmt.Sprintf("#%d %s (qty %d)", i.ID, i.Description, i.Quantity)
}
