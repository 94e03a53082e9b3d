package model

import (
	"math"
	"strconv"
	"strings"
)

// ItemForm holds the raw text of the create-item form.
type ItemForm struct {
	Description   string `json:"description"`
	Price         string `json:"price"`
	Quantity      string `json:"quantity"`
	SupplierEmail string `json:"supplier_email"`
	Image         string `json:"image"`
}

// Blank reports whether every field of the form is empty after trimming.
func (f ItemForm) Blank() bool {
	return strings.TrimSpace(f.Description) == "" &&
		strings.TrimSpace(f.Price) == "" &&
		strings.TrimSpace(f.Quantity) == "" &&
		strings.TrimSpace(f.SupplierEmail) == "" &&
		strings.TrimSpace(f.Image) == ""
}

// Parse validates the form and builds an unsaved Item from it.
// Blank price and quantity default to zero.
func (f ItemForm) Parse() (Item, error) {
	if f.Blank() {
		return Item{}, ErrBlankForm
	}

	priceText := strings.TrimSpace(f.Price)
	if priceText == "" {
		priceText = "0"
	}
	quantityText := strings.TrimSpace(f.Quantity)
	if quantityText == "" {
		quantityText = "0"
	}

	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return Item{}, ErrNotNumeric
	}
	quantity, err := strconv.Atoi(quantityText)
	if err != nil {
		return Item{}, ErrNotNumeric
	}

	item := Item{
		Description:   strings.TrimSpace(f.Description),
		Price:         price,
		Quantity:      quantity,
		SupplierEmail: strings.TrimSpace(f.SupplierEmail),
		Image:         strings.TrimSpace(f.Image),
	}
	if item.Price < 0 || item.Quantity < 0 {
		return Item{}, ErrNegative
	}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}
