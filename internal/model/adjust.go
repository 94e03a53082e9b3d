package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AdjustMode selects whether a quantity adjustment removes or adds stock.
type AdjustMode string

// Adjustment modes.
const (
	AdjustSold     AdjustMode = "sold"
	AdjustReceived AdjustMode = "received"
)

// ParseAdjustMode parses a mode name.
func ParseAdjustMode(s string) (AdjustMode, error) {
	switch AdjustMode(strings.ToLower(strings.TrimSpace(s))) {
	case AdjustSold:
		return AdjustSold, nil
	case AdjustReceived:
		return AdjustReceived, nil
	default:
		return "", fmt.Errorf("unknown adjust mode %q", s)
	}
}

// ParseAmount parses a non-negative adjustment amount.
func ParseAmount(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Adjust returns a copy of the item with its quantity changed by amount.
// Selling more than is on hand is rejected and leaves the quantity unchanged.
// Receiving has no business cap, but a total that would not fit in an int
// is rejected with ErrQuantityTooLarge.
func (i Item) Adjust(mode AdjustMode, amount int) (Item, error) {
	switch mode {
	case AdjustSold:
		if amount > i.Quantity {
			return i, ErrInsufficientStock
		}
		i.Quantity -= amount
	case AdjustReceived:
		if amount > math.MaxInt-i.Quantity {
			return i, ErrQuantityTooLarge
		}
		i.Quantity += amount
	default:
		return i, fmt.Errorf("unknown adjust mode %q", mode)
	}
	return i, nil
}
