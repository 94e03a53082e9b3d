package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/inventory/internal/model"
)

// DeletePrompt is the confirmation question shown before deleting an item.
const DeletePrompt = "Delete this item from the inventory?"

// ErrNoMailer is returned by RequestReorder when no mail composer is configured.
var ErrNoMailer = errors.New("no mail composer configured")

// DetailView renders a single item.
type DetailView interface {
	ShowItem(item model.Item, image []byte)
	ShowQuantityError(visible bool)
	ClearInput()
	Confirm(prompt string) bool
	NavigateToList()
}

// DetailController drives the detail screen of one item. It owns its copy
// of the item; changes reach other screens only through the repository.
type DetailController struct {
	deps  Deps
	view  DetailView
	item  model.Item
	image []byte
}

// NewDetail creates a detail controller for item.
func NewDetail(deps Deps, item model.Item, view DetailView) *DetailController {
	return &DetailController{deps: deps, view: view, item: item}
}

// Item returns the controller's current copy of the item.
func (d *DetailController) Item() model.Item {
	return d.item
}

// Show resolves the item's picture and renders the item. A picture that
// cannot be loaded is logged and the item is shown without one.
func (d *DetailController) Show() {
	d.image = nil
	if d.item.HasImage() && d.deps.Images != nil {
		data, err := d.deps.Images.Load(d.item.Image)
		if err != nil {
			slog.Warn("could not load item image", "id", d.item.ID, "image", d.item.Image, "error", err)
		} else {
			d.image = data
		}
	}
	d.view.ShowItem(d.item, d.image)
}

// AdjustQuantity applies a sold or received amount typed by the user and
// writes the item back immediately. Blank input is ignored; input that is
// not a non-negative integer is cleared without changing anything. Selling
// more than is on hand shows the quantity error and returns
// model.ErrInsufficientStock; a receipt that would overflow the quantity
// returns model.ErrQuantityTooLarge. If the item's row is gone the
// adjustment is dropped and the item is left as it was.
func (d *DetailController) AdjustQuantity(ctx context.Context, mode model.AdjustMode, amountText string) error {
	if strings.TrimSpace(amountText) == "" {
		return nil
	}

	amount, ok := model.ParseAmount(amountText)
	if !ok {
		d.view.ClearInput()
		return nil
	}

	adjusted, err := d.item.Adjust(mode, amount)
	if errors.Is(err, model.ErrInsufficientStock) {
		d.view.ShowQuantityError(true)
		return err
	}
	if err != nil {
		return err
	}

	found, err := d.deps.Repo.Update(ctx, adjusted)
	if err != nil {
		return fmt.Errorf("adjusting quantity: %w", err)
	}
	if !found {
		slog.Debug("adjustment on missing item ignored", "id", adjusted.ID)
		d.view.ClearInput()
		return nil
	}

	slog.Info("quantity adjusted", "id", adjusted.ID, "mode", string(mode), "amount", amount, "quantity", adjusted.Quantity)
	d.item = adjusted
	d.view.ShowQuantityError(false)
	d.view.ShowItem(d.item, d.image)
	d.view.ClearInput()
	return nil
}

// RequestDelete asks for confirmation, deletes the item and returns to the
// list. It reports whether the item was deleted.
func (d *DetailController) RequestDelete(ctx context.Context) (bool, error) {
	if !d.view.Confirm(DeletePrompt) {
		return false, nil
	}

	found, err := d.deps.Repo.Delete(ctx, d.item)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	if !found {
		slog.Debug("delete of missing item ignored", "id", d.item.ID)
	} else {
		slog.Info("item deleted", "id", d.item.ID, "item", d.item.Description)
	}

	d.view.NavigateToList()
	return true, nil
}

// RequestReorder opens an e-mail draft to the item's supplier.
func (d *DetailController) RequestReorder() error {
	if d.deps.Mailer == nil {
		return ErrNoMailer
	}
	if err := d.deps.Mailer.Compose(d.item.SupplierEmail, d.item.ReorderSubject()); err != nil {
		return fmt.Errorf("composing reorder e-mail: %w", err)
	}
	return nil
}
