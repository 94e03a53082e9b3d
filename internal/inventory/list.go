package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/erazemk/inventory/internal/loader"
	"github.com/erazemk/inventory/internal/model"
)

// ListState is the load state of the list.
type ListState int

// List states.
const (
	Loading ListState = iota
	Loaded
)

func (s ListState) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "loading"
}

// ListView renders the item list.
type ListView interface {
	ShowItems(items []model.Item)
	ShowEmpty()
	ShowMessage(msg string)
}

// ListController drives the item list.
type ListController struct {
	deps  Deps
	view  ListView
	state ListState
	items []model.Item
}

// NewList creates a list controller in the loading state.
func NewList(deps Deps, view ListView) *ListController {
	return &ListController{deps: deps, view: view, state: Loading}
}

// State returns the current load state.
func (c *ListController) State() ListState {
	return c.state
}

// Items returns a copy of the rendered items.
func (c *ListController) Items() []model.Item {
	return slices.Clone(c.items)
}

// BeginLoad dispatches the list query to the background worker.
// Pass the result to FinishLoad on the goroutine that owns the controller.
func (c *ListController) BeginLoad(ctx context.Context) <-chan loader.Result {
	return c.deps.Loader.Load(ctx)
}

// FinishLoad binds a load result to the view.
func (c *ListController) FinishLoad(res loader.Result) error {
	if res.Err != nil {
		return fmt.Errorf("loading items: %w", res.Err)
	}

	c.items = res.Items
	c.state = Loaded
	c.view.ShowItems(c.Items())
	if len(c.items) == 0 {
		c.view.ShowEmpty()
	}
	return nil
}

// LoadAll runs a full load and waits for it.
func (c *ListController) LoadAll(ctx context.Context) error {
	return c.FinishLoad(<-c.BeginLoad(ctx))
}

// OnSaleTapped sells one unit of item and refreshes the list.
// An item with nothing on hand is left alone.
func (c *ListController) OnSaleTapped(ctx context.Context, item model.Item) error {
	if item.Quantity <= 0 {
		return nil
	}

	item.Quantity--
	found, err := c.deps.Repo.Update(ctx, item)
	if err != nil {
		return fmt.Errorf("selling item: %w", err)
	}
	if !found {
		slog.Debug("sale on missing item ignored", "id", item.ID)
	} else {
		slog.Info("item sold", "id", item.ID, "item", item.Description, "quantity", item.Quantity)
	}

	return c.LoadAll(ctx)
}

// OnCreateRequested validates the create form, stores the new item and
// refreshes the list. Validation failures are shown to the user and returned.
func (c *ListController) OnCreateRequested(ctx context.Context, form model.ItemForm) (model.Item, error) {
	item, err := form.Parse()
	if err != nil {
		c.view.ShowMessage(model.UserMessage(err))
		return model.Item{}, err
	}

	item, err = c.deps.Repo.Insert(ctx, item)
	if err != nil {
		return model.Item{}, fmt.Errorf("creating item: %w", err)
	}
	slog.Info("item created", "id", item.ID, "item", item.Description)

	if err := c.LoadAll(ctx); err != nil {
		return item, err
	}
	return item, nil
}

// OnRowTapped opens a detail controller on a copy of item.
func (c *ListController) OnRowTapped(item model.Item, view DetailView) *DetailController {
	return NewDetail(c.deps, item, view)
}
