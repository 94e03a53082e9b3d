package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erazemk/inventory/internal/inventory"
	"github.com/erazemk/inventory/internal/model"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			view := &listView{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
			return inventory.NewList(s.deps(cmd), view).LoadAll(cmd.Context())
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var form model.ItemForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			view := &listView{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
			_, err = inventory.NewList(s.deps(cmd), view).OnCreateRequested(cmd.Context(), form)
			return err
		},
	}

	cmd.Flags().StringVar(&form.Description, "description", "", "Item description (required)")
	cmd.Flags().StringVar(&form.Price, "price", "", "Unit price (default 0)")
	cmd.Flags().StringVar(&form.Quantity, "quantity", "", "Quantity on hand (default 0)")
	cmd.Flags().StringVar(&form.SupplierEmail, "email", "", "Supplier e-mail (required)")
	cmd.Flags().StringVar(&form.Image, "image", "", "Image path or file:// URI")
	return cmd
}

func newSellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <id>",
		Short: "Sell one unit of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			item, err := s.item(cmd, args[0])
			if err != nil {
				return err
			}

			view := &listView{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
			list := inventory.NewList(s.deps(cmd), view)
			if err := list.OnSaleTapped(cmd.Context(), item); err != nil {
				return err
			}
			if list.State() != inventory.Loaded {
				fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("Nothing on hand to sell."))
			}
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			item, err := s.item(cmd, args[0])
			if err != nil {
				return err
			}

			view := newDetailView(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), false)
			inventory.NewDetail(s.deps(cmd), item, view).Show()
			return nil
		},
	}
}

func newAdjustCmd(app *App) *cobra.Command {
	var sold, received string

	cmd := &cobra.Command{
		Use:   "adjust <id>",
		Short: "Record units sold or received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode model.AdjustMode
			var amount string
			switch {
			case cmd.Flags().Changed("sold"):
				mode, amount = model.AdjustSold, sold
			case cmd.Flags().Changed("received"):
				mode, amount = model.AdjustReceived, received
			default:
				return errors.New("one of --sold or --received is required")
			}

			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			item, err := s.item(cmd, args[0])
			if err != nil {
				return err
			}

			view := newDetailView(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), false)
			detail := inventory.NewDetail(s.deps(cmd), item, view)
			if err := detail.AdjustQuantity(cmd.Context(), mode, amount); err != nil {
				if errors.Is(err, model.ErrQuantityTooLarge) {
					fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render(model.UserMessage(err)))
				}
				return err
			}
			if detail.Item() == item {
				fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("No change."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sold, "sold", "", "Units sold")
	cmd.Flags().StringVar(&received, "received", "", "Units received")
	cmd.MarkFlagsMutuallyExclusive("sold", "received")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			item, err := s.item(cmd, args[0])
			if err != nil {
				return err
			}

			view := newDetailView(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), yes)
			deleted, err := inventory.NewDetail(s.deps(cmd), item, view).RequestDelete(cmd.Context())
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

func newReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id>",
		Short: "Print a mailto: link ordering more stock from the supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			item, err := s.item(cmd, args[0])
			if err != nil {
				return err
			}

			view := newDetailView(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), false)
			return inventory.NewDetail(s.deps(cmd), item, view).RequestReorder()
		},
	}
}
