package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emmaweasley/planet-jersey-shop/catalog"
	"github.com/emmaweasley/planet-jersey-shop/storefront"
)

// NewCartCommand groups the shopping cart operations.
func NewCartCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	cmd.AddCommand(
		newCartShowCommand(app),
		newCartAddCommand(app),
		newCartRemoveCommand(app),
		newCartUpdateCommand(app),
		newCartClearCommand(app),
		newCartCheckoutCommand(app),
	)

	return cmd
}

func newCartShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show cart contents and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			storefront.NewCartView(app.Cart(), app.Out).Render()
			return nil
		},
	}
}

func newCartAddCommand(app *App) *cobra.Command {
	var (
		quantity int
		size     string
	)

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a jersey to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID: %q", args[0])
			}

			p, err := app.Catalog().Product(cmd.Context(), id)
			if err != nil {
				app.Logger.Error("Failed to load product", "id", id, "error", err)
				if err == catalog.ErrNotFound {
					fmt.Fprintf(app.Out, "✗ No product with ID %d\n", id)
				} else {
					fmt.Fprintln(app.Out, "✗ Failed to load product")
				}
				return nil
			}

			store := app.Cart()
			before := store.TotalItems()
			store.Add(*p, quantity, size)
			if store.TotalItems() > before {
				fmt.Fprintf(app.Out, "✓ %s added to cart\n", p.Name)
			} else {
				fmt.Fprintf(app.Out, "✗ Could not add %s to cart\n", p.Name)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Quantity to add")
	cmd.Flags().StringVarP(&size, "size", "s", "", "Selected size")

	return cmd
}

func newCartRemoveCommand(app *App) *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID: %q", args[0])
			}

			storefront.NewCartView(app.Cart(), app.Out).Remove(id, size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&size, "size", "s", "", "Selected size of the line to remove")

	return cmd
}

func newCartUpdateCommand(app *App) *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "update <product-id> <quantity>",
		Short: "Set a line's quantity (0 removes the line)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID: %q", args[0])
			}
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity: %q", args[1])
			}

			storefront.NewCartView(app.Cart(), app.Out).UpdateQuantity(id, quantity, size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&size, "size", "s", "", "Selected size of the line to update")

	return cmd
}

func newCartClearCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			storefront.NewCartView(app.Cart(), app.Out).Clear()
			return nil
		},
	}
}

func newCartCheckoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Check out (stub)",
		RunE: func(cmd *cobra.Command, args []string) error {
			storefront.NewCartView(app.Cart(), app.Out).Checkout()
			return nil
		},
	}
}
