package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emmaweasley/planet-jersey-shop/catalog"
	"github.com/emmaweasley/planet-jersey-shop/storefront"
)

// NewBrowseCommand lists the catalog with an optional kit-type filter.
func NewBrowseCommand(app *App) *cobra.Command {
	var kitType string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the jersey catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter catalog.KitType
			if kitType != "" {
				parsed, err := catalog.ParseKitType(kitType)
				if err != nil {
					return err
				}
				filter = parsed
			}

			view := storefront.NewBrowseView(app.Catalog(), app.Cart(), app.Out, app.Logger)
			view.SetFilter(filter)
			view.Refresh(cmd.Context())
			view.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&kitType, "type", "t", "", "Filter by kit type (home, away, third, fourth)")

	return cmd
}

// NewShowCommand prints a single product's details.
func NewShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one jersey in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID: %q", args[0])
			}

			view := storefront.NewBrowseView(app.Catalog(), app.Cart(), app.Out, app.Logger)
			view.ShowProduct(cmd.Context(), id)
			return nil
		},
	}
}
