package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emmaweasley/planet-jersey-shop/storefront"
)

// NewAdminCommand groups the catalog maintenance operations.
func NewAdminCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Maintain the jersey catalog",
	}

	cmd.AddCommand(
		newAdminListCommand(app),
		newAdminCreateCommand(app),
		newAdminEditCommand(app),
		newAdminDeleteCommand(app),
	)

	return cmd
}

func newAdminListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the management table",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := storefront.NewAdminView(app.Catalog(), app.Out, app.Logger)
			view.Refresh(cmd.Context())
			view.Render()
			return nil
		},
	}
}

// formFlags binds the edit form fields to command flags.
type formFlags struct {
	name        string
	club        string
	kitType     string
	price       string
	image       string
	description string
	sizes       []string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Product name")
	cmd.Flags().StringVar(&f.club, "club", "", "Club name")
	cmd.Flags().StringVar(&f.kitType, "type", "", "Kit type (home, away, third, fourth)")
	cmd.Flags().StringVar(&f.price, "price", "", "Price, e.g. 89.99")
	cmd.Flags().StringVar(&f.image, "image", "", "Image URL")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringSliceVar(&f.sizes, "sizes", nil, "Available sizes, e.g. S,M,L,XL")
}

// apply overlays set flags onto the form values the view prepared.
func (f *formFlags) apply(cmd *cobra.Command, values *storefront.FormValues) {
	if cmd.Flags().Changed("name") {
		values.Name = f.name
	}
	if cmd.Flags().Changed("club") {
		values.Club = f.club
	}
	if cmd.Flags().Changed("type") {
		values.Type = f.kitType
	}
	if cmd.Flags().Changed("price") {
		values.Price = f.price
	}
	if cmd.Flags().Changed("image") {
		values.Image = f.image
	}
	if cmd.Flags().Changed("description") {
		values.Description = f.description
	}
	if cmd.Flags().Changed("sizes") {
		values.Sizes = f.sizes
	}
}

func newAdminCreateCommand(app *App) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a new product",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := storefront.NewAdminView(app.Catalog(), app.Out, app.Logger)
			view.OpenCreate()

			values := view.Values()
			flags.apply(cmd, &values)

			return view.Submit(cmd.Context(), values)
		},
	}

	flags.register(cmd)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("club")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("image")

	return cmd
}

func newAdminEditCommand(app *App) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "edit <product-id>",
		Short: "Edit an existing product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID: %q", args[0])
			}

			view := storefront.NewAdminView(app.Catalog(), app.Out, app.Logger)
			view.Refresh(cmd.Context())
			if err := view.OpenEdit(id); err != nil {
				return err
			}

			// Flags overlay the pre-filled form, so an edit only has to
			// name the fields that change.
			values := view.Values()
			flags.apply(cmd, &values)

			return view.Submit(cmd.Context(), values)
		},
	}

	flags.register(cmd)

	return cmd
}

func newAdminDeleteCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product (asks for confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID: %q", args[0])
			}

			view := storefront.NewAdminView(app.Catalog(), app.Out, app.Logger)
			view.Refresh(cmd.Context())
			if err := view.RequestDelete(id); err != nil {
				return err
			}

			if !yes && !confirm(cmd.InOrStdin(), app.Out) {
				return view.CancelDelete()
			}

			return view.ConfirmDelete(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// confirm reads a y/N answer from in.
func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Confirm [y/N]: ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
