package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewDocsCommand prints the catalog service contract this client expects.
func NewDocsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "Show the backend API this client talks to",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.Out, "PLANET JERSEY — backend API")
			fmt.Fprintln(app.Out)
			fmt.Fprintf(app.Out, "The client expects a catalog service at %s\n", app.Config.API.BaseURL)
			fmt.Fprintln(app.Out, "implementing these endpoints:")
			fmt.Fprintln(app.Out)

			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tENDPOINT\tDESCRIPTION")
			fmt.Fprintln(w, "GET\t/products\tList all products")
			fmt.Fprintln(w, "GET\t/products/{id}\tGet single product")
			fmt.Fprintln(w, "POST\t/products\tCreate product")
			fmt.Fprintln(w, "PUT\t/products/{id}\tUpdate product")
			fmt.Fprintln(w, "DELETE\t/products/{id}\tDelete product")
			w.Flush()

			fmt.Fprintln(app.Out)
			fmt.Fprintln(app.Out, "Product JSON shape:")
			fmt.Fprintln(app.Out, `  {id, name, club, type: "home"|"away"|"third"|"fourth",`)
			fmt.Fprintln(app.Out, `   price, image, description?, sizes?}`)
			return nil
		},
	}
}
