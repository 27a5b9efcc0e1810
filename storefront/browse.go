package storefront

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/emmaweasley/planet-jersey-shop/cart"
	"github.com/emmaweasley/planet-jersey-shop/catalog"
)

// BrowseView is the storefront landing view: the catalog fetched once,
// narrowed by a client-side kit-type filter, with add-to-cart delegating
// to the cart store without touching the network.
type BrowseView struct {
	svc    CatalogService
	store  *cart.Store
	out    io.Writer
	logger *slog.Logger

	products []catalog.Product
	filter   catalog.KitType // empty = no filter
	loaded   bool
	loadErr  error
}

// NewBrowseView creates a browse view writing to out.
func NewBrowseView(svc CatalogService, store *cart.Store, out io.Writer, logger *slog.Logger) *BrowseView {
	return &BrowseView{
		svc:    svc,
		store:  store,
		out:    out,
		logger: logger,
	}
}

// Refresh fetches the full catalog. On failure the previously loaded
// products stay displayed and a notice is printed.
func (v *BrowseView) Refresh(ctx context.Context) {
	products, err := v.svc.Products(ctx)
	if err != nil {
		v.loadErr = err
		v.logger.Error("Failed to load products", "error", err)
		fmt.Fprintln(v.out, "✗ Failed to load products. Make sure the backend is running.")
		return
	}

	v.products = products
	v.loaded = true
	v.loadErr = nil
}

// SetFilter narrows the visible products to one kit type. An empty type
// clears the filter.
func (v *BrowseView) SetFilter(t catalog.KitType) {
	v.filter = t
}

// Filter returns the active kit-type filter, empty when showing all.
func (v *BrowseView) Filter() catalog.KitType {
	return v.filter
}

// Visible returns the filtered products in original catalog order.
func (v *BrowseView) Visible() []catalog.Product {
	if v.filter == "" {
		out := make([]catalog.Product, len(v.products))
		copy(out, v.products)
		return out
	}

	var out []catalog.Product
	for _, p := range v.products {
		if p.Type == v.filter {
			out = append(out, p)
		}
	}
	return out
}

// Render writes the product grid.
func (v *BrowseView) Render() {
	if v.loadErr != nil && !v.loaded {
		return
	}

	visible := v.Visible()
	if len(visible) == 0 {
		if v.filter != "" {
			fmt.Fprintln(v.out, "No jerseys found. Try a different filter.")
		} else {
			fmt.Fprintln(v.out, "No jerseys found.")
		}
		return
	}

	if v.filter != "" {
		fmt.Fprintf(v.out, "Showing %s jerseys\n\n", v.filter.Label())
	}

	w := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLUB\tNAME\tTYPE\tPRICE\tSIZES")
	for _, p := range visible {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t$%.2f\t%s\n",
			p.ID, p.Club, p.Name, p.Type.Label(), p.Price, strings.Join(p.Sizes, " "))
	}
	w.Flush()
}

// AddToCart delegates to the cart store for the visible product with the
// given ID. It never re-fetches the catalog.
func (v *BrowseView) AddToCart(id, quantity int, size string) {
	for _, p := range v.products {
		if p.ID != id {
			continue
		}
		before := v.store.TotalItems()
		v.store.Add(p, quantity, size)
		if v.store.TotalItems() > before {
			fmt.Fprintf(v.out, "✓ %s added to cart\n", p.Name)
		} else {
			fmt.Fprintf(v.out, "✗ Could not add %s to cart\n", p.Name)
		}
		return
	}

	fmt.Fprintf(v.out, "✗ No product with ID %d\n", id)
}

// ShowProduct fetches and renders a single product detail.
func (v *BrowseView) ShowProduct(ctx context.Context, id int) {
	p, err := v.svc.Product(ctx, id)
	if err != nil {
		v.logger.Error("Failed to load product", "id", id, "error", err)
		if err == catalog.ErrNotFound {
			fmt.Fprintf(v.out, "✗ No product with ID %d\n", id)
		} else {
			fmt.Fprintln(v.out, "✗ Failed to load product.")
		}
		return
	}

	fmt.Fprintf(v.out, "%s\n", p.Name)
	fmt.Fprintf(v.out, "%s · %s\n", p.Club, p.Type.Label())
	fmt.Fprintf(v.out, "$%.2f\n", p.Price)
	if len(p.Sizes) > 0 {
		fmt.Fprintf(v.out, "Sizes: %s\n", strings.Join(p.Sizes, " "))
	}
	if p.Description != "" {
		fmt.Fprintf(v.out, "\n%s\n", p.Description)
	}
	if p.Image != "" {
		fmt.Fprintf(v.out, "Image: %s\n", p.Image)
	}
}
