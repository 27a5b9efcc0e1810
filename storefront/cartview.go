package storefront

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/emmaweasley/planet-jersey-shop/cart"
)

// CartView renders the cart store's contents and forwards quantity
// adjustments to it. Checkout is a stub with no backend contract.
type CartView struct {
	store *cart.Store
	out   io.Writer
}

// NewCartView creates a cart view writing to out.
func NewCartView(store *cart.Store, out io.Writer) *CartView {
	return &CartView{store: store, out: out}
}

// Render writes the cart lines and order summary.
func (v *CartView) Render() {
	lines := v.store.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(v.out, "Your cart is empty. Add some jerseys to get started!")
		return
	}

	w := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLUB\tNAME\tSIZE\tQTY\tSUBTOTAL")
	for _, l := range lines {
		size := l.SelectedSize
		if size == "" {
			size = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t$%s\n",
			l.ID, l.Club, l.Name, size, l.Quantity, l.Subtotal().StringFixed(2))
	}
	w.Flush()

	total := v.store.TotalPrice().StringFixed(2)
	fmt.Fprintf(v.out, "\nSubtotal:\t$%s\n", total)
	fmt.Fprintf(v.out, "Shipping:\tFree\n")
	fmt.Fprintf(v.out, "Total:\t\t$%s\n", total)
}

// Badge returns the navbar-style item count, e.g. "3 items".
func (v *CartView) Badge() string {
	n := v.store.TotalItems()
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// Remove deletes a line.
func (v *CartView) Remove(productID int, size string) {
	v.store.Remove(productID, size)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (v *CartView) UpdateQuantity(productID, quantity int, size string) {
	v.store.UpdateQuantity(productID, quantity, size)
}

// Clear empties the cart.
func (v *CartView) Clear() {
	v.store.Clear()
	fmt.Fprintln(v.out, "✓ Cart cleared")
}

// Checkout is a stub: there is no payment backend.
func (v *CartView) Checkout() {
	fmt.Fprintln(v.out, "✓ Checkout functionality coming soon!")
}
