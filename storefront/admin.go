package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/emmaweasley/planet-jersey-shop/catalog"
)

// FormMode is the admin edit form's state.
type FormMode int

const (
	// FormClosed means no form is open.
	FormClosed FormMode = iota
	// FormCreate is an open form with blank fields, submitting a create.
	FormCreate
	// FormEdit is an open form pre-filled from an entry, submitting an
	// update for that entry's ID.
	FormEdit
)

// FormValues are the text-level form fields. Price stays a string until
// Submit validates it; an unparseable price never reaches the client.
type FormValues struct {
	Name        string
	Club        string
	Type        string
	Price       string
	Image       string
	Description string
	Sizes       []string
}

// ErrNoPendingDelete is returned when confirming or cancelling a delete
// with nothing selected.
var ErrNoPendingDelete = errors.New("no pending delete")

// AdminView manages the catalog: a product table plus a create/edit form
// and a confirm-before-delete flow. Every successful mutation is followed
// by an unconditional catalog re-fetch; the table never patches itself
// optimistically.
type AdminView struct {
	svc    CatalogService
	out    io.Writer
	logger *slog.Logger

	products []catalog.Product
	loaded   bool

	mode    FormMode
	editing *catalog.Product
	values  FormValues

	pendingDelete *catalog.Product
}

// NewAdminView creates an admin view writing to out.
func NewAdminView(svc CatalogService, out io.Writer, logger *slog.Logger) *AdminView {
	return &AdminView{
		svc:    svc,
		out:    out,
		logger: logger,
	}
}

// Refresh fetches the full catalog. On failure the previous table stays.
func (v *AdminView) Refresh(ctx context.Context) {
	products, err := v.svc.Products(ctx)
	if err != nil {
		v.logger.Error("Failed to load products", "error", err)
		fmt.Fprintln(v.out, "✗ Failed to load products")
		return
	}
	v.products = products
	v.loaded = true
}

// Products returns the currently loaded catalog.
func (v *AdminView) Products() []catalog.Product {
	out := make([]catalog.Product, len(v.products))
	copy(out, v.products)
	return out
}

// Render writes the management table.
func (v *AdminView) Render() {
	fmt.Fprintf(v.out, "Admin Dashboard — %d products\n\n", len(v.products))

	if len(v.products) == 0 {
		fmt.Fprintln(v.out, "No products yet. Add your first product!")
		return
	}

	w := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCLUB\tTYPE\tPRICE")
	for _, p := range v.products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t$%.2f\n",
			p.ID, p.Name, p.Club, p.Type.Label(), p.Price)
	}
	w.Flush()
}

// Mode returns the form's current state.
func (v *AdminView) Mode() FormMode {
	return v.mode
}

// Values returns the form's current field values.
func (v *AdminView) Values() FormValues {
	return v.values
}

// OpenCreate opens the form with blank fields.
func (v *AdminView) OpenCreate() {
	v.mode = FormCreate
	v.editing = nil
	v.values = FormValues{Type: string(catalog.KitHome)}
}

// OpenEdit opens the form pre-filled from the loaded product with the
// given ID.
func (v *AdminView) OpenEdit(id int) error {
	for i := range v.products {
		if v.products[i].ID != id {
			continue
		}
		p := v.products[i]
		v.mode = FormEdit
		v.editing = &p
		v.values = FormValues{
			Name:        p.Name,
			Club:        p.Club,
			Type:        string(p.Type),
			Price:       strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", p.Price), "0"), "."),
			Image:       p.Image,
			Description: p.Description,
			Sizes:       p.Sizes,
		}
		return nil
	}
	return fmt.Errorf("no product with ID %d", id)
}

// CloseForm discards the form without submitting.
func (v *AdminView) CloseForm() {
	v.mode = FormClosed
	v.editing = nil
	v.values = FormValues{}
}

// Submit validates the form values and calls create or update according to
// the form mode, then closes the form and re-fetches the catalog. Invalid
// values return an error and leave the form open.
func (v *AdminView) Submit(ctx context.Context, values FormValues) error {
	if v.mode == FormClosed {
		return errors.New("form is not open")
	}

	draft, err := draftFromValues(values)
	if err != nil {
		return err
	}

	switch v.mode {
	case FormCreate:
		created, err := v.svc.CreateProduct(ctx, draft)
		if err != nil {
			v.logger.Error("Failed to add product", "error", err)
			fmt.Fprintln(v.out, "✗ Failed to add product")
		} else {
			fmt.Fprintf(v.out, "✓ Product added successfully (ID %d)\n", created.ID)
		}
	case FormEdit:
		if _, err := v.svc.UpdateProduct(ctx, v.editing.ID, catalog.PatchFromDraft(draft)); err != nil {
			v.logger.Error("Failed to update product", "id", v.editing.ID, "error", err)
			fmt.Fprintln(v.out, "✗ Failed to update product")
		} else {
			fmt.Fprintln(v.out, "✓ Product updated successfully")
		}
	}

	v.CloseForm()
	v.Refresh(ctx)
	return nil
}

// draftFromValues validates the text-level form fields. The price text
// must parse as a non-negative decimal.
func draftFromValues(values FormValues) (catalog.Draft, error) {
	kitType, err := catalog.ParseKitType(values.Type)
	if err != nil {
		return catalog.Draft{}, err
	}

	price, err := decimal.NewFromString(strings.TrimSpace(values.Price))
	if err != nil {
		return catalog.Draft{}, fmt.Errorf("invalid price %q: must be a number", values.Price)
	}
	if price.IsNegative() {
		return catalog.Draft{}, fmt.Errorf("invalid price %q: must not be negative", values.Price)
	}

	draft := catalog.Draft{
		Name:        strings.TrimSpace(values.Name),
		Club:        strings.TrimSpace(values.Club),
		Type:        kitType,
		Price:       price.InexactFloat64(),
		Image:       strings.TrimSpace(values.Image),
		Description: strings.TrimSpace(values.Description),
		Sizes:       values.Sizes,
	}
	if err := draft.Validate(); err != nil {
		return catalog.Draft{}, err
	}
	return draft, nil
}

// RequestDelete selects a loaded product for deletion. Nothing is sent to
// the service until ConfirmDelete.
func (v *AdminView) RequestDelete(id int) error {
	for i := range v.products {
		if v.products[i].ID == id {
			p := v.products[i]
			v.pendingDelete = &p
			fmt.Fprintf(v.out, "Delete %q? This action cannot be undone.\n", p.Name)
			return nil
		}
	}
	return fmt.Errorf("no product with ID %d", id)
}

// PendingDelete returns the product awaiting confirmation, if any.
func (v *AdminView) PendingDelete() *catalog.Product {
	return v.pendingDelete
}

// ConfirmDelete issues the destructive call for the pending selection and
// re-fetches the catalog.
func (v *AdminView) ConfirmDelete(ctx context.Context) error {
	if v.pendingDelete == nil {
		return ErrNoPendingDelete
	}

	id := v.pendingDelete.ID
	if err := v.svc.DeleteProduct(ctx, id); err != nil {
		v.logger.Error("Failed to delete product", "id", id, "error", err)
		fmt.Fprintln(v.out, "✗ Failed to delete product")
	} else {
		fmt.Fprintln(v.out, "✓ Product deleted successfully")
	}

	v.pendingDelete = nil
	v.Refresh(ctx)
	return nil
}

// CancelDelete clears the pending selection without deleting.
func (v *AdminView) CancelDelete() error {
	if v.pendingDelete == nil {
		return ErrNoPendingDelete
	}
	v.pendingDelete = nil
	return nil
}
