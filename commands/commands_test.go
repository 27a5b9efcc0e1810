package commands

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmaweasley/planet-jersey-shop/catalog"
	"github.com/emmaweasley/planet-jersey-shop/config"
)

// fakeCatalog is an in-memory catalog service that counts calls.
type fakeCatalog struct {
	products []catalog.Product
	nextID   int

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakeCatalog(products ...catalog.Product) *fakeCatalog {
	nextID := 1
	for _, p := range products {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}
	return &fakeCatalog{products: products, nextID: nextID}
}

func (f *fakeCatalog) Products(ctx context.Context) ([]catalog.Product, error) {
	f.listCalls++
	out := make([]catalog.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeCatalog) Product(ctx context.Context, id int) (*catalog.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, draft catalog.Draft) (*catalog.Product, error) {
	f.createCalls++
	p := catalog.Product{
		ID:          f.nextID,
		Name:        draft.Name,
		Club:        draft.Club,
		Type:        draft.Type,
		Price:       draft.Price,
		Image:       draft.Image,
		Description: draft.Description,
		Sizes:       draft.Sizes,
	}
	f.nextID++
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeCatalog) UpdateProduct(ctx context.Context, id int, patch catalog.Patch) (*catalog.Product, error) {
	f.updateCalls++
	for i := range f.products {
		if f.products[i].ID != id {
			continue
		}
		if patch.Name != nil {
			f.products[i].Name = *patch.Name
		}
		if patch.Price != nil {
			f.products[i].Price = *patch.Price
		}
		updated := f.products[i]
		return &updated, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) DeleteProduct(ctx context.Context, id int) error {
	f.deleteCalls++
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

func testProduct(id int, name string, price float64, sizes ...string) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  name,
		Club:  "Arsenal",
		Type:  catalog.KitHome,
		Price: price,
		Image: "https://example.com/jersey.jpg",
		Sizes: sizes,
	}
}

func newTestApp(t *testing.T, svc *fakeCatalog) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Cart.Path = filepath.Join(t.TempDir(), "cart.json")
	cfg.API.Timeout = time.Second

	out := &bytes.Buffer{}
	app := NewApp(cfg, slog.Default(), out)
	app.SetCatalog(svc)
	return app, out
}

func TestCartAddCommand(t *testing.T) {
	svc := newFakeCatalog(testProduct(1, "Arsenal Home", 89.99, "S", "M"))
	app, out := newTestApp(t, svc)

	cmd := newCartAddCommand(app)
	cmd.SetArgs([]string{"1", "--quantity", "2", "--size", "M"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 2, app.Cart().TotalItems())
	assert.Contains(t, out.String(), "✓ Arsenal Home added to cart")
}

func TestCartAddCommandUnknownProduct(t *testing.T) {
	app, out := newTestApp(t, newFakeCatalog())

	cmd := newCartAddCommand(app)
	cmd.SetArgs([]string{"99"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 0, app.Cart().TotalItems())
	assert.Contains(t, out.String(), "✗ No product with ID 99")
}

func TestCartAddCommandBadID(t *testing.T) {
	app, _ := newTestApp(t, newFakeCatalog())

	cmd := newCartAddCommand(app)
	cmd.SetArgs([]string{"abc"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	assert.Error(t, cmd.Execute())
}

func TestCartShowCommandEmpty(t *testing.T) {
	app, out := newTestApp(t, newFakeCatalog())

	cmd := newCartShowCommand(app)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Your cart is empty")
}

func TestCartUpdateCommandZeroRemoves(t *testing.T) {
	svc := newFakeCatalog(testProduct(1, "A", 50))
	app, _ := newTestApp(t, svc)

	add := newCartAddCommand(app)
	add.SetArgs([]string{"1"})
	require.NoError(t, add.Execute())
	require.Equal(t, 1, app.Cart().TotalItems())

	update := newCartUpdateCommand(app)
	update.SetArgs([]string{"1", "0"})
	require.NoError(t, update.Execute())

	assert.Equal(t, 0, app.Cart().TotalItems())
}

func TestAdminCreateCommand(t *testing.T) {
	svc := newFakeCatalog()
	app, out := newTestApp(t, svc)

	cmd := newAdminCreateCommand(app)
	cmd.SetArgs([]string{
		"--name", "Arsenal Home 24/25",
		"--club", "Arsenal",
		"--price", "89.99",
		"--image", "https://x/1.jpg",
		"--sizes", "S,M,L",
	})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 1, svc.createCalls)
	require.Len(t, svc.products, 1)
	assert.Equal(t, 89.99, svc.products[0].Price)
	assert.Equal(t, catalog.KitHome, svc.products[0].Type)
	assert.Equal(t, []string{"S", "M", "L"}, svc.products[0].Sizes)
	assert.Contains(t, out.String(), "✓ Product added successfully")
}

func TestAdminCreateCommandBadPrice(t *testing.T) {
	svc := newFakeCatalog()
	app, _ := newTestApp(t, svc)

	cmd := newAdminCreateCommand(app)
	cmd.SetArgs([]string{
		"--name", "A", "--club", "B", "--price", "cheap", "--image", "https://x/1.jpg",
	})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	assert.Error(t, cmd.Execute())
	assert.Equal(t, 0, svc.createCalls)
}

func TestAdminEditCommandOverlaysChangedFlags(t *testing.T) {
	svc := newFakeCatalog(testProduct(3, "Old Name", 50))
	app, _ := newTestApp(t, svc)

	cmd := newAdminEditCommand(app)
	cmd.SetArgs([]string{"3", "--price", "74.99"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 1, svc.updateCalls)
	require.Len(t, svc.products, 1)
	// Untouched fields come from the pre-filled form, not the zero value.
	assert.Equal(t, "Old Name", svc.products[0].Name)
	assert.Equal(t, 74.99, svc.products[0].Price)
}

func TestAdminDeleteCommandWithYes(t *testing.T) {
	svc := newFakeCatalog(testProduct(1, "A", 50))
	app, out := newTestApp(t, svc)

	cmd := newAdminDeleteCommand(app)
	cmd.SetArgs([]string{"1", "--yes"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 1, svc.deleteCalls)
	assert.Empty(t, svc.products)
	assert.Contains(t, out.String(), "✓ Product deleted successfully")
}

func TestAdminDeleteCommandDeclined(t *testing.T) {
	svc := newFakeCatalog(testProduct(1, "A", 50))
	app, _ := newTestApp(t, svc)

	cmd := newAdminDeleteCommand(app)
	cmd.SetArgs([]string{"1"})
	cmd.SetIn(bytes.NewBufferString("n\n"))
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 0, svc.deleteCalls)
	assert.Len(t, svc.products, 1)
}

func TestDocsCommandListsEndpoints(t *testing.T) {
	app, out := newTestApp(t, newFakeCatalog())

	cmd := NewDocsCommand(app)
	require.NoError(t, cmd.Execute())

	s := out.String()
	assert.Contains(t, s, "/products/{id}")
	for _, want := range []string{
		"List all products",
		"Get single product",
		"Create product",
		"Update product",
		"Delete product",
	} {
		assert.Contains(t, s, want)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		got := confirm(bytes.NewBufferString(tt.input), &bytes.Buffer{})
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}
