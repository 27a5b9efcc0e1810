package storefront_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/emmaweasley/planet-jersey-shop/cart"
	"github.com/emmaweasley/planet-jersey-shop/catalog"
)

// stubCatalog is an in-memory catalog service that counts calls.
type stubCatalog struct {
	products []catalog.Product
	nextID   int
	failList bool

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
}

var errStub = errors.New("service unavailable")

func newStubCatalog(products ...catalog.Product) *stubCatalog {
	nextID := 1
	for _, p := range products {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}
	return &stubCatalog{products: products, nextID: nextID}
}

func (s *stubCatalog) Products(ctx context.Context) ([]catalog.Product, error) {
	s.listCalls++
	if s.failList {
		return nil, errStub
	}
	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *stubCatalog) Product(ctx context.Context, id int) (*catalog.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (s *stubCatalog) CreateProduct(ctx context.Context, draft catalog.Draft) (*catalog.Product, error) {
	s.createCalls++
	p := catalog.Product{
		ID:          s.nextID,
		Name:        draft.Name,
		Club:        draft.Club,
		Type:        draft.Type,
		Price:       draft.Price,
		Image:       draft.Image,
		Description: draft.Description,
		Sizes:       draft.Sizes,
	}
	s.nextID++
	s.products = append(s.products, p)
	return &p, nil
}

func (s *stubCatalog) UpdateProduct(ctx context.Context, id int, patch catalog.Patch) (*catalog.Product, error) {
	s.updateCalls++
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		p := &s.products[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Club != nil {
			p.Club = *patch.Club
		}
		if patch.Type != nil {
			p.Type = *patch.Type
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Image != nil {
			p.Image = *patch.Image
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Sizes != nil {
			p.Sizes = patch.Sizes
		}
		updated := *p
		return &updated, nil
	}
	return nil, catalog.ErrNotFound
}

func (s *stubCatalog) DeleteProduct(ctx context.Context, id int) error {
	s.deleteCalls++
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

func jersey(id int, name string, kitType catalog.KitType, price float64, sizes ...string) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  name,
		Club:  "Arsenal",
		Type:  kitType,
		Price: price,
		Image: "https://example.com/jersey.jpg",
		Sizes: sizes,
	}
}

func newTestCart(t *testing.T) *cart.Store {
	t.Helper()
	return cart.NewStore(filepath.Join(t.TempDir(), "cart.json"))
}
