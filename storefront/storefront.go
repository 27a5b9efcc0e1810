// Package storefront implements the user-facing views: catalog browsing,
// the shopping cart, and catalog administration. Views render plain text
// to an io.Writer and recover from every remote failure at their own
// boundary; a failed call surfaces as a printed notice plus a logged
// diagnostic and never disturbs previously displayed state.
package storefront

import (
	"context"

	"github.com/emmaweasley/planet-jersey-shop/catalog"
)

// CatalogService is the slice of the catalog client the views consume.
type CatalogService interface {
	Products(ctx context.Context) ([]catalog.Product, error)
	Product(ctx context.Context, id int) (*catalog.Product, error)
	CreateProduct(ctx context.Context, draft catalog.Draft) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, id int, patch catalog.Patch) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

var _ CatalogService = (*catalog.Client)(nil)
