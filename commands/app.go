// Package commands provides the planetjersey CLI commands. Each command
// drives the storefront views over the shared application wiring.
package commands

import (
	"io"
	"log/slog"

	"github.com/emmaweasley/planet-jersey-shop/cart"
	"github.com/emmaweasley/planet-jersey-shop/catalog"
	"github.com/emmaweasley/planet-jersey-shop/config"
	"github.com/emmaweasley/planet-jersey-shop/storefront"
)

// App carries the wiring shared by all commands: resolved configuration,
// the catalog client and the cart store. The client and store are built
// lazily so that commands which touch neither (docs, version) never open
// the cart file.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Out    io.Writer

	svc   storefront.CatalogService
	store *cart.Store
}

// NewApp creates the command wiring.
func NewApp(cfg *config.Config, logger *slog.Logger, out io.Writer) *App {
	return &App{
		Config: cfg,
		Logger: logger,
		Out:    out,
	}
}

// Catalog returns the catalog client, creating it on first use.
func (a *App) Catalog() storefront.CatalogService {
	if a.svc == nil {
		a.svc = catalog.NewClient(a.Config.API.BaseURL,
			catalog.WithTimeout(a.Config.API.Timeout),
			catalog.WithLogger(a.Logger),
		)
	}
	return a.svc
}

// Cart returns the cart store, rehydrating it from disk on first use.
func (a *App) Cart() *cart.Store {
	if a.store == nil {
		a.store = cart.NewStore(a.Config.Cart.Path, cart.WithLogger(a.Logger))
	}
	return a.store
}

// SetCatalog overrides the catalog client (used by tests).
func (a *App) SetCatalog(svc storefront.CatalogService) {
	a.svc = svc
}

// cartWatcher creates a watcher on the configured cart snapshot.
func cartWatcher(a *App) (*cart.Watcher, error) {
	return cart.NewWatcher(a.Config.Cart.Path, a.Logger)
}
