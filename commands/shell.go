package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emmaweasley/planet-jersey-shop/catalog"
	"github.com/emmaweasley/planet-jersey-shop/storefront"
)

// NewShellCommand runs the interactive storefront session: one event loop
// owning every view and the cart store, the closest analog to the single
// UI thread of a browser storefront. The cart badge re-renders after every
// mutation, and rewrites of the cart file by other sessions are folded in
// through the watcher.
func NewShellCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive storefront session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := newShell(app)
			return sh.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type shell struct {
	app    *App
	browse *storefront.BrowseView
	cart   *storefront.CartView
	admin  *storefront.AdminView
}

func newShell(app *App) *shell {
	return &shell{
		app:    app,
		browse: storefront.NewBrowseView(app.Catalog(), app.Cart(), app.Out, app.Logger),
		cart:   storefront.NewCartView(app.Cart(), app.Out),
		admin:  storefront.NewAdminView(app.Catalog(), app.Out, app.Logger),
	}
}

func (s *shell) run(ctx context.Context, in io.Reader) error {
	store := s.app.Cart()

	// Badge refresh on every cart mutation, after the snapshot persists.
	unsubscribe := store.Subscribe(func() {
		fmt.Fprintf(s.app.Out, "🛒 %s — $%s\n", s.cart.Badge(), store.TotalPrice().StringFixed(2))
	})
	defer unsubscribe()

	// Cross-session cart sync. The watcher only signals; the reload runs
	// here on the event loop, keeping the store single-threaded.
	var changes <-chan struct{}
	if watcher, err := cartWatcher(s.app); err != nil {
		s.app.Logger.Debug("Cart watcher unavailable", "error", err)
	} else {
		defer watcher.Close()
		go watcher.Run(ctx)
		changes = watcher.Changes()
	}

	// Reader goroutine: stdin lines feed the event loop. The done channel
	// releases a blocked send when the session ends mid-input.
	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	fmt.Fprintln(s.app.Out, "PLANET JERSEY — type 'help' for commands, 'quit' to leave")
	s.browse.Refresh(ctx)
	s.browse.Render()

	for {
		fmt.Fprint(s.app.Out, "> ")
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			store.Reload()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := s.dispatch(ctx, line); quit {
				return nil
			}
		}
	}
}

// dispatch routes one input line. It returns true when the session ends.
func (s *shell) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		s.printHelp()
	case "browse":
		s.browse.Refresh(ctx)
		s.browse.Render()
	case "filter":
		s.handleFilter(args)
	case "show":
		if id, ok := s.intArg(args, 0, "product ID"); ok {
			s.browse.ShowProduct(ctx, id)
		}
	case "add":
		s.handleAdd(args)
	case "cart":
		s.cart.Render()
	case "remove":
		if id, ok := s.intArg(args, 0, "product ID"); ok {
			s.cart.Remove(id, optArg(args, 1))
		}
	case "qty":
		id, ok := s.intArg(args, 0, "product ID")
		if !ok {
			return false
		}
		quantity, ok := s.intArg(args, 1, "quantity")
		if !ok {
			return false
		}
		s.cart.UpdateQuantity(id, quantity, optArg(args, 2))
	case "clear":
		s.cart.Clear()
	case "checkout":
		s.cart.Checkout()
	case "admin":
		s.admin.Refresh(ctx)
		s.admin.Render()
	case "new":
		s.handleForm(ctx, args, 0)
	case "edit":
		if id, ok := s.intArg(args, 0, "product ID"); ok {
			s.handleForm(ctx, args[1:], id)
		}
	case "delete":
		if id, ok := s.intArg(args, 0, "product ID"); ok {
			s.admin.Refresh(ctx)
			if err := s.admin.RequestDelete(id); err != nil {
				fmt.Fprintf(s.app.Out, "✗ %v\n", err)
			} else {
				fmt.Fprintln(s.app.Out, "Type 'confirm' to delete or 'cancel' to keep it.")
			}
		}
	case "confirm":
		if err := s.admin.ConfirmDelete(ctx); err != nil {
			fmt.Fprintf(s.app.Out, "✗ %v\n", err)
		}
	case "cancel":
		if err := s.admin.CancelDelete(); err != nil {
			fmt.Fprintf(s.app.Out, "✗ %v\n", err)
		}
	default:
		fmt.Fprintf(s.app.Out, "Unknown command %q — type 'help'\n", cmd)
	}

	return false
}

func (s *shell) handleFilter(args []string) {
	if len(args) == 0 || args[0] == "all" {
		s.browse.SetFilter("")
		s.browse.Render()
		return
	}

	kitType, err := catalog.ParseKitType(args[0])
	if err != nil {
		fmt.Fprintf(s.app.Out, "✗ %v\n", err)
		return
	}
	s.browse.SetFilter(kitType)
	s.browse.Render()
}

// handleAdd parses "add <id> [qty] [size]" and delegates to the browse
// view, which uses its already-fetched catalog — no re-fetch.
func (s *shell) handleAdd(args []string) {
	id, ok := s.intArg(args, 0, "product ID")
	if !ok {
		return
	}

	quantity := 1
	size := ""
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			quantity = n
			size = optArg(args, 2)
		} else {
			size = args[1]
		}
	}

	s.browse.AddToCart(id, quantity, size)
}

// handleForm drives the admin form from key=value tokens, e.g.
//
//	new name=Arsenal_Home club=Arsenal type=home price=89.99 image=...
//	edit 3 price=74.99
//
// id == 0 opens the form for create; otherwise for edit, pre-filled.
func (s *shell) handleForm(ctx context.Context, args []string, id int) {
	if id == 0 {
		s.admin.OpenCreate()
	} else {
		s.admin.Refresh(ctx)
		if err := s.admin.OpenEdit(id); err != nil {
			fmt.Fprintf(s.app.Out, "✗ %v\n", err)
			return
		}
	}

	values := s.admin.Values()
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			fmt.Fprintf(s.app.Out, "✗ Expected key=value, got %q\n", arg)
			s.admin.CloseForm()
			return
		}
		// Underscores stand in for spaces in free-text fields.
		value = strings.ReplaceAll(value, "_", " ")

		switch key {
		case "name":
			values.Name = value
		case "club":
			values.Club = value
		case "type":
			values.Type = value
		case "price":
			values.Price = value
		case "image":
			values.Image = value
		case "description":
			values.Description = value
		case "sizes":
			values.Sizes = strings.Split(value, ",")
		default:
			fmt.Fprintf(s.app.Out, "✗ Unknown field %q\n", key)
			s.admin.CloseForm()
			return
		}
	}

	if err := s.admin.Submit(ctx, values); err != nil {
		fmt.Fprintf(s.app.Out, "✗ %v\n", err)
		s.admin.CloseForm()
	}
}

func (s *shell) intArg(args []string, i int, what string) (int, bool) {
	if len(args) <= i {
		fmt.Fprintf(s.app.Out, "✗ Missing %s\n", what)
		return 0, false
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		fmt.Fprintf(s.app.Out, "✗ Invalid %s: %q\n", what, args[i])
		return 0, false
	}
	return n, true
}

func optArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

func (s *shell) printHelp() {
	fmt.Fprint(s.app.Out, `Shop
  browse                 reload and show the catalog
  filter <type|all>      narrow by kit type (home, away, third, fourth)
  show <id>              product details
  add <id> [qty] [size]  add to cart

Cart
  cart                   show cart and totals
  qty <id> <n> [size]    set line quantity (0 removes)
  remove <id> [size]     remove a line
  clear                  empty the cart
  checkout               check out (stub)

Admin
  admin                  show the management table
  new key=value ...      create a product (name, club, type, price, image,
                         description, sizes=S,M,L; use _ for spaces)
  edit <id> key=value .. update fields of a product
  delete <id>            select a product for deletion
  confirm / cancel       resolve a pending deletion

  quit                   leave the session
`)
}
