// Package cart implements the locally persisted shopping cart. The store
// owns the authoritative in-memory cart and mirrors every mutation to a
// JSON snapshot on disk before notifying observers, so a restart right
// after any mutation sees the post-mutation state.
//
// The store is confined to a single goroutine (the UI event loop); it does
// no locking of its own.
package cart

import (
	"bytes"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/emmaweasley/planet-jersey-shop/catalog"
)

// Line is one cart entry: a product plus purchase intent. Two lines are
// distinct iff they differ in product ID or selected size.
type Line struct {
	catalog.Product
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selectedSize,omitempty"`
}

// Subtotal returns price × quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.PriceDecimal().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Key identifies a cart line.
type Key struct {
	ProductID int
	Size      string
}

func (l Line) key() Key {
	return Key{ProductID: l.ID, Size: l.SelectedSize}
}

// Store maintains the cart and its durable mirror.
type Store struct {
	path   string
	logger *slog.Logger

	lines []Line
	index map[Key]int

	subscribers []func()

	// lastSnapshot is the encoding most recently written to or read from
	// disk, used to ignore watcher events for our own writes.
	lastSnapshot []byte
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store mirrored at path and rehydrates it from any
// existing snapshot. A missing or malformed snapshot yields an empty cart,
// never an error.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:   path,
		logger: slog.Default(),
		index:  make(map[Key]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.rehydrate()
	return s
}

// Subscribe registers fn to run synchronously after every mutation, once
// the snapshot has been persisted. It returns an unsubscribe function.
func (s *Store) Subscribe(fn func()) func() {
	s.subscribers = append(s.subscribers, fn)
	i := len(s.subscribers) - 1
	return func() {
		s.subscribers[i] = nil
	}
}

// Add merges quantity of product into the cart under (product ID, size).
// An existing line with the same key has its quantity incremented;
// otherwise a new line is appended.
//
// A non-positive quantity is a caller error: logged and ignored. So is a
// size the product does not declare; the cart is left untouched rather
// than silently coercing.
func (s *Store) Add(p catalog.Product, quantity int, size string) {
	if quantity < 1 {
		s.logger.Warn("Ignoring add with non-positive quantity",
			"product_id", p.ID,
			"quantity", quantity)
		return
	}
	if size != "" && !p.HasSize(size) {
		s.logger.Warn("Ignoring add with undeclared size",
			"product_id", p.ID,
			"size", size)
		return
	}

	key := Key{ProductID: p.ID, Size: size}
	if i, ok := s.index[key]; ok {
		s.lines[i].Quantity += quantity
	} else {
		s.lines = append(s.lines, Line{
			Product:      p,
			Quantity:     quantity,
			SelectedSize: size,
		})
		s.index[key] = len(s.lines) - 1
	}

	s.persist()
	s.notify()
}

// Remove deletes the line for (product ID, size). Removing an absent line
// is a no-op, not an error.
func (s *Store) Remove(productID int, size string) {
	key := Key{ProductID: productID, Size: size}
	i, ok := s.index[key]
	if !ok {
		return
	}

	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.reindex()

	s.persist()
	s.notify()
}

// UpdateQuantity sets the quantity for (product ID, size) directly.
// A quantity of zero or less removes the line, same as Remove.
func (s *Store) UpdateQuantity(productID, quantity int, size string) {
	if quantity <= 0 {
		s.Remove(productID, size)
		return
	}

	key := Key{ProductID: productID, Size: size}
	i, ok := s.index[key]
	if !ok {
		return
	}
	s.lines[i].Quantity = quantity

	s.persist()
	s.notify()
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.lines = nil
	s.index = make(map[Key]int)

	s.persist()
	s.notify()
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of distinct lines in the cart.
func (s *Store) Len() int {
	return len(s.lines)
}

// TotalItems returns the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice returns the sum of price × quantity across all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Reload re-reads the snapshot from disk, replacing in-memory state. It is
// meant for external rewrites (another session mutating the same cart
// file); a snapshot identical to the last one we wrote or read is skipped.
// Malformed snapshots degrade to an empty cart, as on startup.
func (s *Store) Reload() {
	data, err := readSnapshotBytes(s.path)
	if err != nil {
		s.logger.Debug("Cart reload skipped", "error", err)
		return
	}
	if bytes.Equal(data, s.lastSnapshot) {
		return
	}

	s.setLines(decodeSnapshot(data, s.logger))
	s.lastSnapshot = data
	s.notify()
}

func (s *Store) rehydrate() {
	data, err := readSnapshotBytes(s.path)
	if err != nil {
		// First run or unreadable mirror: start empty.
		s.logger.Debug("No cart snapshot loaded", "path", s.path, "error", err)
		return
	}
	s.setLines(decodeSnapshot(data, s.logger))
	s.lastSnapshot = data
}

func (s *Store) setLines(lines []Line) {
	s.lines = lines
	s.reindex()
}

func (s *Store) reindex() {
	s.index = make(map[Key]int, len(s.lines))
	for i, l := range s.lines {
		s.index[l.key()] = i
	}
}

func (s *Store) persist() {
	data, err := writeSnapshot(s.path, s.lines)
	if err != nil {
		// The in-memory cart stays valid; the mirror catches up on the
		// next successful write.
		s.logger.Warn("Failed to persist cart", "path", s.path, "error", err)
		return
	}
	s.lastSnapshot = data
}

func (s *Store) notify() {
	for _, fn := range s.subscribers {
		if fn != nil {
			fn()
		}
	}
}
