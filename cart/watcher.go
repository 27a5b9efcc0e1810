package cart

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the cart snapshot file for rewrites by other sessions,
// the way a browser tab observes storage events from its siblings. It only
// reports that the file changed; the event-loop owner decides when to call
// Store.Reload, keeping the store confined to one goroutine.
type Watcher struct {
	fw      *fsnotify.Watcher
	path    string
	logger  *slog.Logger
	changes chan struct{}
}

// NewWatcher watches the snapshot file at path. The parent directory is
// watched (and created if missing) so the snapshot is caught even when it
// does not exist yet.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cart directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch cart directory: %w", err)
	}

	return &Watcher{
		fw:      fw,
		path:    path,
		logger:  logger,
		changes: make(chan struct{}, 1),
	}, nil
}

// Changes signals whenever the snapshot file is written. The channel is
// coalescing: pending signals collapse into one.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run pumps filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Debug("Cart watcher error", "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
