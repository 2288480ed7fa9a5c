package ports

import (
	"context"
	"time"
)

// ChangeBatch is a debounced set of changed filesystem paths.
type ChangeBatch struct {
	Paths []string
}

// ChangeHandler receives accepted change batches on the watcher's goroutine.
type ChangeHandler func(ChangeBatch)

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// Ignore lists the path fragments whose changes are dropped.
	Ignore []string
	// Debounce is the window in which raw events are coalesced into one batch.
	Debounce time.Duration
}

// Watcher defines the interface for watching file system changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching root recursively and delivers accepted batches to handle.
	Start(ctx context.Context, root string, handle ChangeHandler) error
	// Stop releases the OS watch and returns once no further batch can be delivered.
	Stop() error
}

// WatcherFactory creates a fresh Watcher. Watchers are not reusable after Stop.
type WatcherFactory interface {
	NewWatcher(opts WatchOptions) (Watcher, error)
}
