// Package watcher implements recursive file system watching with ignore
// filtering and debouncing.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	ignore    domain.IgnoreSet
	opts      ports.WatchOptions
	logger    ports.Logger

	mu        sync.Mutex
	root      string
	started   bool
	debouncer *Debouncer
	stop      chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
	stopErr   error
}

// NewWatcher creates a watcher. It does not watch anything until Start.
func NewWatcher(opts ports.WatchOptions, logger ports.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	if opts.Debounce <= 0 {
		opts.Debounce = domain.DefaultDebounce
	}
	return &Watcher{
		fsWatcher: fsw,
		ignore:    domain.NewIgnoreSet(opts.Ignore...),
		opts:      opts,
		logger:    logger,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Start watches root and every directory below it that is not ignored.
// Accepted batches are passed to handle on the watcher's goroutine.
func (w *Watcher) Start(ctx context.Context, root string, handle ports.ChangeHandler) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return zerr.With(domain.ErrWatcherAlreadyStarted, "root", w.root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "root", root)
	}
	if info, statErr := os.Stat(absRoot); statErr != nil || !info.IsDir() {
		return zerr.With(zerr.Wrap(domain.ErrWatchRootNotFound, domain.ErrWatchFailed.Error()), "root", absRoot)
	}

	w.root = absRoot
	for dir := range w.watchRecursively(absRoot) {
		if addErr := w.fsWatcher.Add(dir); addErr != nil {
			return zerr.With(zerr.Wrap(addErr, domain.ErrWatchFailed.Error()), "path", dir)
		}
	}

	w.debouncer = NewDebouncer(w.opts.Debounce, func(paths []string) {
		slices.Sort(paths)
		handle(ports.ChangeBatch{Paths: paths})
	})
	w.started = true

	go w.processEvents(ctx)

	return nil
}

// Stop closes the OS watch and waits for the event goroutine and any batch
// delivery in flight. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.stopErr = w.fsWatcher.Close()

		w.mu.Lock()
		started, debouncer := w.started, w.debouncer
		w.mu.Unlock()

		if started {
			<-w.done
		}
		if debouncer != nil {
			debouncer.Stop()
		}
	})
	return w.stopErr
}

// watchRecursively yields root and every non-ignored directory below it.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directories are skipped, not fatal.
				return nil //nolint:nilerr // keep walking
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && w.ignored(path) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// ignored matches path relative to the watch root, so that a root which
// itself lives under an ignored name is still watched.
func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	return w.ignore.Matches(rel)
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.dispatch(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher: " + err.Error())
		}
	}
}

// dispatch filters one raw event and feeds it to the debouncer.
func (w *Watcher) dispatch(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	if w.ignored(event.Name) {
		return
	}

	w.debouncer.Add(event.Name)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			for dir := range w.watchRecursively(event.Name) {
				_ = w.fsWatcher.Add(dir)
			}
		}
	}
}
