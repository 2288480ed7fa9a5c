package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nativedev/internal/adapters/watcher"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func TestWatcher_DeliversBatches(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), domain.DirPerm))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "target"), domain.DirPerm))

	w, err := watcher.NewWatcher(ports.WatchOptions{
		Ignore:   []string{"target"},
		Debounce: 20 * time.Millisecond,
	}, nopLogger{})
	require.NoError(t, err)

	batches := make(chan ports.ChangeBatch, 16)
	require.NoError(t, w.Start(context.Background(), root, func(b ports.ChangeBatch) {
		batches <- b
	}))
	t.Cleanup(func() { _ = w.Stop() })

	// Ignored writes alone produce nothing.
	require.NoError(t, os.WriteFile(filepath.Join(root, "target", "out.o"), []byte("x"), domain.FilePerm))
	select {
	case b := <-batches:
		t.Fatalf("unexpected batch for ignored path: %v", b.Paths)
	case <-time.After(300 * time.Millisecond):
	}

	src := filepath.Join(root, "src", "main.go")
	require.NoError(t, os.WriteFile(src, []byte("package main"), domain.FilePerm))

	select {
	case b := <-batches:
		assert.Contains(t, b.Paths, src)
		for _, p := range b.Paths {
			assert.NotContains(t, p, string(filepath.Separator)+"target"+string(filepath.Separator))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no batch delivered")
	}
}

func TestWatcher_StopJoinsAndIsIdempotent(t *testing.T) {
	root := t.TempDir()

	w, err := watcher.NewWatcher(ports.WatchOptions{Debounce: 10 * time.Millisecond}, nopLogger{})
	require.NoError(t, err)

	delivered := make(chan struct{}, 16)
	require.NoError(t, w.Start(context.Background(), root, func(ports.ChangeBatch) {
		delivered <- struct{}{}
	}))

	require.NoError(t, w.Stop())
	_ = w.Stop()

	// Nothing is delivered after Stop returned.
	_ = os.WriteFile(filepath.Join(root, "late.go"), []byte("x"), domain.FilePerm)
	select {
	case <-delivered:
		t.Fatal("batch delivered after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_StartErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		w, err := watcher.NewWatcher(ports.WatchOptions{}, nopLogger{})
		require.NoError(t, err)
		t.Cleanup(func() { _ = w.Stop() })

		err = w.Start(context.Background(), filepath.Join(t.TempDir(), "missing"), func(ports.ChangeBatch) {})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrWatchRootNotFound)
		assert.ErrorContains(t, err, domain.ErrWatchFailed.Error())
	})

	t.Run("started twice", func(t *testing.T) {
		w, err := watcher.NewWatcher(ports.WatchOptions{}, nopLogger{})
		require.NoError(t, err)
		t.Cleanup(func() { _ = w.Stop() })

		root := t.TempDir()
		require.NoError(t, w.Start(context.Background(), root, func(ports.ChangeBatch) {}))
		err = w.Start(context.Background(), root, func(ports.ChangeBatch) {})
		assert.ErrorContains(t, err, domain.ErrWatcherAlreadyStarted.Error())
	})
}

func TestFactory(t *testing.T) {
	f := watcher.NewFactory(nopLogger{})
	w, err := f.NewWatcher(ports.WatchOptions{})
	require.NoError(t, err)
	require.NoError(t, w.Stop())
}
