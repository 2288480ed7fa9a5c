package ports

import (
	"context"

	"go.trai.ch/nativedev/internal/core/domain"
)

// BuildHistory persists finished builds.
//
//go:generate mockgen -source=history.go -destination=mocks/mock_history.go -package=mocks
type BuildHistory interface {
	// Record stores a finished build and returns its id.
	Record(ctx context.Context, rec domain.BuildRecord) (int64, error)
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.BuildRecord, error)
	// Close releases the underlying storage.
	Close() error
}

// HistoryOpener opens the build history of a project root.
type HistoryOpener interface {
	OpenHistory(root string) (BuildHistory, error)
}
