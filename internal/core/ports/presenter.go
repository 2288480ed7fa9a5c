package ports

import (
	"context"

	"go.trai.ch/nativedev/internal/core/domain"
)

// DevServer is the part of the dev server a presenter drives.
//
//go:generate mockgen -source=presenter.go -destination=mocks/mock_presenter.go -package=mocks
type DevServer interface {
	// Status returns a snapshot of the current build status.
	Status() domain.BuildStatus
	// Target returns the currently selected platform.
	Target() domain.Platform
	// Config returns the project configuration the server was created with.
	Config() *domain.ProjectConfig
	// Rebuild builds the current target. Failures are reported through Status.
	Rebuild(ctx context.Context)
	// Restart stops every child process and the watcher, then watches and builds again.
	Restart(ctx context.Context) error
	// SetPlatform switches the target and rebuilds it.
	SetPlatform(ctx context.Context, p domain.Platform) error
	// RebuildRequests signals when an accepted change asks for an automatic rebuild.
	RebuildRequests() <-chan struct{}
}

// Presenter shows the dev server to the user until ctx is done or the user quits.
type Presenter interface {
	Run(ctx context.Context, server DevServer) error
}
