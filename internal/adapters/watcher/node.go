package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nativedev/internal/adapters/logger"
	"go.trai.ch/nativedev/internal/core/ports"
)

// NodeID is the unique identifier for the watcher factory Graft node.
const NodeID graft.ID = "adapter.watcher"

// Factory creates fsnotify-backed watchers.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory whose watchers log to logger.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// NewWatcher implements ports.WatcherFactory.
func (f *Factory) NewWatcher(opts ports.WatchOptions) (ports.Watcher, error) {
	w, err := NewWatcher(opts, f.logger)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func init() {
	graft.Register(graft.Node[ports.WatcherFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.WatcherFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}
