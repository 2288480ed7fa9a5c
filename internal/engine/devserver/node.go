package devserver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nativedev/internal/adapters/browser"
	"go.trai.ch/nativedev/internal/adapters/logger"
	"go.trai.ch/nativedev/internal/adapters/shell"
	"go.trai.ch/nativedev/internal/adapters/watcher"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
)

// NodeID is the unique identifier for the dev server factory Graft node.
const NodeID graft.ID = "engine.devserver"

// Factory creates a Server once the project configuration is known.
type Factory struct {
	executor ports.Executor
	watchers ports.WatcherFactory
	browser  ports.BrowserOpener
	logger   ports.Logger
}

// NewFactory creates a Factory from the server's collaborators.
func NewFactory(
	executor ports.Executor,
	watchers ports.WatcherFactory,
	browser ports.BrowserOpener,
	logger ports.Logger,
) *Factory {
	return &Factory{executor: executor, watchers: watchers, browser: browser, logger: logger}
}

// New creates a Server for cfg.
func (f *Factory) New(cfg *domain.ProjectConfig) *Server {
	return New(cfg, f.executor, f.watchers, f.browser, f.logger)
}

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, watcher.NodeID, browser.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			watchers, err := graft.Dep[ports.WatcherFactory](ctx)
			if err != nil {
				return nil, err
			}
			opener, err := graft.Dep[ports.BrowserOpener](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(executor, watchers, opener, log), nil
		},
	})
}
