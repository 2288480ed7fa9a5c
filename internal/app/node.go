package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nativedev/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/nativedev/internal/adapters/history"   //nolint:depguard // Wired in app layer
	"go.trai.ch/nativedev/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/nativedev/internal/adapters/statusapi" //nolint:depguard // Wired in app layer
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/nativedev/internal/engine/devserver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			devserver.NodeID,
			history.NodeID,
			statusapi.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	servers, err := graft.Dep[*devserver.Factory](ctx)
	if err != nil {
		return nil, err
	}

	histories, err := graft.Dep[ports.HistoryOpener](ctx)
	if err != nil {
		return nil, err
	}

	apis, err := graft.Dep[*statusapi.Factory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, servers, histories, apis, log), nil
}
