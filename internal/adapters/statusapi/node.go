package statusapi

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nativedev/internal/adapters/logger"
	"go.trai.ch/nativedev/internal/core/ports"
)

// NodeID is the unique identifier for the status API factory Graft node.
const NodeID graft.ID = "adapter.statusapi"

// Factory builds an API once the status source exists.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory whose APIs log to logger.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// New creates an API over source.
func (f *Factory) New(source StatusSource) *API {
	return New(source, f.logger)
}

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}
