package history

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
)

// NodeID is the unique identifier for the build history Graft node.
const NodeID graft.ID = "adapter.history"

// Opener implements ports.HistoryOpener for the project layout.
type Opener struct{}

// OpenHistory opens the build history database of root.
func (Opener) OpenHistory(root string) (ports.BuildHistory, error) {
	s, err := Open(domain.HistoryPath(root))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func init() {
	graft.Register(graft.Node[ports.HistoryOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.HistoryOpener, error) {
			return Opener{}, nil
		},
	})
}
