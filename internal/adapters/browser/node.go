package browser

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nativedev/internal/core/ports"
)

// NodeID is the unique identifier for the browser opener Graft node.
const NodeID graft.ID = "adapter.browser"

func init() {
	graft.Register(graft.Node[ports.BrowserOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BrowserOpener, error) {
			return New(), nil
		},
	})
}
