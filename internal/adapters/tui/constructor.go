// Package tui provides the interactive terminal interface of the dev server.
package tui

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/nativedev/internal/ui/output"
)

const defaultTickInterval = 100 * time.Millisecond

// NewModel creates a model driving server. Actions triggered by keys run with ctx.
func NewModel(ctx context.Context, server ports.DevServer, w io.Writer) *Model {
	if w == nil {
		w = os.Stderr
	}
	lipgloss.SetColorProfile(output.New(w).Profile)

	return &Model{
		ctx:          ctx,
		server:       server,
		Status:       server.Status(),
		Target:       server.Target(),
		TickInterval: defaultTickInterval,
	}
}

// WithDisableTick stops the model from polling the status on its own.
// Tests drive refreshes with explicit messages instead.
func (m *Model) WithDisableTick() *Model {
	m.DisableTick = true
	return m
}
