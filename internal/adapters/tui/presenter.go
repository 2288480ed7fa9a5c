package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/zerr"
)

// Presenter runs the dev server screen as a bubbletea program.
type Presenter struct {
	out         io.Writer
	opts        []tea.ProgramOption
	disableTick bool
}

// NewPresenter creates a presenter rendering to out, stderr when nil.
func NewPresenter(out io.Writer, opts ...tea.ProgramOption) *Presenter {
	return &Presenter{out: out, opts: opts}
}

// WithDisableTick disables status polling of the models it creates.
func (p *Presenter) WithDisableTick() *Presenter {
	p.disableTick = true
	return p
}

// Run shows the screen until the user quits or ctx is done. The first build of
// the selected platform starts right away.
func (p *Presenter) Run(ctx context.Context, server ports.DevServer) error {
	model := NewModel(ctx, server, p.out)
	if p.disableTick {
		model = model.WithDisableTick()
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.out != nil {
		opts = append(opts, tea.WithOutput(p.out))
	}
	opts = append(opts, p.opts...)

	_, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return zerr.Wrap(err, "terminal interface failed")
	}
	return nil
}
