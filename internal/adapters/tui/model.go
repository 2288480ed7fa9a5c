package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
)

// TickMsg asks the model to refresh its status snapshot.
type TickMsg time.Time

// ActionDoneMsg reports the end of a rebuild, restart or platform switch.
type ActionDoneMsg struct {
	Err error
}

// RebuildRequestMsg reports an automatic rebuild request from the watcher.
type RebuildRequestMsg struct{}

// Model is the bubbletea model of the dev server screen.
// Only one action runs at a time; keys pressed meanwhile are dropped and
// automatic rebuild requests are deferred until the action ends.
type Model struct {
	ctx    context.Context
	server ports.DevServer

	Status         domain.BuildStatus
	Target         domain.Platform
	Busy           bool
	PendingRebuild bool
	Notice         string
	Width          int
	Quitting       bool

	TickInterval time.Duration
	DisableTick  bool
}

// Init builds the selected platform and starts the status and rebuild listeners.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.rebuild(), m.tick(), m.waitForRebuild())
}

// Update handles keys, status ticks and action results.
//
//nolint:cyclop // message dispatch
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case TickMsg:
		m.refresh()
		return m, m.tick()

	case RebuildRequestMsg:
		next := m.waitForRebuild()
		if m.Busy {
			m.PendingRebuild = true
			return m, next
		}
		return m, tea.Batch(m.rebuild(), next)

	case ActionDoneMsg:
		m.Busy = false
		m.Notice = ""
		if msg.Err != nil {
			m.Notice = msg.Err.Error()
		}
		m.refresh()
		if m.PendingRebuild {
			m.PendingRebuild = false
			return m, m.rebuild()
		}
	}

	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		m.Quitting = true
		return tea.Quit
	case "r":
		if m.Busy {
			return nil
		}
		return m.rebuild()
	case "s":
		if m.Busy {
			return nil
		}
		return m.run(m.server.Restart)
	}

	p, ok := platformForKey(key)
	if !ok || m.Busy {
		return nil
	}
	if !m.server.Config().Targets(p) {
		m.Notice = p.DisplayName() + " is not a target platform of this project"
		return nil
	}
	m.Target = p
	return m.run(func(ctx context.Context) error {
		return m.server.SetPlatform(ctx, p)
	})
}

func platformForKey(key string) (domain.Platform, bool) {
	for _, p := range domain.Platforms() {
		if p.Key() == key {
			return p, true
		}
	}
	return domain.Desktop, false
}

func (m *Model) rebuild() tea.Cmd {
	return m.run(func(ctx context.Context) error {
		m.server.Rebuild(ctx)
		return nil
	})
}

// run marks the model busy and performs action off the update loop.
func (m *Model) run(action func(context.Context) error) tea.Cmd {
	m.Busy = true
	m.Notice = ""
	ctx := m.ctx
	return func() tea.Msg {
		return ActionDoneMsg{Err: action(ctx)}
	}
}

func (m *Model) waitForRebuild() tea.Cmd {
	requests := m.server.RebuildRequests()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-requests:
			return RebuildRequestMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Model) tick() tea.Cmd {
	if m.DisableTick {
		return nil
	}
	return tea.Tick(m.TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m *Model) refresh() {
	m.Status = m.server.Status()
	m.Target = m.server.Target()
}
