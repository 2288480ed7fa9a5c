// Package linear prints dev server status transitions as plain lines, for
// terminals without input and CI logs.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/nativedev/internal/ui/output"
	"go.trai.ch/nativedev/internal/ui/style"
)

// DefaultPollInterval is how often the status is sampled while a build runs.
const DefaultPollInterval = 100 * time.Millisecond

// ANSI colors of the status lines.
const (
	colorGreen  = "2"
	colorRed    = "1"
	colorYellow = "3"
)

// Presenter implements ports.Presenter without key bindings: it builds once,
// then rebuilds on automatic rebuild requests until the context is done.
type Presenter struct {
	output       *termenv.Output
	pollInterval time.Duration

	mu         sync.Mutex
	last       *domain.BuildStatus
	lastTarget domain.Platform
}

// NewPresenter creates a presenter writing to w, stdout when nil.
func NewPresenter(w io.Writer) *Presenter {
	if w == nil {
		w = os.Stdout
	}
	return &Presenter{
		output:       output.NewWithProfile(w, output.ColorProfileANSI),
		pollInterval: DefaultPollInterval,
	}
}

// WithPollInterval sets how often the status is sampled during builds.
func (p *Presenter) WithPollInterval(d time.Duration) *Presenter {
	p.pollInterval = d
	return p
}

// Run prints a banner, builds the selected platform and serves rebuild
// requests. It returns nil once ctx is done.
func (p *Presenter) Run(ctx context.Context, server ports.DevServer) error {
	p.Banner(server.Config())
	p.rebuild(ctx, server)

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-server.RebuildRequests():
			p.rebuild(ctx, server)
		case <-ticker.C:
			p.Render(server.Target(), server.Status())
		}
	}
}

// rebuild runs a build and prints the transitions observed while it runs.
func (p *Presenter) rebuild(ctx context.Context, server ports.DevServer) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		server.Rebuild(ctx)
	}()

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			p.Render(server.Target(), server.Status())
			return
		case <-ticker.C:
			p.Render(server.Target(), server.Status())
		}
	}
}

// Banner prints the project name and its target platforms.
func (p *Presenter) Banner(cfg *domain.ProjectConfig) {
	names := make([]string, 0, len(cfg.TargetPlatforms))
	for _, t := range cfg.TargetPlatforms {
		names = append(names, t.DisplayName())
	}
	_, _ = fmt.Fprintf(p.output, "%s %s (%s)\n",
		p.output.String("nativedev").Bold(), cfg.Name, strings.Join(names, ", "))
}

// Render prints the status of target unless it equals the last one printed.
func (p *Presenter) Render(target domain.Platform, s domain.BuildStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last != nil && p.lastTarget == target && p.last.Equal(s) {
		return
	}
	p.last = &s
	p.lastTarget = target

	_, _ = fmt.Fprintln(p.output, p.format(target, s))
}

func (p *Presenter) format(target domain.Platform, s domain.BuildStatus) string {
	prefix := target.DisplayName() + ": "

	var line string
	switch {
	case s.InProgress:
		line = p.output.String(style.Dot + " " + prefix + "Status: Building...").Foreground(p.output.Color(colorYellow)).String()
	case s.Failed():
		head := p.output.String(style.Cross + " " + prefix + "Status: Error").Foreground(p.output.Color(colorRed)).Bold().String()
		return head + "\n  Error: " + s.Error
	case s.Built():
		line = p.output.String(style.Check + " " + prefix + "Status: Ready").Foreground(p.output.Color(colorGreen)).String()
	default:
		line = style.Circle + " " + prefix + "Status: Waiting for first build"
	}

	if s.Progress != nil {
		line += fmt.Sprintf(" [%d/%d]", s.Progress.Current, s.Progress.Total)
		if s.Message != "" {
			line += " " + s.Message
		}
	}
	return line
}
