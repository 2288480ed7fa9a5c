package linear_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nativedev/internal/adapters/linear"
	"go.trai.ch/nativedev/internal/core/domain"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeServer struct {
	cfg      *domain.ProjectConfig
	requests chan struct{}
	rebuilds atomic.Int32

	mu     sync.Mutex
	status domain.BuildStatus
}

func (f *fakeServer) Status() domain.BuildStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeServer) Target() domain.Platform                            { return domain.Desktop }
func (f *fakeServer) Config() *domain.ProjectConfig                      { return f.cfg }
func (f *fakeServer) Restart(context.Context) error                      { return nil }
func (f *fakeServer) RebuildRequests() <-chan struct{}                   { return f.requests }
func (f *fakeServer) SetPlatform(context.Context, domain.Platform) error { return nil }

func (f *fakeServer) Rebuild(context.Context) {
	f.rebuilds.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = domain.BuildStatus{
		LastBuild: time.Now(),
		Progress:  &domain.Progress{Current: 3, Total: 3},
		Message:   "ready",
	}
}

func TestPresenter_Render(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	p := linear.NewPresenter(&buf)

	cfg := domain.DefaultProjectConfig(t.TempDir(), "demo")
	cfg.TargetPlatforms = []domain.Platform{domain.Desktop, domain.Web}
	firstBuild := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	p.Banner(cfg)
	p.Render(domain.Desktop, domain.BuildStatus{})
	p.Render(domain.Desktop, domain.BuildStatus{})
	p.Render(domain.Desktop, domain.BuildStatus{
		InProgress: true,
		Progress:   &domain.Progress{Current: 0, Total: 3},
		Message:    "starting",
	})
	p.Render(domain.Desktop, domain.BuildStatus{
		InProgress: true,
		Progress:   &domain.Progress{Current: 1, Total: 3},
		Message:    "building",
	})
	ready := domain.BuildStatus{
		LastBuild: firstBuild,
		Progress:  &domain.Progress{Current: 3, Total: 3},
		Message:   "ready",
	}
	p.Render(domain.Desktop, ready)
	p.Render(domain.Desktop, ready)
	p.Render(domain.Web, ready)
	p.Render(domain.Web, domain.BuildStatus{InProgress: true, LastBuild: firstBuild})
	p.Render(domain.Web, domain.BuildStatus{
		LastBuild: firstBuild.Add(time.Minute),
		Error:     "build tool failed: exit status 1",
	})

	g := goldie.New(t)
	g.Assert(t, "transitions", buf.Bytes())
}

func TestPresenter_Run(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	synctest.Test(t, func(t *testing.T) {
		server := &fakeServer{
			cfg:      domain.DefaultProjectConfig(t.TempDir(), "demo"),
			requests: make(chan struct{}, 1),
		}
		var buf syncBuffer
		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)

		go func() {
			done <- linear.NewPresenter(&buf).Run(ctx, server)
		}()

		synctest.Wait()
		assert.Equal(t, int32(1), server.rebuilds.Load(), "initial build")

		server.requests <- struct{}{}
		synctest.Wait()
		assert.Equal(t, int32(2), server.rebuilds.Load(), "rebuild request served")

		cancel()
		require.NoError(t, <-done)

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "nativedev demo (Desktop)\n"), out)
		assert.Contains(t, out, "✓ Desktop: Status: Ready [3/3] ready")
	})
}
