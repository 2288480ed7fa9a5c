// Package devserver implements the dev server orchestrator: it owns the file
// watcher, the build status and the processes spawned by platform builds.
package devserver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.trai.ch/nativedev/internal/adapters/process"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/zerr"
)

// State is the phase of the orchestrator.
type State int

const (
	// StateIdle means nothing is watched and nothing was built.
	StateIdle State = iota
	// StateWatching means sources are watched but no build finished yet.
	StateWatching
	// StateBuilding means a rebuild is running.
	StateBuilding
	// StateReady means the last build succeeded.
	StateReady
	// StateFailed means the last build failed.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateWatching:
		return "watching"
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Server is the dev server orchestrator. Rebuild, SetPlatform and Restart are
// meant to be called from a single control loop, so builds never overlap.
type Server struct {
	cfg      *domain.ProjectConfig
	executor ports.Executor
	watchers ports.WatcherFactory
	browser  ports.BrowserOpener
	logger   ports.Logger
	tracer   trace.Tracer
	selfExe  string

	status   *StatusRecord
	ignore   domain.IgnoreSet
	rebuilds chan struct{}
	building atomic.Bool

	mu      sync.Mutex
	target  domain.Platform
	handles []*process.Handle
	watcher ports.Watcher
	root    string
	closed  bool

	inflight sync.WaitGroup
}

// New creates a Server for cfg targeting the first configured platform.
func New(
	cfg *domain.ProjectConfig,
	executor ports.Executor,
	watchers ports.WatcherFactory,
	browser ports.BrowserOpener,
	logger ports.Logger,
) *Server {
	target := domain.Desktop
	if len(cfg.TargetPlatforms) > 0 {
		target = cfg.TargetPlatforms[0]
	}

	selfExe, err := os.Executable()
	if err != nil {
		selfExe = "nativedev"
	}

	return &Server{
		cfg:      cfg,
		executor: executor,
		watchers: watchers,
		browser:  browser,
		logger:   logger,
		tracer:   noop.NewTracerProvider().Tracer(domain.TracerName),
		selfExe:  selfExe,
		status:   NewStatusRecord(),
		ignore:   domain.NewIgnoreSet(cfg.IgnoreFragments()...),
		rebuilds: make(chan struct{}, 1),
		target:   target,
	}
}

// WithTracer sets the tracer used for rebuild spans.
func (s *Server) WithTracer(tracer trace.Tracer) *Server {
	s.tracer = tracer
	return s
}

// WithSelfExecutable sets the binary that is re-executed to serve web builds.
func (s *Server) WithSelfExecutable(path string) *Server {
	s.selfExe = path
	return s
}

// Config returns the project configuration.
func (s *Server) Config() *domain.ProjectConfig {
	return s.cfg
}

// Status returns a snapshot of the build status.
func (s *Server) Status() domain.BuildStatus {
	return s.status.Snapshot()
}

// Target returns the platform rebuilt by Rebuild.
func (s *Server) Target() domain.Platform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// State returns the current phase of the orchestrator.
func (s *Server) State() State {
	if s.building.Load() {
		return StateBuilding
	}
	snap := s.status.Snapshot()
	switch {
	case snap.Failed():
		return StateFailed
	case snap.Built():
		return StateReady
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		return StateWatching
	}
	return StateIdle
}

// Handles returns the live process handles in spawn order.
func (s *Server) Handles() []*process.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*process.Handle(nil), s.handles...)
}

// RebuildRequests delivers a value when accepted changes should trigger a
// rebuild. It only fires when auto rebuild is enabled.
func (s *Server) RebuildRequests() <-chan struct{} {
	return s.rebuilds
}

// Watch starts watching root for source changes.
func (s *Server) Watch(ctx context.Context, root string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		return zerr.With(domain.ErrWatcherAlreadyStarted, "root", s.root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "root", root)
	}

	w, err := s.watchers.NewWatcher(ports.WatchOptions{
		Ignore:   s.ignore.Fragments(),
		Debounce: s.cfg.Watch.Debounce,
	})
	if err != nil {
		return err
	}

	if err := w.Start(ctx, absRoot, s.handleChanges); err != nil {
		_ = w.Stop()
		return err
	}

	s.root = absRoot
	s.watcher = w
	return nil
}

// handleChanges runs on the watcher goroutine. It may only flag the status
// record and signal the control loop.
func (s *Server) handleChanges(batch ports.ChangeBatch) {
	accepted := false
	for _, p := range batch.Paths {
		if !s.ignored(p) {
			accepted = true
			break
		}
	}
	if !accepted {
		return
	}

	s.status.MarkChanged()

	if s.cfg.Watch.AutoRebuild {
		select {
		case s.rebuilds <- struct{}{}:
		default:
			// A rebuild is already pending.
		}
	}
}

func (s *Server) ignored(path string) bool {
	s.mu.Lock()
	root := s.root
	s.mu.Unlock()

	if rel, err := filepath.Rel(root, path); err == nil && root != "" {
		path = rel
	}
	return s.ignore.Matches(path)
}

// SetPlatform switches the target platform and rebuilds it.
func (s *Server) SetPlatform(ctx context.Context, p domain.Platform) error {
	if !p.Valid() {
		return zerr.With(domain.ErrUnknownPlatform, "platform", int(p))
	}
	if !s.cfg.Targets(p) {
		return zerr.With(domain.ErrPlatformNotTargeted, "platform", p.String())
	}

	s.mu.Lock()
	s.target = p
	s.mu.Unlock()

	s.Rebuild(ctx)
	return nil
}

// Rebuild builds the target platform. Failures are recorded in the status,
// never returned: the control loop keeps running so the user can retry.
func (s *Server) Rebuild(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.inflight.Add(1)
	target := s.target
	s.mu.Unlock()
	defer s.inflight.Done()

	ctx, span := s.tracer.Start(ctx, domain.SpanRebuild,
		trace.WithAttributes(attribute.String(domain.AttrPlatform, target.String())))
	defer span.End()

	s.building.Store(true)
	defer s.building.Store(false)

	s.status.BeginBuild()
	s.CleanupPlatform(target)

	handle, err := s.build(ctx, target)
	if handle != nil {
		s.adopt(handle)
	}

	s.status.EndBuild(err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error(err)
		return
	}
	span.SetStatus(codes.Ok, "")
	s.logger.Info(target.DisplayName() + " build ready")
}

// adopt stores a handle spawned by a build. After Shutdown it is killed instead.
func (s *Server) adopt(h *process.Handle) {
	s.mu.Lock()
	if !s.closed {
		s.handles = append(s.handles, h)
		s.mu.Unlock()
		s.logger.Info("started " + h.String())
		return
	}
	s.mu.Unlock()
	s.kill(h)
}

// CleanupPlatform removes and kills every handle of p. Handles of other
// platforms are left untouched.
func (s *Server) CleanupPlatform(p domain.Platform) {
	s.mu.Lock()
	var removed []*process.Handle
	kept := s.handles[:0]
	for _, h := range s.handles {
		if h.Platform() == p {
			removed = append(removed, h)
			continue
		}
		kept = append(kept, h)
	}
	clear(s.handles[len(kept):])
	s.handles = kept
	s.mu.Unlock()

	for _, h := range removed {
		s.kill(h)
	}
}

// Restart stops the watcher, kills every process, watches the same root
// again and rebuilds.
func (s *Server) Restart(ctx context.Context) error {
	s.mu.Lock()
	root := s.root
	s.mu.Unlock()

	s.stopWatcher()
	s.killAll()

	if root != "" {
		if err := s.Watch(ctx, root); err != nil {
			return err
		}
	}

	s.Rebuild(ctx)
	return nil
}

// Shutdown kills every process and stops the watcher. It waits for a running
// rebuild to return, so callers cancel the rebuild's context first. It returns
// once no process owned by the server is left and may be called more than once.
// Rebuilds requested afterwards do nothing.
func (s *Server) Shutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.inflight.Wait()
	s.killAll()
	s.stopWatcher()
}

func (s *Server) stopWatcher() {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w == nil {
		return
	}
	if err := w.Stop(); err != nil {
		s.logger.Warn("stopping file watcher: " + err.Error())
	}
}

func (s *Server) killAll() {
	s.mu.Lock()
	handles := s.handles
	s.handles = nil
	s.mu.Unlock()

	for _, h := range handles {
		s.kill(h)
	}
}

// kill terminates the process of h. Kill errors are logged and otherwise ignored.
func (s *Server) kill(h *process.Handle) {
	name := h.String()
	active := h.Active()
	if err := h.Kill(); err != nil {
		s.logger.Warn("failed to stop " + name + ": " + err.Error())
		return
	}
	if active {
		s.logger.Info("stopped " + name)
	}
}
