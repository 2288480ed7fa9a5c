package process

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
)

// Handle owns at most one external process of a platform.
// The slot is guarded so that a process is never terminated twice.
type Handle struct {
	id       string
	platform domain.Platform

	mu   sync.Mutex
	proc ports.Process
}

// NewHandle creates an empty handle for p.
func NewHandle(p domain.Platform) *Handle {
	return &Handle{
		id:       uuid.NewString(),
		platform: p,
	}
}

// Wrap creates a handle that already owns proc.
func Wrap(p domain.Platform, proc ports.Process) *Handle {
	h := NewHandle(p)
	h.proc = proc
	return h
}

// ID returns the unique handle id.
func (h *Handle) ID() string {
	return h.id
}

// String describes the handle for log lines, e.g. "Desktop process 1b4e... (pid 42)".
func (h *Handle) String() string {
	return fmt.Sprintf("%s process %s (pid %d)", h.platform.DisplayName(), h.id, h.Pid())
}

// Platform returns the platform the handle belongs to.
func (h *Handle) Platform() domain.Platform {
	return h.platform
}

// Active reports whether the handle currently owns a process.
func (h *Handle) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.proc != nil
}

// Pid returns the owned process id, or 0 when the slot is empty.
func (h *Handle) Pid() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.proc == nil {
		return 0
	}
	return h.proc.Pid()
}

// SetProcess stores proc in the slot. A process already in the slot is
// terminated first, and its termination error is returned.
func (h *Handle) SetProcess(proc ports.Process) error {
	h.mu.Lock()
	prev := h.proc
	h.proc = proc
	h.mu.Unlock()

	if prev == nil {
		return nil
	}
	return prev.Terminate()
}

// Kill terminates the owned process and empties the slot.
// Killing an empty handle is a no-op.
func (h *Handle) Kill() error {
	h.mu.Lock()
	proc := h.proc
	h.proc = nil
	h.mu.Unlock()

	if proc == nil {
		return nil
	}
	return proc.Terminate()
}
