package devserver

import (
	"sync"
	"time"

	"go.trai.ch/nativedev/internal/core/domain"
)

// StatusRecord is the locked build status shared with the presentation layer.
// The lock is held for one mutation at a time, never across a build.
type StatusRecord struct {
	mu     sync.Mutex
	status domain.BuildStatus
	now    func() time.Time
}

// NewStatusRecord creates an idle record.
func NewStatusRecord() *StatusRecord {
	return &StatusRecord{now: time.Now}
}

// UpdateProgress sets the progress counter and message.
func (r *StatusRecord) UpdateProgress(current, total int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.Progress = &domain.Progress{Current: current, Total: total}
	r.status.Message = message
}

// BeginBuild marks a build as running and clears the previous outcome.
func (r *StatusRecord) BeginBuild() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.InProgress = true
	r.status.Error = ""
	r.status.Progress = nil
	r.status.Message = ""
}

// EndBuild records the outcome of the running build. A nil err clears any
// previous error.
func (r *StatusRecord) EndBuild(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.InProgress = false
	r.status.LastBuild = r.now()
	if err == nil {
		r.status.Error = ""
		return
	}
	r.status.Error = err.Error()
	r.status.Progress = nil
	r.status.Message = ""
}

// MarkChanged flags that sources changed. It only ever sets InProgress.
func (r *StatusRecord) MarkChanged() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.InProgress = true
}

// Snapshot returns a copy of the current status.
func (r *StatusRecord) Snapshot() domain.BuildStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.status
	if s.Progress != nil {
		p := *s.Progress
		s.Progress = &p
	}
	return s
}
