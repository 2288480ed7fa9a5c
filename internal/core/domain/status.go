package domain

import "time"

// Progress is a coarse build milestone counter.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// BuildStatus is the snapshot of build state shown to the user.
// InProgress and a non-empty Error are never both set by a build transition.
type BuildStatus struct {
	InProgress bool      `json:"in_progress"`
	LastBuild  time.Time `json:"last_build,omitzero"`
	Error      string    `json:"error,omitempty"`
	Progress   *Progress `json:"progress,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// Built reports whether a build has ever completed.
func (s BuildStatus) Built() bool {
	return !s.LastBuild.IsZero()
}

// Failed reports whether the last completed build failed.
func (s BuildStatus) Failed() bool {
	return s.Error != ""
}

// Equal reports whether two snapshots carry the same state.
func (s BuildStatus) Equal(o BuildStatus) bool {
	if s.InProgress != o.InProgress || s.Error != o.Error || s.Message != o.Message {
		return false
	}
	if !s.LastBuild.Equal(o.LastBuild) {
		return false
	}
	switch {
	case s.Progress == nil && o.Progress == nil:
		return true
	case s.Progress == nil || o.Progress == nil:
		return false
	default:
		return *s.Progress == *o.Progress
	}
}

// BuildRecord is one finished build as kept in the build history.
type BuildRecord struct {
	ID         int64     `json:"id"`
	Platform   Platform  `json:"platform"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Error      string    `json:"error,omitempty"`
}

// Duration returns how long the build took.
func (r BuildRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Succeeded reports whether the build finished without error.
func (r BuildRecord) Succeeded() bool {
	return r.Error == ""
}
