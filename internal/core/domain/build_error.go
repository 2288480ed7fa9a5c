package domain

import (
	"fmt"
	"strings"
)

// BuildError is a recoverable failure of a platform build. Its message is what
// ends up in BuildStatus.Error, so it is kept short and user facing.
type BuildError struct {
	// Kind is one of ErrScriptNotFound, ErrToolFailed, ErrSpawnFailed or ErrConfigInvalid.
	Kind     error
	Platform Platform
	Message  string
	// ExitCode is set for ErrToolFailed.
	ExitCode int
	Cause    error
}

func (e *BuildError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is.
func (e *BuildError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewScriptNotFound reports a build script missing from the project.
func NewScriptNotFound(p Platform, script string) *BuildError {
	return &BuildError{
		Kind:     ErrScriptNotFound,
		Platform: p,
		Message:  fmt.Sprintf("%s build script not found: %s", p.DisplayName(), script),
	}
}

// NewToolFailed reports a build tool that exited with a nonzero status.
func NewToolFailed(p Platform, exitCode int) *BuildError {
	return &BuildError{
		Kind:     ErrToolFailed,
		Platform: p,
		Message:  p.DisplayName() + " build failed",
		ExitCode: exitCode,
	}
}

// NewSpawnFailed reports a process that could not be started.
func NewSpawnFailed(p Platform, argv []string, cause error) *BuildError {
	return &BuildError{
		Kind:     ErrSpawnFailed,
		Platform: p,
		Message:  "failed to start " + strings.Join(argv, " "),
		Cause:    cause,
	}
}

// NewConfigInvalid reports configuration that cannot drive a build.
func NewConfigInvalid(p Platform, reason string) *BuildError {
	return &BuildError{
		Kind:     ErrConfigInvalid,
		Platform: p,
		Message:  "invalid " + p.String() + " configuration: " + reason,
	}
}
