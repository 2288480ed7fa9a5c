// Package ports defines the core interfaces for the application.
package ports

import "context"

// Command is an external program invocation.
type Command struct {
	// Argv is the program followed by its arguments.
	Argv []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds KEY=value pairs added to the inherited environment.
	Env []string
	// Label prefixes the program's output lines in the log.
	Label string
}

// Process is a spawned external program owned by the dev server.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Process interface {
	// Pid returns the operating system process id.
	Pid() int
	// Terminate asks the process and its children to exit without waiting for them.
	Terminate() error
}

// Executor runs the external tools of the build pipelines.
type Executor interface {
	// Run executes a command to completion and returns its exit code.
	// The error is non-nil only when the command could not be started.
	Run(ctx context.Context, cmd Command) (int, error)
	// Spawn starts a long-running command and returns without waiting for it.
	Spawn(ctx context.Context, cmd Command) (Process, error)
}
