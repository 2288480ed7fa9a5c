// Package process supervises the external processes spawned by build pipelines.
package process

import (
	"errors"
	"os/exec"
	"syscall"

	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

var _ ports.Process = (*Child)(nil)

// Child is a started command running in its own process group.
type Child struct {
	cmd    *exec.Cmd
	pid    int
	exited chan struct{}
}

// Start starts cmd as the leader of a new process group so that Terminate
// reaches everything it forks. onExit runs after the process has been reaped.
func Start(cmd *exec.Cmd, onExit func()) (*Child, error) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	c := &Child{
		cmd:    cmd,
		pid:    cmd.Process.Pid,
		exited: make(chan struct{}),
	}

	// Reap only; the exit status is deliberately dropped.
	go func() {
		defer close(c.exited)
		_ = cmd.Wait()
		if onExit != nil {
			onExit()
		}
	}()

	return c, nil
}

// Pid returns the process id, which is also the process group id.
func (c *Child) Pid() int {
	return c.pid
}

// Terminate sends SIGTERM to the whole process group and returns immediately.
// A group that is already gone is not an error.
func (c *Child) Terminate() error {
	err := unix.Kill(-c.pid, unix.SIGTERM)
	if err == nil || errors.Is(err, unix.ESRCH) {
		return nil
	}
	return zerr.With(zerr.Wrap(err, domain.ErrProcessKillFailed.Error()), "pid", c.pid)
}

// Exited is closed once the process has been reaped.
func (c *Child) Exited() <-chan struct{} {
	return c.exited
}
