// Package shell runs the external tools of the build pipelines.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"
	"go.trai.ch/nativedev/internal/adapters/process"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor that forwards tool output to logger.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run executes the command inside a PTY, so build tools keep their
// interactive formatting, and waits for it to exit.
func (e *Executor) Run(ctx context.Context, c ports.Command) (int, error) {
	if len(c.Argv) == 0 {
		return -1, domain.ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...) //nolint:gosec // project provided command
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return -1, zerr.With(zerr.Wrap(err, "failed to start command"), "command", c.Argv[0])
	}

	out := newLogWriter(e.logger, c.Label, levelInfo)
	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		defer func() { _ = out.Close() }()
		_, _ = io.Copy(out, ptmx)
	}()

	waitErr := cmd.Wait()
	<-ioDone

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, zerr.With(zerr.Wrap(waitErr, "command failed"), "command", c.Argv[0])
	}
	return 0, nil
}

// Spawn starts the command in its own process group and returns at once.
// Its output is streamed into the logger until it exits.
func (e *Executor) Spawn(_ context.Context, c ports.Command) (ports.Process, error) {
	if len(c.Argv) == 0 {
		return nil, domain.ErrEmptyCommand
	}

	// Not bound to a context: the process lives until its handle kills it.
	cmd := exec.Command(c.Argv[0], c.Argv[1:]...) //nolint:gosec // project provided command
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)

	stdoutLog := newLogWriter(e.logger, c.Label, levelInfo)
	stderrLog := newLogWriter(e.logger, c.Label, levelWarn)
	cmd.Stdout = stdoutLog
	cmd.Stderr = stderrLog

	child, err := process.Start(cmd, func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSpawnFailed.Error()), "command", c.Argv[0])
	}
	return child, nil
}

type logLevel int

const (
	levelInfo logLevel = iota
	levelWarn
)

// logWriter turns a byte stream into one log entry per line.
type logWriter struct {
	logger ports.Logger
	prefix string
	level  logLevel

	mu  sync.Mutex
	buf []byte
}

func newLogWriter(logger ports.Logger, label string, level logLevel) *logWriter {
	prefix := ""
	if label != "" {
		prefix = "[" + label + "] "
	}
	return &logWriter{logger: logger, prefix: prefix, level: level}
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Close flushes a trailing line without newline.
func (w *logWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r.
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}

	if w.level == levelWarn {
		w.logger.Warn(w.prefix + msg)
		return
	}
	w.logger.Info(w.prefix + msg)
}
