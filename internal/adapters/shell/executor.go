// Package shell provides a shell-based executor for running toolchain commands.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/mortar/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run launches argv in dir under a pseudo-terminal, so compilers keep their
// colored diagnostics. The PTY merges stdout and stderr into one stream,
// which goes line by line to the sink when one is given, otherwise to the
// logger. A non-zero exit comes back as a wrapped *exec.ExitError carrying
// the exit code.
func (e *Executor) Run(ctx context.Context, argv []string, dir string, sink io.Writer) error {
	if len(argv) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // argv is built from project settings
	cmd.Dir = dir

	out := sink
	var lw *logWriter
	if out == nil {
		lw = &logWriter{logger: e.logger}
		out = lw
	}

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		if lw != nil {
			// Flush any partial last line once the stream ends
			defer func() { _ = lw.Close() }()
		}

		_, _ = io.Copy(out, ptmx)
	}()

	waitErr := cmd.Wait()

	// Let the copy loop drain what the process left in the PTY
	<-ioDone

	if waitErr != nil {
		return wrapExitError(waitErr)
	}
	return nil
}

// RunPassthrough executes argv in dir with the caller's stdin, stdout, and
// stderr attached, so the program owns the terminal for its lifetime.
func (e *Executor) RunPassthrough(ctx context.Context, argv []string, dir string) error {
	if len(argv) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // argv is the built target
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return wrapExitError(err)
	}
	return nil
}

// wrapExitError attaches the process exit code to the error while keeping
// the original *exec.ExitError reachable through the chain.
func wrapExitError(err error) error {
	var exitCode int
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else {
		exitCode = -1
	}
	return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
}

// logWriter buffers a byte stream and forwards it to the logger one line at
// a time.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
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

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := string(line)
	// PTYs may introduce \r. Remove it.
	msg = strings.TrimSuffix(msg, "\r")
	w.logger.Info(msg)
}
