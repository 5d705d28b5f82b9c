// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Executor defines the interface for running external commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes argv in dir under a pseudo-terminal so the toolchain keeps
	// its diagnostic colors. Combined output is streamed line by line to the
	// sink when one is given, otherwise to the logger. The returned error
	// wraps the process's *exec.ExitError when it exits non-zero.
	Run(ctx context.Context, argv []string, dir string, sink io.Writer) error

	// RunPassthrough executes argv in dir with the caller's stdin, stdout,
	// and stderr attached, for foreground program execution. The returned
	// error wraps the process's *exec.ExitError when it exits non-zero.
	RunPassthrough(ctx context.Context, argv []string, dir string) error
}
