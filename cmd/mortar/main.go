// Package main is the entry point for the mortar build tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/mortar/cmd/mortar/commands"
	"go.trai.ch/mortar/internal/app"
	"go.trai.ch/mortar/internal/core/domain"
	"go.trai.ch/mortar/internal/core/ports"
	_ "go.trai.ch/mortar/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		// zerr prints a full error report with metadata when using %+v.
		_, _ = fmt.Fprintf(stderr, "Error: %+v\n", err)
		return 1
	}

	// Apply options
	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)
	cli.SetLogHook(func(jsonMode bool) {
		if !jsonMode {
			return
		}
		if l, ok := components.Logger.(interface{ SetJSON(bool) }); ok {
			l.SetJSON(true)
		}
	})

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		return exitCode(components.Logger, err)
	}
	return 0
}

// exitCode maps an execution error to the process exit status. Both the
// toolchain under `mortar build` and the program under `mortar test` surface
// their own status.
func exitCode(log ports.Logger, err error) int {
	var exitErr *exec.ExitError

	if errors.Is(err, domain.ErrProgramExit) {
		// The program's output and status speak for themselves.
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		return 1
	}

	log.Error(err)

	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
