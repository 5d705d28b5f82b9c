// Package app implements the application layer for mortar.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/mortar/internal/adapters/detector"
	"go.trai.ch/mortar/internal/adapters/linear"
	"go.trai.ch/mortar/internal/adapters/tui"
	"go.trai.ch/mortar/internal/adapters/watcher"
	"go.trai.ch/mortar/internal/core/domain"
	"go.trai.ch/mortar/internal/core/ports"
	"go.trai.ch/mortar/internal/engine/builder"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      *builder.Builder
	executor     ports.Executor
	scanner      ports.Scanner
	store        ports.BuildInfoStore
	hasher       ports.Hasher
	watcher      ports.Watcher
	logger       ports.Logger
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	bldr *builder.Builder,
	executor ports.Executor,
	scanner ports.Scanner,
	store ports.BuildInfoStore,
	hasher ports.Hasher,
	watch ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		builder:      bldr,
		executor:     executor,
		scanner:      scanner,
		store:        store,
		hasher:       hasher,
		watcher:      watch,
		logger:       log,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Jobs int
}

// Build runs the pipeline once: discover sources, compile what is stale,
// link if the target is stale.
func (a *App) Build(ctx context.Context, dir string, opts BuildOptions) error {
	project, err := a.configLoader.Load(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load project configuration")
	}

	if _, err := a.builder.Build(ctx, project, builder.Options{Jobs: opts.Jobs}); err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}

	return nil
}

// Test runs the previously built target executable in the foreground. The
// program's own exit status is propagated, not interpreted.
func (a *App) Test(ctx context.Context, dir string) error {
	project, err := a.configLoader.Load(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load project configuration")
	}

	stamp, err := a.scanner.Stat(project.TargetPath())
	if err != nil {
		return zerr.Wrap(err, "failed to stat target executable")
	}
	if !stamp.Exists {
		return domain.ErrTargetNotBuilt
	}

	binary := "./" + project.Target.String()
	a.logger.Info(binary)

	if err := a.executor.RunPassthrough(ctx, []string{binary}, project.Dir.String()); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return errors.Join(domain.ErrProgramExit, err)
		}
		return zerr.Wrap(err, "failed to run target executable")
	}

	return nil
}

// Clean removes the target executable and the object artifacts derived from
// the current source set. Missing files are not an error.
func (a *App) Clean(_ context.Context, dir string) error {
	project, err := a.configLoader.Load(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load project configuration")
	}

	units, err := a.scanner.Scan(project.Dir.String())
	if err != nil {
		return zerr.Wrap(err, domain.ErrScanFailed.Error())
	}

	paths := make([]string, 0, len(units)+1)
	for _, unit := range units {
		paths = append(paths, unit.Object.String())
	}
	paths = append(paths, project.TargetPath())

	var errs error
	for _, path := range paths {
		err := os.Remove(path)
		switch {
		case err == nil:
			a.logger.Info(fmt.Sprintf("removed %s", filepath.Base(path)))
		case errors.Is(err, fs.ErrNotExist):
			// Already clean.
		default:
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", path)))
		}
	}

	if errs != nil {
		return errors.Join(domain.ErrCleanFailed, errs)
	}

	return nil
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Jobs       int
	OutputMode string
}

// Watch builds once, then rebuilds whenever sources or the config file
// change, until the context is canceled or the user quits the TUI.
//
//nolint:funlen // orchestration function
func (a *App) Watch(ctx context.Context, dir string, opts WatchOptions) error {
	project, err := a.configLoader.Load(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load project configuration")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Detect environment and resolve output mode.
	autoMode := detector.DetectEnvironment()
	mode := detector.ResolveMode(autoMode, opts.OutputMode)

	var renderer ports.Renderer
	if mode == detector.ModeTUI {
		model := tui.NewModel(os.Stderr)
		optsTea := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		renderer = tui.NewRenderer(&model, optsTea...)
	} else {
		renderer = linear.NewRenderer(os.Stdout, os.Stderr)
	}

	if err := a.watcher.Start(ctx, project.Dir.String()); err != nil {
		return errors.Join(domain.ErrWatchFailed, err)
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	batches := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})

	g, gctx := errgroup.WithContext(ctx)

	// Renderer routine. When the user quits the TUI the whole watch
	// session unwinds through cancel.
	g.Go(func() error {
		defer cancel()
		if err := renderer.Start(); err != nil {
			return err
		}
		// Wait blocks until the renderer has terminated.
		return renderer.Wait()
	})

	// Event pump routine. The watcher closes its stream on shutdown.
	g.Go(func() error {
		for event := range a.watcher.Events() {
			if !isBuildInput(event.Path) {
				continue
			}
			debouncer.Add(event.Path)
		}
		return nil
	})

	// Build cycle routine.
	g.Go(func() error {
		defer renderer.Stop()

		seq := 1
		a.runCycle(gctx, renderer, dir, seq, nil, opts.Jobs)

		for {
			select {
			case <-gctx.Done():
				return nil
			case paths := <-batches:
				if a.inputsUnchanged(dir) {
					renderer.OnCycleSkipped(baseNames(paths))
					continue
				}
				seq++
				a.runCycle(gctx, renderer, dir, seq, baseNames(paths), opts.Jobs)
			}
		}
	})

	err = g.Wait()
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, tea.ErrProgramKilled)) {
		return nil
	}

	return err
}

// runCycle executes one build cycle and reports it to the renderer. A failed
// cycle keeps the watch session alive.
func (a *App) runCycle(ctx context.Context, renderer ports.Renderer, dir string, seq int, trigger []string, jobs int) {
	start := time.Now()
	renderer.OnCycleStart(seq, trigger)

	// Reload so edits to mortar.yaml take effect without restarting.
	project, err := a.configLoader.Load(dir)
	if err != nil {
		renderer.OnCycleComplete(seq, time.Since(start), zerr.Wrap(err, "failed to load project configuration"))
		return
	}

	_, err = a.builder.Build(ctx, project, builder.Options{Jobs: jobs, Observer: renderer})
	renderer.OnCycleComplete(seq, time.Since(start), err)
}

// inputsUnchanged reports whether the current build inputs hash to the
// fingerprint of the last completed build. Editors that rewrite identical
// bytes produce fresh mtimes and would trigger a spurious rebuild otherwise.
func (a *App) inputsUnchanged(dir string) bool {
	project, err := a.configLoader.Load(dir)
	if err != nil {
		return false
	}

	stamp, err := a.scanner.Stat(project.TargetPath())
	if err != nil || !stamp.Exists {
		return false
	}

	units, err := a.scanner.Scan(project.Dir.String())
	if err != nil || len(units) == 0 {
		return false
	}

	sources := make([]string, 0, len(units))
	for _, unit := range units {
		sources = append(sources, unit.Source.String())
	}

	digest, err := a.hasher.HashBuildInputs(project, sources)
	if err != nil {
		return false
	}

	record, err := a.store.Get(project.Target.String())
	if err != nil || record == nil {
		return false
	}

	return record.InputHash == digest
}

// isBuildInput reports whether a changed path can influence the build.
func isBuildInput(path string) bool {
	name := filepath.Base(path)
	return domain.IsSource(name) || name == domain.ConfigFileName
}

func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		names = append(names, filepath.Base(path))
	}
	return names
}
