// Package builder implements the compile and link pipeline.
package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.trai.ch/mortar/internal/core/domain"
	"go.trai.ch/mortar/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Builder brings a project's target executable up to date. It decides the
// work from modification stamps, fans compiles out across CPUs, links, and
// removes the consumed objects afterwards.
type Builder struct {
	scanner  ports.Scanner
	executor ports.Executor
	hasher   ports.Hasher
	store    ports.BuildInfoStore
	logger   ports.Logger
}

// NewBuilder creates a new Builder with the given dependencies.
func NewBuilder(
	scanner ports.Scanner,
	executor ports.Executor,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	logger ports.Logger,
) *Builder {
	return &Builder{
		scanner:  scanner,
		executor: executor,
		hasher:   hasher,
		store:    store,
		logger:   logger,
	}
}

// Options tune a single build invocation.
type Options struct {
	// Jobs caps concurrent compile invocations. Zero or negative means one
	// per CPU.
	Jobs int

	// Observer receives step events and toolchain output. When nil, the
	// toolchain output and progress go to the logger instead.
	Observer ports.Renderer
}

// Result describes what a build did.
type Result struct {
	// Sources are the discovered source paths in scan order.
	Sources []string

	// Compiled is the number of objects produced by this run.
	Compiled int

	// Linked reports whether a link was performed.
	Linked bool

	// UpToDate reports whether the target already covered every source.
	UpToDate bool
}

// Build runs the pipeline once: scan, plan, compile what is stale, link if
// needed, and delete the objects the link consumed.
func (b *Builder) Build(ctx context.Context, project domain.Project, opts Options) (Result, error) {
	units, err := b.scanner.Scan(project.Dir.String())
	if err != nil {
		return Result{}, zerr.Wrap(err, domain.ErrScanFailed.Error())
	}

	sources := make([]string, len(units))
	for i, unit := range units {
		sources[i] = unit.Source.String()
	}

	// Zero sources is an empty build, not an error.
	if len(units) == 0 {
		if opts.Observer == nil {
			b.logger.Warn(fmt.Sprintf("no source files found in %s", project.Dir.String()))
		}
		return Result{UpToDate: true}, nil
	}

	targetStamp, err := b.scanner.Stat(project.TargetPath())
	if err != nil {
		return Result{}, err
	}

	plan := domain.ComputePlan(targetStamp, units)
	if plan.UpToDate() {
		if opts.Observer == nil {
			b.logger.Info(fmt.Sprintf("'%s' is up to date", project.Target.String()))
		}
		b.recordBuild(project, sources, opts)
		return Result{Sources: sources, UpToDate: true}, nil
	}

	if err := b.compileAll(ctx, project, plan.Compiles, opts); err != nil {
		return Result{Sources: sources}, err
	}

	if err := b.link(ctx, project, units, opts); err != nil {
		return Result{Sources: sources, Compiled: len(plan.Compiles)}, err
	}

	b.removeObjects(units, opts)
	b.recordBuild(project, sources, opts)

	return Result{
		Sources:  sources,
		Compiled: len(plan.Compiles),
		Linked:   true,
	}, nil
}

// compileAll translates every stale unit, at most opts.Jobs at a time. The
// first failure cancels the remaining compiles.
func (b *Builder) compileAll(ctx context.Context, project domain.Project, compiles []domain.Unit, opts Options) error {
	if len(compiles) == 0 {
		return nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, unit := range compiles {
		g.Go(func() error {
			return b.compileOne(ctx, project, unit, opts.Observer)
		})
	}

	return g.Wait()
}

// compileOne translates a single unit into its object artifact.
func (b *Builder) compileOne(ctx context.Context, project domain.Project, unit domain.Unit, observer ports.Renderer) error {
	name := filepath.Base(unit.Source.String())
	step := "compile " + name
	argv := project.Toolchain.CompileArgv(unit.Source.String(), unit.Object.String())

	var sink io.Writer
	if observer != nil {
		observer.OnStepStart(step)
		sink = &observerWriter{observer: observer, step: step}
	} else {
		b.logger.Info(strings.Join(argv, " "))
	}

	err := b.executor.Run(ctx, argv, project.Dir.String(), sink)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "source", name)
	}

	if observer != nil {
		observer.OnStepComplete(step, err)
	}
	return err
}

// link combines the complete object set into the target executable.
func (b *Builder) link(ctx context.Context, project domain.Project, units []domain.Unit, opts Options) error {
	step := "link " + project.Target.String()

	objects := make([]string, len(units))
	for i, unit := range units {
		objects[i] = unit.Object.String()
	}
	argv := project.Toolchain.LinkArgv(objects, project.TargetPath())

	var sink io.Writer
	if opts.Observer != nil {
		opts.Observer.OnStepStart(step)
		sink = &observerWriter{observer: opts.Observer, step: step}
	} else {
		b.logger.Info(strings.Join(argv, " "))
	}

	err := b.executor.Run(ctx, argv, project.Dir.String(), sink)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "target", project.Target.String())
	}

	if opts.Observer != nil {
		opts.Observer.OnStepComplete(step, err)
	}
	return err
}

// removeObjects deletes the object artifacts a successful link consumed.
// Failures downgrade to warnings: a leftover object costs a spurious
// recompile later, nothing more.
func (b *Builder) removeObjects(units []domain.Unit, opts Options) {
	for _, unit := range units {
		if err := os.Remove(unit.Object.String()); err != nil {
			if opts.Observer == nil {
				b.logger.Warn(fmt.Sprintf("object file left behind: %s", unit.Object.String()))
			}
		}
	}
}

// recordBuild stores the input fingerprint of the finished build. Failures
// only cost watch mode a redundant rebuild, so they downgrade to warnings.
func (b *Builder) recordBuild(project domain.Project, sources []string, opts Options) {
	hash, err := b.hasher.HashBuildInputs(project, sources)
	if err != nil {
		if opts.Observer == nil {
			b.logger.Warn(fmt.Sprintf("failed to fingerprint build inputs: %v", err))
		}
		return
	}

	record := domain.BuildRecord{
		Target:    project.Target.String(),
		InputHash: hash,
		Timestamp: time.Now(),
	}
	if err := b.store.Put(record); err != nil && opts.Observer == nil {
		b.logger.Warn(fmt.Sprintf("failed to record build: %v", err))
	}
}

// observerWriter forwards toolchain output chunks to the step observer. The
// chunk is cloned because the pty copy loop reuses its read buffer.
type observerWriter struct {
	observer ports.Renderer
	step     string
}

func (w *observerWriter) Write(p []byte) (int, error) {
	w.observer.OnStepLog(w.step, slices.Clone(p))
	return len(p), nil
}
