package app_test

import (
	"context"
	"errors"
	"io"
	"iter"
	"path/filepath"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/mortar/internal/app"
	"go.trai.ch/mortar/internal/core/domain"
	"go.trai.ch/mortar/internal/core/ports"
	"go.uber.org/mock/gomock"
)

// eventStream adapts a channel to the watcher's event iterator. Closing the
// channel ends the stream, mirroring the real watcher's shutdown.
func eventStream(ch <-chan ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range ch {
			if !yield(event) {
				return
			}
		}
	}
}

func newWatchApp(t *testing.T) (*app.App, appMocks) {
	t.Helper()
	a, m := newApp(t)
	a.WithTeaOptions(
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
	return a, m
}

func TestApp_Watch_InitialCycleBuilds(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := newWatchApp(t)
		tmpDir := t.TempDir()
		project := domain.NewProject(tmpDir)

		events := make(chan ports.WatchEvent)
		m.loader.EXPECT().Load(tmpDir).Return(project, nil).AnyTimes()
		m.watcher.EXPECT().Start(gomock.Any(), tmpDir).Return(nil)
		m.watcher.EXPECT().Stop().Return(nil).AnyTimes()
		m.watcher.EXPECT().Events().Return(eventStream(events))

		m.scanner.EXPECT().Scan(tmpDir).Return([]domain.Unit{
			unit(tmpDir, "main.cpp", at(time.Minute), domain.Stamp{}),
		}, nil).AnyTimes()
		m.scanner.EXPECT().Stat(project.TargetPath()).Return(domain.Stamp{}, nil).AnyTimes()
		m.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).Times(2)
		m.hasher.EXPECT().HashBuildInputs(project, gomock.Any()).Return("fp", nil).AnyTimes()

		built := make(chan struct{}, 1)
		m.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(domain.BuildRecord) error {
			built <- struct{}{}
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- a.Watch(ctx, tmpDir, app.WatchOptions{OutputMode: "tui"})
		}()

		<-built
		cancel()
		close(events)

		if err := <-done; err != nil {
			t.Errorf("Expected clean shutdown, got: %v", err)
		}
	})
}

func TestApp_Watch_RebuildsOnSourceChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := newWatchApp(t)
		tmpDir := t.TempDir()
		project := domain.NewProject(tmpDir)

		events := make(chan ports.WatchEvent)
		m.loader.EXPECT().Load(tmpDir).Return(project, nil).AnyTimes()
		m.watcher.EXPECT().Start(gomock.Any(), tmpDir).Return(nil)
		m.watcher.EXPECT().Stop().Return(nil).AnyTimes()
		m.watcher.EXPECT().Events().Return(eventStream(events))

		// The target never materializes, so every cycle runs the full
		// compile and link pair.
		m.scanner.EXPECT().Scan(tmpDir).Return([]domain.Unit{
			unit(tmpDir, "main.cpp", at(time.Minute), domain.Stamp{}),
		}, nil).AnyTimes()
		m.scanner.EXPECT().Stat(project.TargetPath()).Return(domain.Stamp{}, nil).AnyTimes()
		m.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).Times(4)
		m.hasher.EXPECT().HashBuildInputs(project, gomock.Any()).Return("fp", nil).AnyTimes()
		m.store.EXPECT().Get(gomock.Any()).Return(nil, nil).AnyTimes()

		cycles := make(chan struct{}, 4)
		m.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(domain.BuildRecord) error {
			cycles <- struct{}{}
			return nil
		}).Times(2)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- a.Watch(ctx, tmpDir, app.WatchOptions{OutputMode: "tui"})
		}()

		<-cycles

		events <- ports.WatchEvent{
			Path:      filepath.Join(tmpDir, "main.cpp"),
			Operation: ports.OpWrite,
		}

		// The debounce window elapses, then the second cycle runs.
		<-cycles
		cancel()
		close(events)

		if err := <-done; err != nil {
			t.Errorf("Expected clean shutdown, got: %v", err)
		}
	})
}

func TestApp_Watch_SkipsUnchangedContent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := newWatchApp(t)
		tmpDir := t.TempDir()
		project := domain.NewProject(tmpDir)

		events := make(chan ports.WatchEvent)
		m.loader.EXPECT().Load(tmpDir).Return(project, nil).AnyTimes()
		m.watcher.EXPECT().Start(gomock.Any(), tmpDir).Return(nil)
		m.watcher.EXPECT().Stop().Return(nil).AnyTimes()
		m.watcher.EXPECT().Events().Return(eventStream(events))

		// Target newer than the source: the initial cycle is up to date
		// and a touch without a content change must not rebuild.
		scans := make(chan struct{}, 4)
		m.scanner.EXPECT().Scan(tmpDir).DoAndReturn(func(string) ([]domain.Unit, error) {
			scans <- struct{}{}
			return []domain.Unit{
				unit(tmpDir, "main.cpp", at(time.Minute), domain.Stamp{}),
			}, nil
		}).AnyTimes()
		m.scanner.EXPECT().Stat(project.TargetPath()).Return(at(time.Hour), nil).AnyTimes()
		m.hasher.EXPECT().HashBuildInputs(project, gomock.Any()).Return("fp", nil).AnyTimes()
		m.store.EXPECT().Get("noob").Return(&domain.BuildRecord{
			Target:    "noob",
			InputHash: "fp",
		}, nil).AnyTimes()

		// Exactly one record: the initial up-to-date cycle. A second Put
		// or any executor call would mean the skip failed.
		m.store.EXPECT().Put(gomock.Any()).Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- a.Watch(ctx, tmpDir, app.WatchOptions{OutputMode: "tui"})
		}()

		// Initial cycle scan.
		<-scans

		events <- ports.WatchEvent{
			Path:      filepath.Join(tmpDir, "main.cpp"),
			Operation: ports.OpWrite,
		}

		// Skip check scan after the debounce window.
		<-scans
		synctest.Wait()
		cancel()
		close(events)

		if err := <-done; err != nil {
			t.Errorf("Expected clean shutdown, got: %v", err)
		}
	})
}

func TestApp_Watch_IgnoresUnrelatedFiles(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := newWatchApp(t)
		tmpDir := t.TempDir()
		project := domain.NewProject(tmpDir)

		events := make(chan ports.WatchEvent)
		m.loader.EXPECT().Load(tmpDir).Return(project, nil).AnyTimes()
		m.watcher.EXPECT().Start(gomock.Any(), tmpDir).Return(nil)
		m.watcher.EXPECT().Stop().Return(nil).AnyTimes()
		m.watcher.EXPECT().Events().Return(eventStream(events))

		m.scanner.EXPECT().Scan(tmpDir).Return([]domain.Unit{
			unit(tmpDir, "main.cpp", at(time.Minute), domain.Stamp{}),
		}, nil).AnyTimes()
		m.scanner.EXPECT().Stat(project.TargetPath()).Return(at(time.Hour), nil).AnyTimes()
		m.hasher.EXPECT().HashBuildInputs(project, gomock.Any()).Return("fp", nil).AnyTimes()

		built := make(chan struct{}, 1)
		m.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(domain.BuildRecord) error {
			built <- struct{}{}
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- a.Watch(ctx, tmpDir, app.WatchOptions{OutputMode: "tui"})
		}()

		<-built

		// Editor droppings do not reach the debouncer.
		events <- ports.WatchEvent{
			Path:      filepath.Join(tmpDir, "notes.txt"),
			Operation: ports.OpWrite,
		}
		events <- ports.WatchEvent{
			Path:      filepath.Join(tmpDir, ".main.cpp.swp"),
			Operation: ports.OpCreate,
		}

		synctest.Wait()
		cancel()
		close(events)

		if err := <-done; err != nil {
			t.Errorf("Expected clean shutdown, got: %v", err)
		}
	})
}

func TestApp_Watch_LinearMode(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := newWatchApp(t)
		tmpDir := t.TempDir()
		project := domain.NewProject(tmpDir)

		events := make(chan ports.WatchEvent)
		m.loader.EXPECT().Load(tmpDir).Return(project, nil).AnyTimes()
		m.watcher.EXPECT().Start(gomock.Any(), tmpDir).Return(nil)
		m.watcher.EXPECT().Stop().Return(nil).AnyTimes()
		m.watcher.EXPECT().Events().Return(eventStream(events))

		m.scanner.EXPECT().Scan(tmpDir).Return([]domain.Unit{
			unit(tmpDir, "main.cpp", at(time.Minute), domain.Stamp{}),
		}, nil).AnyTimes()
		m.scanner.EXPECT().Stat(project.TargetPath()).Return(at(time.Hour), nil).AnyTimes()
		m.hasher.EXPECT().HashBuildInputs(project, gomock.Any()).Return("fp", nil).AnyTimes()

		built := make(chan struct{}, 1)
		m.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(domain.BuildRecord) error {
			built <- struct{}{}
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- a.Watch(ctx, tmpDir, app.WatchOptions{OutputMode: "linear"})
		}()

		<-built
		cancel()
		close(events)

		if err := <-done; err != nil {
			t.Errorf("Expected clean shutdown, got: %v", err)
		}
	})
}

func TestApp_Watch_LoadError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := newWatchApp(t)
		tmpDir := t.TempDir()

		m.loader.EXPECT().Load(tmpDir).Return(domain.Project{}, errors.New("bad yaml"))

		err := a.Watch(context.Background(), tmpDir, app.WatchOptions{})
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if !strings.Contains(err.Error(), "failed to load project configuration") {
			t.Errorf("Expected config load error, got: %v", err)
		}
	})
}
