package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mortar/internal/adapters/watcher"
	"go.trai.ch/mortar/internal/core/ports"
	"go.trai.ch/mortar/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestWatcher(t *testing.T) *watcher.Watcher {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)
	return w
}

// startCollecting drains the event stream into a channel so tests can
// select on it with a timeout.
func startCollecting(w *watcher.Watcher) <-chan ports.WatchEvent {
	out := make(chan ports.WatchEvent, 16)
	go func() {
		defer close(out)
		for ev := range w.Events() {
			out <- ev
		}
	}()
	return out
}

// waitForPath receives events until one matches path.
func waitForPath(t *testing.T, events <-chan ports.WatchEvent, path string) ports.WatchEvent {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("event stream closed before an event for %s arrived", path)
			}
			if ev.Path == path {
				return ev
			}
		case <-deadline:
			t.Fatalf("no event for %s within deadline", path)
		}
	}
}

func TestWatcher_DeliversWrites(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "main.cpp")
	require.NoError(t, os.WriteFile(source, []byte("int main() {}\n"), 0o600))

	w := newTestWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, w.Start(ctx, dir))
	defer func() { _ = w.Stop() }()
	events := startCollecting(w)

	require.NoError(t, os.WriteFile(source, []byte("int main() { return 1; }\n"), 0o600))

	ev := waitForPath(t, events, source)
	assert.Contains(t, []ports.WatchOp{ports.OpWrite, ports.OpCreate}, ev.Operation)
}

func TestWatcher_DeliversCreates(t *testing.T) {
	dir := t.TempDir()

	w := newTestWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, w.Start(ctx, dir))
	defer func() { _ = w.Stop() }()
	events := startCollecting(w)

	source := filepath.Join(dir, "board.cpp")
	require.NoError(t, os.WriteFile(source, []byte("void board() {}\n"), 0o600))

	ev := waitForPath(t, events, source)
	assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, ev.Operation)
}

func TestWatcher_DeliversRemoves(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "old.cpp")
	require.NoError(t, os.WriteFile(source, []byte("\n"), 0o600))

	w := newTestWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, w.Start(ctx, dir))
	defer func() { _ = w.Stop() }()
	events := startCollecting(w)

	require.NoError(t, os.Remove(source))

	ev := waitForPath(t, events, source)
	assert.Equal(t, ports.OpRemove, ev.Operation)
}

// The watch does not descend, so changes inside subdirectories never reach
// the stream. A marker change in the root proves the stream was live.
func TestWatcher_IgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "vendor")
	require.NoError(t, os.Mkdir(sub, 0o750))

	w := newTestWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, w.Start(ctx, dir))
	defer func() { _ = w.Stop() }()
	events := startCollecting(w)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "inner.cpp"), []byte("\n"), 0o600))
	marker := filepath.Join(dir, "marker.cpp")
	require.NoError(t, os.WriteFile(marker, []byte("\n"), 0o600))

	ev := waitForPath(t, events, marker)
	assert.Equal(t, marker, ev.Path)
}

func TestWatcher_StreamEndsOnCancel(t *testing.T) {
	dir := t.TempDir()

	w := newTestWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, w.Start(ctx, dir))
	defer func() { _ = w.Stop() }()
	events := startCollecting(w)

	cancel()

	// Buffered events may still arrive; the close must follow.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("event stream did not end after cancel")
		}
	}
}

func TestWatcher_StreamEndsOnStop(t *testing.T) {
	dir := t.TempDir()

	w := newTestWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, w.Start(ctx, dir))
	events := startCollecting(w)

	require.NoError(t, w.Stop())

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("event stream did not end after Stop")
		}
	}
}

func TestWatcher_StartFailsOnMissingDir(t *testing.T) {
	w := newTestWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := w.Start(ctx, filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
}
