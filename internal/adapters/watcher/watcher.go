// Package watcher implements filesystem watching for watch mode rebuilds.
package watcher

import (
	"context"
	"fmt"
	"iter"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/mortar/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements ports.Watcher using fsnotify. It watches a single
// directory without descending, mirroring source discovery.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
	logger    ports.Logger
}

// NewWatcher creates a watcher. Filesystem errors observed while watching
// are reported through log.
func NewWatcher(log ports.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		logger:    log,
	}, nil
}

// Start begins watching the project directory.
func (w *Watcher) Start(ctx context.Context, root string) error {
	if err := w.fsWatcher.Add(root); err != nil {
		return err
	}

	go w.pump(ctx)

	return nil
}

// Stop ends the watch and releases the fsnotify handle.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns the stream of observed changes. The stream ends when the
// watch stops or the Start context is canceled.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// pump converts raw fsnotify events and forwards them until the watch ends.
func (w *Watcher) pump(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			converted, ok := convert(event)
			if !ok {
				continue
			}

			select {
			case w.events <- converted:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(fmt.Sprintf("file watcher error: %v", err))
		}
	}
}

// convert maps an fsnotify event onto the port's vocabulary. Chmod-only
// events carry no content change and are dropped.
func convert(event fsnotify.Event) (ports.WatchEvent, bool) {
	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return ports.WatchEvent{}, false
	}
	return ports.WatchEvent{Path: event.Name, Operation: op}, true
}
