package ports

import (
	"context"
	"iter"
)

// WatchOp identifies the kind of filesystem change a watcher observed.
type WatchOp int

const (
	OpCreate WatchOp = iota
	OpWrite
	OpRemove
	OpRename
)

// String returns the name of the operation.
func (op WatchOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// WatchEvent describes a single filesystem change.
type WatchEvent struct {
	// Path is the absolute path of the changed file.
	Path string

	// Operation is the kind of change.
	Operation WatchOp
}

// Watcher defines the interface for watching a directory for changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the root directory. It does not descend into
	// subdirectories. Events are delivered until Stop is called or the
	// context is canceled.
	Start(ctx context.Context, root string) error

	// Stop ends the watch and releases resources.
	Stop() error

	// Events returns the stream of observed changes.
	Events() iter.Seq[WatchEvent]
}
