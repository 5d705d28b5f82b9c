package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mortar/internal/core/ports"
)

const (
	ScannerNodeID graft.ID = "adapter.fs.scanner"
	HasherNodeID  graft.ID = "adapter.fs.hasher"
)

func init() {
	// Scanner Node
	graft.Register(graft.Node[ports.Scanner]{
		ID:        ScannerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Scanner, error) {
			return NewScanner(), nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
