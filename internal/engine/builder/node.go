package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mortar/internal/adapters/cas"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mortar/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mortar/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mortar/internal/adapters/shell"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mortar/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ScannerNodeID,
			shell.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			scanner, err := graft.Dep[ports.Scanner](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(scanner, executor, hasher, store, log), nil
		},
	})
}
