package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mortar/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/mortar/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mortar/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/mortar/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mortar/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/mortar/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/mortar/internal/core/ports"
	"go.trai.ch/mortar/internal/engine/builder"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			builder.NodeID,
			shell.NodeID,
			fs.ScannerNodeID,
			cas.NodeID,
			fs.HasherNodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	bldr, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	scanner, err := graft.Dep[ports.Scanner](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BuildInfoStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	watch, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, bldr, executor, scanner, store, hasher, watch, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	mainApp, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    mainApp,
		Logger: log,
	}, nil
}
