// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mortar/internal/adapters/cas"
	_ "go.trai.ch/mortar/internal/adapters/config"
	_ "go.trai.ch/mortar/internal/adapters/fs"
	_ "go.trai.ch/mortar/internal/adapters/logger"
	_ "go.trai.ch/mortar/internal/adapters/shell"
	_ "go.trai.ch/mortar/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/mortar/internal/app"
	_ "go.trai.ch/mortar/internal/engine/builder"
)
