// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/nativedev/internal/adapters/browser"
	_ "go.trai.ch/nativedev/internal/adapters/config"
	_ "go.trai.ch/nativedev/internal/adapters/history"
	_ "go.trai.ch/nativedev/internal/adapters/logger"
	_ "go.trai.ch/nativedev/internal/adapters/shell"
	_ "go.trai.ch/nativedev/internal/adapters/statusapi"
	_ "go.trai.ch/nativedev/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/nativedev/internal/app"
	_ "go.trai.ch/nativedev/internal/engine/devserver"
)
