// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/drub/internal/adapters/apply"
	_ "go.trai.ch/drub/internal/adapters/config"
	_ "go.trai.ch/drub/internal/adapters/fetch"
	_ "go.trai.ch/drub/internal/adapters/fstree"
	_ "go.trai.ch/drub/internal/adapters/logger"
	_ "go.trai.ch/drub/internal/adapters/markers"
	_ "go.trai.ch/drub/internal/adapters/opcache"
	_ "go.trai.ch/drub/internal/adapters/recipe"
	_ "go.trai.ch/drub/internal/adapters/shell"
	_ "go.trai.ch/drub/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/drub/internal/app"
)
