// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/bundlekit/resolve/internal/adapters/config"
	_ "github.com/bundlekit/resolve/internal/adapters/fs"
	_ "github.com/bundlekit/resolve/internal/adapters/logger"
	_ "github.com/bundlekit/resolve/internal/adapters/manifest"
	_ "github.com/bundlekit/resolve/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "github.com/bundlekit/resolve/internal/app"
)
