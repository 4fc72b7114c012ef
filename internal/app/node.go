package app

import (
	"context"

	"github.com/bundlekit/resolve/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"github.com/bundlekit/resolve/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"github.com/bundlekit/resolve/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"github.com/bundlekit/resolve/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"github.com/bundlekit/resolve/internal/adapters/telemetry/progrock"
	"github.com/bundlekit/resolve/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the App with the collaborators the CLI needs directly.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.ProbesNodeID,
			fs.HasherNodeID,
			manifest.ParserNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	probes, err := graft.Dep[ports.Probes](ctx)
	if err != nil {
		return nil, err
	}
	parser, err := graft.Dep[ports.ManifestParser](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, probes, parser, hasher, telemetry, log), nil
}
