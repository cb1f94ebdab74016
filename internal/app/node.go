package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drub/internal/adapters/apply"
	"go.trai.ch/drub/internal/adapters/config"
	"go.trai.ch/drub/internal/adapters/fetch"
	"go.trai.ch/drub/internal/adapters/fstree"
	"go.trai.ch/drub/internal/adapters/logger"
	"go.trai.ch/drub/internal/adapters/markers"
	"go.trai.ch/drub/internal/adapters/opcache"
	"go.trai.ch/drub/internal/adapters/shell"
	"go.trai.ch/drub/internal/adapters/telemetry/progrock"
	"go.trai.ch/drub/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the components graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized pieces the CLI layer works with.
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
			fetch.NodeID,
			apply.NodeID,
			fstree.NodeID,
			markers.NodeID,
			shell.NodeID,
			opcache.NodeID,
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
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	fetcher, err := graft.Dep[ports.Fetcher](ctx)
	if err != nil {
		return nil, err
	}
	applier, err := graft.Dep[ports.Applier](ctx)
	if err != nil {
		return nil, err
	}
	files, err := graft.Dep[ports.TreeWriter](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.MarkerStore](ctx)
	if err != nil {
		return nil, err
	}
	commander, err := graft.Dep[ports.Commander](ctx)
	if err != nil {
		return nil, err
	}
	cache, err := graft.Dep[ports.CacheResetter](ctx)
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

	return New(Deps{
		Loader:    loader,
		Fetcher:   fetcher,
		Applier:   applier,
		Files:     files,
		Markers:   store,
		Commander: commander,
		Cache:     cache,
		Telemetry: telemetry,
		Logger:    log,
	}), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{App: application, Logger: log}, nil
}
