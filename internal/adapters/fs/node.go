package fs

import (
	"context"

	"github.com/bundlekit/resolve/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// OSNodeID is the unique identifier for the raw filesystem Graft node.
	OSNodeID graft.ID = "adapter.fs.os"
	// ProbesNodeID is the unique identifier for the probe cache Graft node.
	ProbesNodeID graft.ID = "adapter.fs.probes"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.FS]{
		ID:        OSNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FS, error) {
			return NewOSFS(), nil
		},
	})

	graft.Register(graft.Node[ports.Probes]{
		ID:        ProbesNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{OSNodeID},
		Run: func(ctx context.Context) (ports.Probes, error) {
			fsys, err := graft.Dep[ports.FS](ctx)
			if err != nil {
				return nil, err
			}
			return NewProbeCache(fsys), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
