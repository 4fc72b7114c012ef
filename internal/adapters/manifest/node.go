package manifest

import (
	"context"

	"github.com/bundlekit/resolve/internal/core/ports"
	"github.com/grindlemire/graft"
)

// ParserNodeID is the unique identifier for the manifest parser Graft node.
// The Interpreter itself is constructed per build generation because it is
// parameterized by the canonical settings.
const ParserNodeID graft.ID = "adapter.manifest.parser"

func init() {
	graft.Register(graft.Node[ports.ManifestParser]{
		ID:        ParserNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestParser, error) {
			return NewParser(), nil
		},
	})
}
