// Package telemetry provides the no-op telemetry recorder used for library
// embedding and tests; the progrock subpackage provides the rich one.
package telemetry

import (
	"context"
	"io"

	"github.com/bundlekit/resolve/internal/core/ports"
)

var _ ports.Telemetry = (*Noop)(nil)

// Noop is a Telemetry implementation that records nothing.
type Noop struct{}

// NewNoop creates a new Noop recorder.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns an inert vertex.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close does nothing.
func (n *Noop) Close() error {
	return nil
}

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return io.Discard }
func (noopVertex) Complete(error)    {}
func (noopVertex) Cached()           {}
