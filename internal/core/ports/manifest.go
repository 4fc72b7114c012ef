package ports

import (
	"context"

	"github.com/bundlekit/resolve/internal/core/domain"
)

// ManifestParser turns raw manifest bytes into the plain key-value document
// the interpreter works on.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestParser interface {
	// Parse parses the manifest at the given path.
	Parse(path string, data []byte) (*domain.PackageManifest, error)
}

// ManifestReader interprets package manifests into ManifestInfo, memoized by
// manifest path for one build generation.
type ManifestReader interface {
	// Info computes (or returns the memoized) interpreted view of the
	// manifest at the given absolute path.
	Info(ctx context.Context, manifestPath string) (*domain.ManifestInfo, error)

	// Clear drops all memoized interpretations at a build-generation boundary.
	Clear()
}
