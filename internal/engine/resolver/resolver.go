// Package resolver implements the module resolution engine: the candidate
// fallback algorithm, the node-style search and the policy layer that turns a
// raw path into a final resolved record.
package resolver

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/bundlekit/resolve/internal/core/domain"
	"github.com/bundlekit/resolve/internal/core/ports"
)

// Resolver resolves import specifiers to loadable module records for one
// build. It is safe for concurrent use; unrelated requests may be in flight
// simultaneously while candidates within one request stay sequential.
type Resolver struct {
	settings  *domain.Settings
	probes    ports.Probes
	manifests ports.ManifestReader
	log       ports.Logger
	search    searcher

	mu             sync.RWMutex
	infosByID      map[string]*domain.ManifestInfo
	browserMaps    map[string]domain.BrowserMap
	warnedBuiltins map[string]bool
}

// New creates a Resolver over canonical settings and build-scoped caches.
func New(settings *domain.Settings, probes ports.Probes, manifests ports.ManifestReader, log ports.Logger) *Resolver {
	return &Resolver{
		settings:  settings,
		probes:    probes,
		manifests: manifests,
		log:       log,
		search: searcher{
			settings:  settings,
			probes:    probes,
			manifests: manifests,
		},
		infosByID:      make(map[string]*domain.ManifestInfo),
		browserMaps:    make(map[string]domain.BrowserMap),
		warnedBuiltins: make(map[string]bool),
	}
}

// Resolve resolves one specifier against the module that imported it. An
// empty importer marks a module-graph root. It returns (nil, nil) when the
// specifier is not resolvable, which the caller treats as external; only
// genuine filesystem faults surface as errors.
func (r *Resolver) Resolve(ctx context.Context, specifier, importer string) (*domain.ResolvedModule, error) {
	if specifier == domain.EmptyModuleID {
		return emptyStub(), nil
	}

	isRoot := importer == ""
	if !r.allowed(specifier) {
		return nil, nil
	}

	baseDir := r.effectiveBaseDir(specifier, importer)

	orig := specifier
	substituted := false
	if mapped, stub := r.preSubstitute(specifier, importer); stub {
		return emptyStub(), nil
	} else if mapped != "" {
		specifier = mapped
		substituted = true
	}

	res, err := r.runCandidates(ctx, r.candidates(specifier, isRoot), baseDir)
	if err != nil {
		if errors.Is(err, domain.ErrModuleNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if external := r.applyBuiltinPreference(orig, substituted, res); external {
		return nil, nil
	}

	return r.finalize(ctx, res)
}

// ManifestInfoForID exposes the manifest information associated with a
// previously resolved id.
func (r *Resolver) ManifestInfoForID(id string) (*domain.ManifestInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.infosByID[id]
	return info, ok
}

// ClearCaches resets every build-scoped cache at the end of an
// output-generation pass, so the next pass observes fresh filesystem state.
func (r *Resolver) ClearCaches() {
	r.probes.Clear()
	r.manifests.Clear()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.infosByID = make(map[string]*domain.ManifestInfo)
	r.browserMaps = make(map[string]domain.BrowserMap)
	r.warnedBuiltins = make(map[string]bool)
}

// effectiveBaseDir applies the dedupe override: graph roots and deduped
// packages resolve from the project root, guaranteeing one shared instance.
func (r *Resolver) effectiveBaseDir(specifier, importer string) string {
	if importer == "" {
		return r.settings.RootDir
	}
	if !domain.IsPathSpecifier(specifier) {
		name, _ := domain.SplitPackageSpecifier(specifier)
		if r.settings.ShouldDedupe(specifier) || r.settings.ShouldDedupe(name) {
			return r.settings.RootDir
		}
	}
	return filepath.Dir(importer)
}

func emptyStub() *domain.ResolvedModule {
	return &domain.ResolvedModule{
		ID:          domain.EmptyModuleID,
		SideEffects: domain.SideEffectsFalse,
	}
}
