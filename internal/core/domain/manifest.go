package domain

// PackageManifest is the parsed metadata document of one package, as handed
// back by the manifest parser. Fields holds the raw key-value document so
// arbitrary configured main fields can be consulted.
type PackageManifest struct {
	Path   string
	Fields map[string]any
}

// Name returns the package name declared in the manifest, if any.
func (m *PackageManifest) Name() string {
	s, _ := m.Fields["name"].(string)
	return s
}

// StringField returns the named field when it is present with a string value.
func (m *PackageManifest) StringField(name string) (string, bool) {
	s, ok := m.Fields[name].(string)
	return s, ok
}

// BrowserMapping is one entry of a BrowserMap. Empty marks the manifest
// sentinel `false`, meaning the key must be replaced with the empty stub
// module rather than another file.
type BrowserMapping struct {
	Replacement string
	Empty       bool
}

// BrowserMap is the substitution table a manifest's `browser` object expands
// into. Keys are bare specifiers and absolute paths, with and without the
// configured extensions; all variants of one source entry point at the same
// mapping. The same table serves both the pre-resolution (specifier) and
// post-resolution (resolved path) trigger points.
type BrowserMap map[string]BrowserMapping

// Lookup returns the mapping for the first key that is present.
func (m BrowserMap) Lookup(keys ...string) (BrowserMapping, bool) {
	for _, k := range keys {
		if mapping, ok := m[k]; ok {
			return mapping, true
		}
	}
	return BrowserMapping{}, false
}

// SideEffects classifies whether importing a module purely for its effects is
// required. Unknown means the manifest made no authoritative statement.
type SideEffects uint8

const (
	// SideEffectsUnknown indicates the manifest carries no sideEffects declaration.
	SideEffectsUnknown SideEffects = iota
	// SideEffectsTrue indicates the module must be kept for its side effects.
	SideEffectsTrue
	// SideEffectsFalse indicates the module is declared side-effect free.
	SideEffectsFalse
)

// String returns a human-readable form of the classification.
func (s SideEffects) String() string {
	switch s {
	case SideEffectsTrue:
		return "true"
	case SideEffectsFalse:
		return "false"
	default:
		return "unknown"
	}
}

// ManifestInfo is the interpreted view of one package manifest. It is
// computed exactly once per manifest path per build generation and is
// immutable thereafter.
type ManifestInfo struct {
	// ManifestPath is the absolute path of the manifest file.
	ManifestPath string
	// RootDir is the package directory containing the manifest.
	RootDir string
	// PackageName is the declared package name, if any.
	PackageName string
	// ResolvedMainField names the main field that won the configured priority.
	// Empty when no configured field was present.
	ResolvedMainField string
	// EntryPoint is the absolute path the chosen main field (or the index.js
	// default) resolves to.
	EntryPoint string
	// BrowserMappedMain reports that the browser map overrode the entry point.
	BrowserMappedMain bool
	// BrowserMap is the substitution table, nil unless browser mode is on and
	// the manifest declares a browser object.
	BrowserMap BrowserMap
	// SideEffectsPolicy evaluates the manifest's sideEffects declaration for
	// an absolute path. Nil when the manifest made no declaration.
	SideEffectsPolicy func(absPath string) SideEffects
}

// SideEffectsFor evaluates the side-effects policy for the given path,
// returning Unknown when the manifest made no declaration.
func (i *ManifestInfo) SideEffectsFor(absPath string) SideEffects {
	if i == nil || i.SideEffectsPolicy == nil {
		return SideEffectsUnknown
	}
	return i.SideEffectsPolicy(absPath)
}
