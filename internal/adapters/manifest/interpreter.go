package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bundlekit/resolve/internal/core/domain"
	"github.com/bundlekit/resolve/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

var _ ports.ManifestReader = (*Interpreter)(nil)

// Interpreter computes the interpreted view of package manifests: the chosen
// main field, the absolute entry point, the browser map and the side-effect
// policy. Results are memoized per manifest path for one build generation;
// the manifest is treated as immutable for the build's duration.
type Interpreter struct {
	settings *domain.Settings
	probes   ports.Probes
	parser   ports.ManifestParser
	log      ports.Logger
	group    singleflight.Group

	mu    sync.RWMutex
	infos map[string]*domain.ManifestInfo
}

// NewInterpreter creates an Interpreter over the given probes and parser.
func NewInterpreter(settings *domain.Settings, probes ports.Probes, parser ports.ManifestParser, log ports.Logger) *Interpreter {
	return &Interpreter{
		settings: settings,
		probes:   probes,
		parser:   parser,
		log:      log,
		infos:    make(map[string]*domain.ManifestInfo),
	}
}

// Info computes (or returns the memoized) interpreted view of the manifest at
// the given absolute path.
func (i *Interpreter) Info(ctx context.Context, manifestPath string) (*domain.ManifestInfo, error) {
	i.mu.RLock()
	info, ok := i.infos[manifestPath]
	i.mu.RUnlock()
	if ok {
		return info, nil
	}

	v, err, _ := i.group.Do(manifestPath, func() (any, error) {
		i.mu.RLock()
		info, ok := i.infos[manifestPath]
		i.mu.RUnlock()
		if ok {
			return info, nil
		}

		info, err := i.interpret(ctx, manifestPath)
		if err != nil {
			return nil, err
		}

		i.mu.Lock()
		i.infos[manifestPath] = info
		i.mu.Unlock()
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ManifestInfo), nil
}

// Clear drops all memoized interpretations at a build-generation boundary.
func (i *Interpreter) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.infos = make(map[string]*domain.ManifestInfo)
}

func (i *Interpreter) interpret(ctx context.Context, manifestPath string) (*domain.ManifestInfo, error) {
	data, err := i.probes.ReadFile(ctx, manifestPath)
	if err != nil {
		return nil, err
	}
	m, err := i.parser.Parse(manifestPath, data)
	if err != nil {
		return nil, err
	}

	rootDir := filepath.Dir(manifestPath)
	info := &domain.ManifestInfo{
		ManifestPath: manifestPath,
		RootDir:      rootDir,
		PackageName:  m.Name(),
	}

	mainValue := "index.js"
	for _, field := range i.settings.MainFields {
		if value, ok := m.StringField(field); ok {
			info.ResolvedMainField = field
			mainValue = value
			break
		}
	}
	info.EntryPoint = absJoin(rootDir, mainValue)

	if i.settings.Browser {
		info.BrowserMap = i.buildBrowserMap(rootDir, m)
	}
	if mapping, ok := info.BrowserMap.Lookup(mainValue, "./"+mainValue, info.EntryPoint); ok {
		info.BrowserMappedMain = true
		if mapping.Empty {
			info.EntryPoint = domain.EmptyModuleID
		} else {
			info.EntryPoint = mapping.Replacement
		}
	}

	info.SideEffectsPolicy = i.sideEffectsPolicy(rootDir, m)
	return info, nil
}

// buildBrowserMap expands the manifest's browser object into one substitution
// table. Relative keys are registered in absolute form too, plus every
// configured extension when the key carries none, all pointing at the same
// replacement.
func (i *Interpreter) buildBrowserMap(rootDir string, m *domain.PackageManifest) domain.BrowserMap {
	obj, ok := m.Fields["browser"].(map[string]any)
	if !ok {
		return nil
	}

	bm := make(domain.BrowserMap)
	for key, raw := range obj {
		var mapping domain.BrowserMapping
		switch value := raw.(type) {
		case bool:
			if value {
				continue
			}
			mapping = domain.BrowserMapping{Empty: true}
		case string:
			if strings.HasPrefix(value, ".") {
				mapping = domain.BrowserMapping{Replacement: absJoin(rootDir, value)}
			} else {
				mapping = domain.BrowserMapping{Replacement: value}
			}
		default:
			i.log.Warn(fmt.Sprintf("ignoring browser entry %q in %s: unsupported value", key, m.Path))
			continue
		}

		bm[key] = mapping
		if strings.HasPrefix(key, ".") {
			absKey := absJoin(rootDir, key)
			bm[absKey] = mapping
			if filepath.Ext(absKey) == "" {
				for _, ext := range i.settings.Extensions {
					bm[absKey+ext] = mapping
				}
			}
		}
	}
	if len(bm) == 0 {
		return nil
	}
	return bm
}

// sideEffectsPolicy derives the predicate for the manifest's sideEffects
// declaration. A boolean yields a constant, an array a glob match relative to
// the package root, absence the Unknown sentinel.
func (i *Interpreter) sideEffectsPolicy(rootDir string, m *domain.PackageManifest) func(string) domain.SideEffects {
	switch declared := m.Fields["sideEffects"].(type) {
	case nil:
		return nil
	case bool:
		constant := domain.SideEffectsFalse
		if declared {
			constant = domain.SideEffectsTrue
		}
		return func(string) domain.SideEffects { return constant }
	case []any:
		patterns := make([]string, 0, len(declared))
		for _, p := range declared {
			if s, ok := p.(string); ok {
				// Bare file patterns match at any depth, npm-style.
				if !strings.Contains(s, "/") {
					s = "**/" + s
				}
				patterns = append(patterns, strings.TrimPrefix(s, "./"))
			}
		}
		return func(absPath string) domain.SideEffects {
			rel, err := filepath.Rel(rootDir, absPath)
			if err != nil || strings.HasPrefix(rel, "..") {
				return domain.SideEffectsUnknown
			}
			rel = filepath.ToSlash(rel)
			for _, pattern := range patterns {
				if ok, _ := doublestar.Match(pattern, rel); ok {
					return domain.SideEffectsTrue
				}
			}
			return domain.SideEffectsFalse
		}
	default:
		i.log.Warn(fmt.Sprintf("ignoring sideEffects declaration in %s: expected boolean or array", m.Path))
		return nil
	}
}

// absJoin resolves value relative to base unless it is already absolute.
func absJoin(base, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(base, value)
}
