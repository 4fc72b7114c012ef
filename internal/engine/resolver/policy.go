package resolver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bundlekit/resolve/internal/core/domain"
)

// allowed applies the `only` allow-list. Path specifiers and built-ins are
// never filtered; bare specifiers must match a pattern by package name.
func (r *Resolver) allowed(spec string) bool {
	if len(r.settings.Only) == 0 || domain.IsPathSpecifier(spec) || domain.IsBuiltin(spec) {
		return true
	}
	name, _ := domain.SplitPackageSpecifier(spec)
	for _, pattern := range r.settings.Only {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// preSubstitute consults the importing module's inherited browser map before
// the search runs. It returns the substituted specifier, or stub when the map
// suppresses the import entirely.
func (r *Resolver) preSubstitute(specifier, importer string) (mapped string, stub bool) {
	if !r.settings.Browser || importer == "" {
		return "", false
	}

	r.mu.RLock()
	bm := r.browserMaps[importer]
	r.mu.RUnlock()
	if bm == nil {
		return "", false
	}

	keys := []string{specifier}
	if domain.IsPathSpecifier(specifier) && !filepath.IsAbs(specifier) {
		// Extension variants of the absolute form are registered in the map.
		keys = append(keys, filepath.Join(filepath.Dir(importer), specifier))
	}
	mapping, ok := bm.Lookup(keys...)
	if !ok {
		return "", false
	}
	if mapping.Empty {
		return "", true
	}
	return mapping.Replacement, false
}

// applyBuiltinPreference decides between a platform built-in and a same-named
// local package. It reports whether the request resolves to the built-in,
// i.e. external and not bundled. A browser-map substitution already rewrote
// the specifier on the importer's explicit instruction, so the preference
// never overrides it.
func (r *Resolver) applyBuiltinPreference(orig string, substituted bool, res searchResult) bool {
	if res.builtin {
		// Nothing local shadowed the name; external regardless of preference.
		return true
	}
	if substituted || domain.IsPathSpecifier(orig) || !domain.IsBuiltin(orig) {
		return false
	}

	switch r.settings.PreferBuiltins {
	case domain.TriFalse:
		return false
	case domain.TriUnset:
		r.warnShadowed(orig, res.path)
		return true
	default:
		return true
	}
}

// warnShadowed surfaces the silent default: preferring a built-in over a
// same-named local package without the user having asked for it.
func (r *Resolver) warnShadowed(name, localPath string) {
	r.mu.Lock()
	seen := r.warnedBuiltins[name]
	r.warnedBuiltins[name] = true
	r.mu.Unlock()
	if seen {
		return
	}
	r.log.Warn(fmt.Sprintf(
		"preferring built-in module %q over local alternative at %q; set preferBuiltins to false to use the local version, or to true to silence this note",
		name, localPath,
	))
}

// finalize applies the post-search policy steps in order: browser
// substitution from the target package's own map, symlink realization, jail
// enforcement, module-format filtering, and the final record.
func (r *Resolver) finalize(ctx context.Context, res searchResult) (*domain.ResolvedModule, error) {
	id := res.path
	info := res.info

	if id != domain.EmptyModuleID && info == nil {
		var err error
		info, err = r.search.owningManifest(ctx, filepath.Dir(id))
		if err != nil {
			return nil, err
		}
	}

	if r.settings.Browser && id != domain.EmptyModuleID && info != nil {
		if mapping, ok := info.BrowserMap.Lookup(id); ok {
			mappedID, mappedInfo, err := r.applyMapping(ctx, mapping, info)
			if err != nil {
				if errors.Is(err, domain.ErrModuleNotFound) {
					return nil, nil
				}
				return nil, err
			}
			id = mappedID
			if mappedInfo != nil {
				info = mappedInfo
			}
		}
	}

	if id != domain.EmptyModuleID && !r.settings.PreserveSymlinks {
		ok, err := r.probes.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			id, err = r.probes.Realpath(ctx, id)
			if err != nil {
				return nil, err
			}
		}
	}

	if id != domain.EmptyModuleID && r.settings.Jail != "" && !within(id, r.settings.Jail) {
		return nil, nil
	}

	if id != domain.EmptyModuleID && r.settings.ModulesOnly {
		code, err := r.probes.ReadFile(ctx, id)
		if err != nil {
			return nil, err
		}
		if !hasModuleSyntax(code) {
			return nil, nil
		}
	}

	side := info.SideEffectsFor(id)
	if id == domain.EmptyModuleID {
		side = domain.SideEffectsFalse
	}

	rec := &domain.ResolvedModule{ID: id, SideEffects: side, ManifestInfo: info}

	r.mu.Lock()
	if info != nil {
		r.infosByID[id] = info
		if info.BrowserMap != nil && id != domain.EmptyModuleID {
			// Future imports from this module inherit the owning package's
			// map. The virtual stub id is shared by every stubbed package and
			// must not inherit any one of them.
			r.browserMaps[id] = info.BrowserMap
		}
	}
	r.mu.Unlock()

	return rec, nil
}

// applyMapping resolves a browser-map target: the empty stub, an absolute
// path (re-entering file resolution for extension probing), or a bare
// replacement resolved like a package import from the owning package root.
func (r *Resolver) applyMapping(ctx context.Context, mapping domain.BrowserMapping, owner *domain.ManifestInfo) (string, *domain.ManifestInfo, error) {
	if mapping.Empty {
		return domain.EmptyModuleID, nil, nil
	}
	if filepath.IsAbs(mapping.Replacement) {
		res, err := r.search.loadPath(ctx, mapping.Replacement, map[string]bool{})
		if err != nil {
			return "", nil, err
		}
		return res.path, res.info, nil
	}
	res, err := r.search.loadPackage(ctx, mapping.Replacement, owner.RootDir)
	if err != nil {
		return "", nil, err
	}
	if res.builtin {
		return "", nil, errNotFound(mapping.Replacement, owner.RootDir)
	}
	return res.path, res.info, nil
}

// within reports whether path lies inside the root subtree.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
