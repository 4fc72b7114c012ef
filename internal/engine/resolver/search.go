package resolver

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/bundlekit/resolve/internal/core/domain"
	"github.com/bundlekit/resolve/internal/core/ports"
	"go.trai.ch/zerr"
)

// manifestFileName is the metadata document probed at every package boundary.
const manifestFileName = "package.json"

// searchResult is the raw outcome of the node-style search. For a built-in,
// path holds the specifier itself and builtin is set.
type searchResult struct {
	path    string
	builtin bool
	// info is the manifest crossed while producing path, when one was.
	info *domain.ManifestInfo
}

// searcher performs the classic node-style file/directory/package search over
// the cache-backed probes.
type searcher struct {
	settings  *domain.Settings
	probes    ports.Probes
	manifests ports.ManifestReader
}

// search resolves one candidate specifier against a base directory, yielding
// an absolute path or ErrModuleNotFound.
func (s *searcher) search(ctx context.Context, spec, baseDir string) (searchResult, error) {
	if domain.IsPathSpecifier(spec) {
		path := spec
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		} else {
			path = filepath.Clean(path)
		}
		res, err := s.loadPath(ctx, path, map[string]bool{})
		if err != nil && errors.Is(err, domain.ErrModuleNotFound) {
			return searchResult{}, errNotFound(spec, baseDir)
		}
		return res, err
	}
	return s.loadPackage(ctx, spec, baseDir)
}

// loadPath tries path as a file: as-is, then with each configured extension
// in order, then as a directory. visited guards against manifest entry points
// that cycle back into their own directory.
func (s *searcher) loadPath(ctx context.Context, path string, visited map[string]bool) (searchResult, error) {
	if visited[path] {
		return searchResult{}, errNotFound(path, filepath.Dir(path))
	}
	visited[path] = true

	ok, err := s.probes.IsFile(ctx, path)
	if err != nil {
		return searchResult{}, err
	}
	if ok {
		return searchResult{path: path}, nil
	}

	for _, ext := range s.settings.Extensions {
		ok, err := s.probes.IsFile(ctx, path+ext)
		if err != nil {
			return searchResult{}, err
		}
		if ok {
			return searchResult{path: path + ext}, nil
		}
	}

	ok, err = s.probes.IsDirectory(ctx, path)
	if err != nil {
		return searchResult{}, err
	}
	if ok {
		return s.loadDirectory(ctx, path, visited)
	}

	return searchResult{}, errNotFound(path, filepath.Dir(path))
}

// loadDirectory resolves a directory to its manifest entry point, falling
// back to index probing inside the directory.
func (s *searcher) loadDirectory(ctx context.Context, dir string, visited map[string]bool) (searchResult, error) {
	manifestPath := filepath.Join(dir, manifestFileName)
	var info *domain.ManifestInfo

	ok, err := s.probes.IsFile(ctx, manifestPath)
	if err != nil {
		return searchResult{}, err
	}
	if ok {
		info, err = s.manifests.Info(ctx, manifestPath)
		if err != nil {
			return searchResult{}, err
		}
		if info.EntryPoint == domain.EmptyModuleID {
			return searchResult{path: domain.EmptyModuleID, info: info}, nil
		}
		res, err := s.loadPath(ctx, info.EntryPoint, visited)
		if err == nil {
			if res.info == nil {
				res.info = info
			}
			return res, nil
		}
		if !errors.Is(err, domain.ErrModuleNotFound) {
			return searchResult{}, err
		}
	}

	for _, ext := range s.settings.Extensions {
		index := filepath.Join(dir, "index"+ext)
		ok, err := s.probes.IsFile(ctx, index)
		if err != nil {
			return searchResult{}, err
		}
		if ok {
			return searchResult{path: index, info: info}, nil
		}
	}

	return searchResult{}, errNotFound(dir, dir)
}

// loadPackage resolves a bare specifier by walking ancestor node_modules
// directories from baseDir up to the filesystem root. A trailing slash forces
// the package search and never falls back to a built-in.
func (s *searcher) loadPackage(ctx context.Context, spec, baseDir string) (searchResult, error) {
	name, subpath := domain.SplitPackageSpecifier(spec)
	forced := strings.HasSuffix(spec, "/")

	for dir := baseDir; ; {
		if filepath.Base(dir) != "node_modules" {
			pkgDir := filepath.Join(dir, "node_modules", name)
			ok, err := s.probes.IsDirectory(ctx, pkgDir)
			if err != nil {
				return searchResult{}, err
			}
			if ok {
				return s.loadPackageDir(ctx, pkgDir, subpath)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if !forced && domain.IsBuiltin(spec) {
		return searchResult{path: spec, builtin: true}, nil
	}
	return searchResult{}, errNotFound(spec, baseDir)
}

// loadPackageDir resolves either the package entry point or a sub-path inside
// an already located package directory.
func (s *searcher) loadPackageDir(ctx context.Context, pkgDir, subpath string) (searchResult, error) {
	if subpath == "" {
		return s.loadDirectory(ctx, pkgDir, map[string]bool{})
	}

	res, err := s.loadPath(ctx, filepath.Join(pkgDir, subpath), map[string]bool{})
	if err != nil {
		return searchResult{}, err
	}
	if res.info == nil {
		res.info, err = s.manifestAt(ctx, pkgDir)
		if err != nil {
			return searchResult{}, err
		}
	}
	return res, nil
}

// manifestAt returns the interpreted manifest of dir, or nil when dir has none.
func (s *searcher) manifestAt(ctx context.Context, dir string) (*domain.ManifestInfo, error) {
	manifestPath := filepath.Join(dir, manifestFileName)
	ok, err := s.probes.IsFile(ctx, manifestPath)
	if err != nil || !ok {
		return nil, err
	}
	return s.manifests.Info(ctx, manifestPath)
}

// owningManifest walks upward from dir to find the manifest of the package a
// file belongs to.
func (s *searcher) owningManifest(ctx context.Context, dir string) (*domain.ManifestInfo, error) {
	for {
		info, err := s.manifestAt(ctx, dir)
		if err != nil || info != nil {
			return info, err
		}
		parent := filepath.Dir(dir)
		if parent == dir || filepath.Base(dir) == "node_modules" {
			return nil, nil
		}
		dir = parent
	}
}

// errNotFound keeps the sentinel in the cause chain so callers can match it
// with errors.Is; zerr.With alone would copy the message without chaining.
func errNotFound(spec, baseDir string) error {
	err := zerr.Wrap(domain.ErrModuleNotFound, "no candidate matched")
	return zerr.With(zerr.With(err, "specifier", spec), "base_dir", baseDir)
}
