package domain

import (
	"path/filepath"
	"strings"
)

// IsPathSpecifier reports whether spec addresses the filesystem directly
// (relative or absolute) rather than naming an installed package.
func IsPathSpecifier(spec string) bool {
	if spec == "." || spec == ".." {
		return true
	}
	return strings.HasPrefix(spec, "./") ||
		strings.HasPrefix(spec, "../") ||
		strings.HasPrefix(spec, "/") ||
		filepath.IsAbs(spec)
}

// SplitPackageSpecifier splits a bare specifier into the package name and the
// remaining sub-path. Scoped names occupy two path segments, so
// "@scope/pkg/sub/path.js" yields ("@scope/pkg", "sub/path.js").
func SplitPackageSpecifier(spec string) (name, subpath string) {
	spec = strings.TrimSuffix(spec, "/")
	segments := strings.Split(spec, "/")

	take := 1
	if strings.HasPrefix(spec, "@") && len(segments) > 1 {
		take = 2
	}
	name = strings.Join(segments[:take], "/")
	subpath = strings.Join(segments[take:], "/")
	return name, subpath
}
