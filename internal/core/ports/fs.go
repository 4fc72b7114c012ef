package ports

import (
	"context"
	iofs "io/fs"
)

// FS is the raw asynchronous filesystem primitive the probe cache wraps.
// Implementations return an error satisfying errors.Is(err, fs.ErrNotExist)
// for absent paths so the cache can distinguish absence from genuine faults.
//
//go:generate mockgen -source=fs.go -destination=mocks/mock_fs.go -package=mocks
type FS interface {
	// Stat returns metadata for the given path.
	Stat(ctx context.Context, path string) (iofs.FileInfo, error)

	// ReadFile returns the contents of the file at the given path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// Realpath resolves the path to its canonical, symlink-free form.
	Realpath(ctx context.Context, path string) (string, error)
}

// Probes is the cache-backed filesystem surface the resolution engine works
// against. Results are memoized for one build generation; concurrent probes
// for the same path share one underlying operation.
type Probes interface {
	// Exists reports whether the path exists at all.
	Exists(ctx context.Context, path string) (bool, error)

	// IsFile reports whether the path exists and is a regular file.
	IsFile(ctx context.Context, path string) (bool, error)

	// IsDirectory reports whether the path exists and is a directory.
	IsDirectory(ctx context.Context, path string) (bool, error)

	// ReadFile returns the memoized contents of the file at the given path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// Realpath returns the memoized canonical form of the path.
	Realpath(ctx context.Context, path string) (string, error)

	// Clear drops all memoized results at a build-generation boundary.
	Clear()
}
