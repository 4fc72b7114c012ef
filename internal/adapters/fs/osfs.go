// Package fs implements the filesystem adapters: the raw OS primitives and
// the build-scoped probe cache the resolution engine works against.
package fs

import (
	"context"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/bundlekit/resolve/internal/core/ports"
)

var _ ports.FS = (*OSFS)(nil)

// OSFS implements ports.FS on the os package. Errors are returned unwrapped
// so the probe cache can distinguish absence from genuine faults.
type OSFS struct{}

// NewOSFS creates a new OSFS.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat returns metadata for the given path.
func (o *OSFS) Stat(ctx context.Context, path string) (iofs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Stat(path)
}

// ReadFile returns the contents of the file at the given path.
func (o *OSFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path) //nolint:gosec // Path is controlled by caller
}

// Realpath resolves the path to its canonical, symlink-free form.
func (o *OSFS) Realpath(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(path)
}
