package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"sync"

	"github.com/bundlekit/resolve/internal/core/domain"
	"github.com/bundlekit/resolve/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.Probes = (*ProbeCache)(nil)

// statOutcome is the memoized result of one stat probe. The zero value means
// "does not exist".
type statOutcome struct {
	exists bool
	file   bool
	dir    bool
}

// ProbeCache wraps a ports.FS into single-flight, memoizing probes scoped to
// one build generation. Concurrent probes for the same path share one
// underlying operation; a "not found" outcome on stat probes is memoized as a
// negative result, while any other fault propagates uncached so a later retry
// can succeed.
type ProbeCache struct {
	fs    ports.FS
	group singleflight.Group

	mu    sync.RWMutex
	stats map[string]statOutcome
	files map[string][]byte
	reals map[string]string
}

// NewProbeCache creates a ProbeCache over the given filesystem primitives.
func NewProbeCache(fsys ports.FS) *ProbeCache {
	return &ProbeCache{
		fs:    fsys,
		stats: make(map[string]statOutcome),
		files: make(map[string][]byte),
		reals: make(map[string]string),
	}
}

// Exists reports whether the path exists at all.
func (c *ProbeCache) Exists(ctx context.Context, path string) (bool, error) {
	o, err := c.stat(ctx, path)
	return o.exists, err
}

// IsFile reports whether the path exists and is a regular file.
func (c *ProbeCache) IsFile(ctx context.Context, path string) (bool, error) {
	o, err := c.stat(ctx, path)
	return o.file, err
}

// IsDirectory reports whether the path exists and is a directory.
func (c *ProbeCache) IsDirectory(ctx context.Context, path string) (bool, error) {
	o, err := c.stat(ctx, path)
	return o.dir, err
}

func (c *ProbeCache) stat(ctx context.Context, path string) (statOutcome, error) {
	c.mu.RLock()
	o, ok := c.stats[path]
	c.mu.RUnlock()
	if ok {
		return o, nil
	}

	v, err, _ := c.group.Do("stat\x00"+path, func() (any, error) {
		c.mu.RLock()
		o, ok := c.stats[path]
		c.mu.RUnlock()
		if ok {
			return o, nil
		}

		info, err := c.fs.Stat(ctx, path)
		var outcome statOutcome
		switch {
		case err == nil:
			outcome = statOutcome{
				exists: true,
				file:   info.Mode().IsRegular(),
				dir:    info.IsDir(),
			}
		case errors.Is(err, iofs.ErrNotExist):
			// Absence is a valid, memoizable answer.
		default:
			return nil, zerr.With(zerr.Wrap(err, domain.ErrProbeFailed.Error()), "path", path)
		}

		c.mu.Lock()
		c.stats[path] = outcome
		c.mu.Unlock()
		return outcome, nil
	})
	if err != nil {
		return statOutcome{}, err
	}
	return v.(statOutcome), nil
}

// ReadFile returns the memoized contents of the file at the given path.
// Failures of any kind propagate uncached.
func (c *ProbeCache) ReadFile(ctx context.Context, path string) ([]byte, error) {
	c.mu.RLock()
	data, ok := c.files[path]
	c.mu.RUnlock()
	if ok {
		return data, nil
	}

	v, err, _ := c.group.Do("read\x00"+path, func() (any, error) {
		c.mu.RLock()
		data, ok := c.files[path]
		c.mu.RUnlock()
		if ok {
			return data, nil
		}

		data, err := c.fs.ReadFile(ctx, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrReadFailed.Error()), "path", path)
		}

		c.mu.Lock()
		c.files[path] = data
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Realpath returns the memoized canonical form of the path.
func (c *ProbeCache) Realpath(ctx context.Context, path string) (string, error) {
	c.mu.RLock()
	real, ok := c.reals[path]
	c.mu.RUnlock()
	if ok {
		return real, nil
	}

	v, err, _ := c.group.Do("real\x00"+path, func() (any, error) {
		c.mu.RLock()
		real, ok := c.reals[path]
		c.mu.RUnlock()
		if ok {
			return real, nil
		}

		real, err := c.fs.Realpath(ctx, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrRealpathFailed.Error()), "path", path)
		}

		c.mu.Lock()
		c.reals[path] = real
		c.mu.Unlock()
		return real, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Clear drops all memoized results. It is invoked once at the end of each
// output-generation pass so a subsequent incremental build starts cold.
func (c *ProbeCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = make(map[string]statOutcome)
	c.files = make(map[string][]byte)
	c.reals = make(map[string]string)
}
