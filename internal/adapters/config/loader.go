// Package config provides the configuration loader for the resolver.
package config

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/bundlekit/resolve/internal/core/domain"
	"github.com/bundlekit/resolve/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file probed when Load is given a
// directory.
const DefaultFileName = "resolve.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path and returns canonical settings. A
// missing file yields the defaults rooted at the searched directory.
func (l *Loader) Load(path string) (*domain.Settings, error) {
	configPath := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		configPath = filepath.Join(path, DefaultFileName)
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.NewSettings(domain.Options{RootDir: filepath.Dir(configPath)})
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	var file Resolvefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}
	if file.CustomResolveOptions != nil {
		return nil, zerr.With(domain.ErrRemovedOption, "option", "customResolveOptions")
	}

	configDir := filepath.Dir(configPath)
	opts := domain.Options{
		MainFields:       file.MainFields,
		UseModule:        file.Module,
		UseMain:          file.Main,
		UseJSNext:        file.JSNext,
		Browser:          file.Browser,
		Extensions:       file.Extensions,
		Dedupe:           file.Dedupe,
		PreferBuiltins:   file.PreferBuiltins,
		RootDir:          resolveDir(configDir, file.RootDir),
		Jail:             resolveDir(configDir, file.Jail),
		Only:             file.Only,
		ModulesOnly:      file.ModulesOnly,
		PreserveSymlinks: file.PreserveSymlinks,
		Custom:           file.Custom,
	}
	if opts.RootDir == "" {
		opts.RootDir = configDir
	}

	settings, err := domain.NewSettings(opts)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return settings, nil
}

// resolveDir anchors a relative directory option at the config file location.
func resolveDir(configDir, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(configDir, dir)
}
