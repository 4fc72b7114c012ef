package ports

import "github.com/bundlekit/resolve/internal/core/domain"

// ConfigLoader loads resolver configuration into canonical settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path (a file, or a directory searched
	// for the default file name) and returns validated settings. A missing
	// file yields the defaults.
	Load(path string) (*domain.Settings, error)
}
