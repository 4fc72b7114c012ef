// Package manifest implements manifest parsing and interpretation: turning a
// package's metadata document into the entry point, browser map and
// side-effect policy the resolution engine acts on.
package manifest

import (
	"encoding/json"

	"github.com/bundlekit/resolve/internal/core/domain"
	"github.com/bundlekit/resolve/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestParser = (*Parser)(nil)

// Parser parses package.json documents into the plain key-value form the
// interpreter works on.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses the manifest at the given path.
func (p *Parser) Parse(path string, data []byte) (*domain.PackageManifest, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}
	return &domain.PackageManifest{Path: path, Fields: fields}, nil
}
