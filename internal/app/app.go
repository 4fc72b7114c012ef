// Package app implements the application layer driving batch resolution.
package app

import (
	"context"
	"fmt"
	"runtime"

	"github.com/bundlekit/resolve/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"github.com/bundlekit/resolve/internal/core/domain"
	"github.com/bundlekit/resolve/internal/core/ports"
	"github.com/bundlekit/resolve/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App resolves batches of specifiers against one configuration.
type App struct {
	configLoader ports.ConfigLoader
	probes       ports.Probes
	parser       ports.ManifestParser
	hasher       ports.Hasher
	telemetry    ports.Telemetry
	log          ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	probes ports.Probes,
	parser ports.ManifestParser,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		probes:       probes,
		parser:       parser,
		hasher:       hasher,
		telemetry:    telemetry,
		log:          log,
	}
}

// Result is the outcome of resolving one specifier. A nil Module means the
// specifier is not handled and should be treated as external.
type Result struct {
	Specifier string
	Module    *domain.ResolvedModule
	Digest    string
}

// Resolve resolves the given specifiers concurrently against the
// configuration at configPath, with importer as the importing module (empty
// for graph roots). Caches are cleared when the pass completes.
func (a *App) Resolve(ctx context.Context, configPath, importer string, specifiers []string) ([]Result, error) {
	if len(specifiers) == 0 {
		return nil, domain.ErrNoSpecifiers
	}

	settings, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	interp := manifest.NewInterpreter(settings, a.probes, a.parser, a.log)
	engine := resolver.New(settings, a.probes, interp, a.log)
	defer engine.ClearCaches()

	results := make([]Result, len(specifiers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, spec := range specifiers {
		g.Go(func() error {
			_, vtx := a.telemetry.Record(gctx, "resolve "+spec)

			mod, err := engine.Resolve(gctx, spec, importer)
			if err != nil {
				vtx.Complete(err)
				return err
			}

			result := Result{Specifier: spec, Module: mod}
			switch {
			case mod == nil:
				_, _ = fmt.Fprintf(vtx.Stdout(), "%s: external\n", spec)
			case mod.IsEmptyStub():
				_, _ = fmt.Fprintf(vtx.Stdout(), "%s: empty stub\n", spec)
			default:
				if digest, err := a.hasher.Digest(mod.ID); err == nil {
					result.Digest = digest
				}
				_, _ = fmt.Fprintf(vtx.Stdout(), "%s: %s\n", spec, mod.ID)
			}

			results[i] = result
			vtx.Complete(nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}
