package domain

import (
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"
)

// DefaultExtensions is the extension probe order used when none is configured.
// ".mjs" before ".js" is significant: a package shipping both builds resolves
// to the module build first.
var DefaultExtensions = []string{".mjs", ".js", ".json", ".node"}

// TriState is a boolean option that distinguishes "not configured" from an
// explicit choice.
type TriState uint8

const (
	// TriUnset means the option was not configured.
	TriUnset TriState = iota
	// TriTrue means the option was explicitly enabled.
	TriTrue
	// TriFalse means the option was explicitly disabled.
	TriFalse
)

// TriFromBool converts an optional boolean into a TriState.
func TriFromBool(b *bool) TriState {
	switch {
	case b == nil:
		return TriUnset
	case *b:
		return TriTrue
	default:
		return TriFalse
	}
}

// Options is the raw configuration surface of the resolution engine. It is
// canonicalized once by NewSettings; invalid combinations are rejected there,
// never per request.
type Options struct {
	// MainFields is the ordered list of manifest fields tried for a package's
	// entry point. Mutually exclusive with the deprecated UseModule, UseMain
	// and UseJSNext booleans.
	MainFields []string
	UseModule  *bool
	UseMain    *bool
	UseJSNext  *bool

	// Browser enables the browser main field and browser-map substitution.
	Browser bool

	// Extensions is the ordered probe list; DefaultExtensions when empty.
	Extensions []string

	// Dedupe lists package names that always resolve from the project root.
	// DedupeFn, when set, is consulted instead of the list.
	Dedupe   []string
	DedupeFn func(pkg string) bool

	// PreferBuiltins selects between a platform built-in and a same-named
	// local package; nil means default-true with an advisory note on shadowing.
	PreferBuiltins *bool

	// RootDir is the project root; the current directory when empty.
	RootDir string

	// Jail is a sandbox root; resolutions landing outside it are unresolved.
	Jail string

	// Only restricts resolution to packages whose name matches one of the
	// patterns; empty means all packages.
	Only []string

	// ModulesOnly restricts resolution to ES-module-syntax targets.
	ModulesOnly bool

	// PreserveSymlinks disables symlink realization of resolved paths.
	PreserveSymlinks bool

	// Custom carries pass-through options merged into the underlying search.
	Custom map[string]any
}

// Settings is the canonical, validated form of Options held by one resolver
// instance for a build.
type Settings struct {
	MainFields       []string
	Extensions       []string
	Browser          bool
	PreferBuiltins   TriState
	RootDir          string
	Jail             string
	Only             []string
	ModulesOnly      bool
	PreserveSymlinks bool
	Custom           map[string]any

	dedupe   map[string]bool
	dedupeFn func(pkg string) bool
}

// NewSettings canonicalizes raw options. Conflicting or empty main-field
// configuration is a setup-time error.
func NewSettings(o Options) (*Settings, error) {
	fields, err := resolveMainFields(o)
	if err != nil {
		return nil, err
	}

	exts := o.Extensions
	if len(exts) == 0 {
		exts = slices.Clone(DefaultExtensions)
	}

	rootDir := o.RootDir
	if rootDir == "" {
		rootDir = "."
	}
	rootDir, err = filepath.Abs(rootDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get absolute path of project root")
	}

	jail := o.Jail
	if jail != "" {
		jail, err = filepath.Abs(jail)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get absolute path of jail")
		}
	}

	s := &Settings{
		MainFields:       fields,
		Extensions:       exts,
		Browser:          o.Browser,
		PreferBuiltins:   TriFromBool(o.PreferBuiltins),
		RootDir:          rootDir,
		Jail:             jail,
		Only:             slices.Clone(o.Only),
		ModulesOnly:      o.ModulesOnly,
		PreserveSymlinks: o.PreserveSymlinks,
		Custom:           o.Custom,
		dedupeFn:         o.DedupeFn,
	}
	if len(o.Dedupe) > 0 {
		s.dedupe = make(map[string]bool, len(o.Dedupe))
		for _, name := range o.Dedupe {
			s.dedupe[name] = true
		}
	}
	return s, nil
}

// resolveMainFields collapses the overlapping deprecated and current options
// into one ordered field list.
func resolveMainFields(o Options) ([]string, error) {
	usesDeprecated := o.UseModule != nil || o.UseMain != nil || o.UseJSNext != nil

	if o.MainFields != nil {
		if usesDeprecated {
			return nil, ErrMainFieldsConflict
		}
		if len(o.MainFields) == 0 {
			return nil, ErrEmptyMainFields
		}
		fields := slices.Clone(o.MainFields)
		if o.Browser && !slices.Contains(fields, "browser") {
			fields = append([]string{"browser"}, fields...)
		}
		return fields, nil
	}

	useModule := o.UseModule == nil || *o.UseModule
	useMain := o.UseMain == nil || *o.UseMain
	useJSNext := o.UseJSNext != nil && *o.UseJSNext

	var fields []string
	if o.Browser {
		fields = append(fields, "browser")
	}
	if useJSNext {
		fields = append(fields, "jsnext:main")
	}
	if useModule {
		fields = append(fields, "module")
	}
	if useMain {
		fields = append(fields, "main")
	}
	if len(fields) == 0 {
		return nil, ErrEmptyMainFields
	}
	return fields, nil
}

// ShouldDedupe reports whether the given package name is forced to resolve
// from the project root.
func (s *Settings) ShouldDedupe(pkg string) bool {
	if s.dedupeFn != nil {
		return s.dedupeFn(pkg)
	}
	return s.dedupe[pkg]
}
