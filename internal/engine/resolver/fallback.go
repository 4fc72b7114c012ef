package resolver

import (
	"context"
	"errors"

	"github.com/bundlekit/resolve/internal/core/domain"
)

// candidates builds the ordered candidate-specifier list for one request.
// A graph root whose specifier merely looks bare gets the local shorthand
// first; a built-in name that is not strictly preferred gets a trailing-slash
// candidate that forces the search to find a same-named local package.
func (r *Resolver) candidates(spec string, isRoot bool) []string {
	var list []string
	if isRoot && !domain.IsPathSpecifier(spec) {
		list = append(list, "./"+spec)
	}
	if domain.IsBuiltin(spec) && r.settings.PreferBuiltins != domain.TriTrue {
		list = append(list, spec+"/")
	}
	return append(list, spec)
}

// runCandidates drives the search over the candidates strictly in sequence.
// "Not found" on a non-final candidate is suppressed; the first success
// short-circuits the rest; if all fail, the last failure is reported. Any
// other fault aborts the whole request immediately. The ordering decides
// which of several plausible interpretations wins and must never be
// parallelized.
func (r *Resolver) runCandidates(ctx context.Context, cands []string, baseDir string) (searchResult, error) {
	var lastErr error
	for _, cand := range cands {
		res, err := r.search.search(ctx, cand, baseDir)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, domain.ErrModuleNotFound) {
			return searchResult{}, err
		}
		lastErr = err
	}
	return searchResult{}, lastErr
}
