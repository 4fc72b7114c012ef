package resolver

import (
	"testing"

	"github.com/bundlekit/resolve/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver(t *testing.T, opts domain.Options) *Resolver {
	t.Helper()
	settings, err := domain.NewSettings(opts)
	require.NoError(t, err)
	return New(settings, nil, nil, nil)
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name   string
		opts   domain.Options
		spec   string
		isRoot bool
		want   []string
	}{
		{
			name: "plain package",
			spec: "lodash",
			want: []string{"lodash"},
		},
		{
			name: "path specifier",
			spec: "./util",
			want: []string{"./util"},
		},
		{
			name:   "root shorthand prepended",
			spec:   "entry",
			isRoot: true,
			want:   []string{"./entry", "entry"},
		},
		{
			name:   "root path specifier unchanged",
			spec:   "./entry",
			isRoot: true,
			want:   []string{"./entry"},
		},
		{
			name: "builtin probes for local shadow by default",
			spec: "fs",
			want: []string{"fs/", "fs"},
		},
		{
			name: "builtin shadow probe kept when builtins dispreferred",
			opts: domain.Options{PreferBuiltins: boolPtr(false)},
			spec: "fs",
			want: []string{"fs/", "fs"},
		},
		{
			name: "strict builtin preference skips the shadow probe",
			opts: domain.Options{PreferBuiltins: boolPtr(true)},
			spec: "fs",
			want: []string{"fs"},
		},
		{
			name:   "root shorthand combines with builtin probe",
			spec:   "fs",
			isRoot: true,
			want:   []string{"./fs", "fs/", "fs"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testResolver(t, tt.opts)
			assert.Equal(t, tt.want, r.candidates(tt.spec, tt.isRoot))
		})
	}
}

func boolPtr(b bool) *bool { return &b }

func TestErrNotFoundMatchesSentinel(t *testing.T) {
	err := errNotFound("missing-pkg", "/base")
	require.ErrorIs(t, err, domain.ErrModuleNotFound)
	assert.Contains(t, err.Error(), domain.ErrModuleNotFound.Error())
}
