package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/bundlekit/resolve/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestNewSettings_MainFields(t *testing.T) {
	tests := []struct {
		name       string
		opts       domain.Options
		wantFields []string
		wantErr    error
	}{
		{
			name:       "defaults",
			opts:       domain.Options{},
			wantFields: []string{"module", "main"},
		},
		{
			name:       "browser prepended by default",
			opts:       domain.Options{Browser: true},
			wantFields: []string{"browser", "module", "main"},
		},
		{
			name:       "explicit mainFields kept verbatim",
			opts:       domain.Options{MainFields: []string{"main", "module"}},
			wantFields: []string{"main", "module"},
		},
		{
			name:       "browser prepended to explicit mainFields when absent",
			opts:       domain.Options{Browser: true, MainFields: []string{"module", "main"}},
			wantFields: []string{"browser", "module", "main"},
		},
		{
			name:       "browser position respected when already listed",
			opts:       domain.Options{Browser: true, MainFields: []string{"module", "browser", "main"}},
			wantFields: []string{"module", "browser", "main"},
		},
		{
			name:       "deprecated jsnext ordering",
			opts:       domain.Options{UseJSNext: boolPtr(true)},
			wantFields: []string{"jsnext:main", "module", "main"},
		},
		{
			name:       "deprecated module disabled",
			opts:       domain.Options{UseModule: boolPtr(false)},
			wantFields: []string{"main"},
		},
		{
			name:    "mainFields conflicts with deprecated booleans",
			opts:    domain.Options{MainFields: []string{"main"}, UseModule: boolPtr(true)},
			wantErr: domain.ErrMainFieldsConflict,
		},
		{
			name:    "explicit empty mainFields rejected",
			opts:    domain.Options{MainFields: []string{}},
			wantErr: domain.ErrEmptyMainFields,
		},
		{
			name: "all deprecated booleans off rejected",
			opts: domain.Options{
				UseModule: boolPtr(false),
				UseMain:   boolPtr(false),
				UseJSNext: boolPtr(false),
			},
			wantErr: domain.ErrEmptyMainFields,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := domain.NewSettings(tt.opts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFields, s.MainFields)
		})
	}
}

func TestNewSettings_Defaults(t *testing.T) {
	s, err := domain.NewSettings(domain.Options{})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultExtensions, s.Extensions)
	assert.Equal(t, domain.TriUnset, s.PreferBuiltins)
	assert.True(t, filepath.IsAbs(s.RootDir))
	assert.Empty(t, s.Jail)
}

func TestNewSettings_AbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	s, err := domain.NewSettings(domain.Options{RootDir: dir, Jail: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, s.RootDir)
	assert.Equal(t, dir, s.Jail)
}

func TestTriFromBool(t *testing.T) {
	assert.Equal(t, domain.TriUnset, domain.TriFromBool(nil))
	assert.Equal(t, domain.TriTrue, domain.TriFromBool(boolPtr(true)))
	assert.Equal(t, domain.TriFalse, domain.TriFromBool(boolPtr(false)))
}

func TestSettings_ShouldDedupe(t *testing.T) {
	s, err := domain.NewSettings(domain.Options{Dedupe: []string{"react", "@scope/pkg"}})
	require.NoError(t, err)
	assert.True(t, s.ShouldDedupe("react"))
	assert.True(t, s.ShouldDedupe("@scope/pkg"))
	assert.False(t, s.ShouldDedupe("lodash"))

	fn, err := domain.NewSettings(domain.Options{
		Dedupe:   []string{"react"},
		DedupeFn: func(pkg string) bool { return pkg == "vue" },
	})
	require.NoError(t, err)
	// The function supersedes the list entirely.
	assert.True(t, fn.ShouldDedupe("vue"))
	assert.False(t, fn.ShouldDedupe("react"))
}
