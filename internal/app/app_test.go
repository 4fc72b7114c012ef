package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bundlekit/resolve/internal/adapters/fs"
	"github.com/bundlekit/resolve/internal/adapters/manifest"
	"github.com/bundlekit/resolve/internal/adapters/telemetry"
	"github.com/bundlekit/resolve/internal/app"
	"github.com/bundlekit/resolve/internal/core/domain"
	"github.com/bundlekit/resolve/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func write(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newApp(t *testing.T, root string) *app.App {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	settings, err := domain.NewSettings(domain.Options{RootDir: root})
	require.NoError(t, err)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(settings, nil).AnyTimes()

	return app.New(
		mockLoader,
		fs.NewProbeCache(fs.NewOSFS()),
		manifest.NewParser(),
		fs.NewHasher(),
		telemetry.NewNoop(),
		mockLogger,
	)
}

func TestApp_Resolve(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	importer := write(t, root, "index.js", "")
	write(t, root, "util.js", "export const x = 1;\n")
	write(t, root, "node_modules/dep/package.json", `{"name": "dep", "main": "main.js"}`)
	write(t, root, "node_modules/dep/main.js", "export default 1;\n")

	a := newApp(t, root)
	results, err := a.Resolve(context.Background(), root, importer, []string{"./util", "dep", "fs", "missing-pkg"})
	require.NoError(t, err)
	require.Len(t, results, 4)

	// Results keep the request order regardless of completion order.
	assert.Equal(t, "./util", results[0].Specifier)
	require.NotNil(t, results[0].Module)
	assert.Equal(t, filepath.Join(root, "util.js"), results[0].Module.ID)
	assert.Len(t, results[0].Digest, 16)

	assert.Equal(t, "dep", results[1].Specifier)
	require.NotNil(t, results[1].Module)
	assert.Equal(t, filepath.Join(root, "node_modules", "dep", "main.js"), results[1].Module.ID)

	// Built-ins and unresolvables come back external, without a digest.
	assert.Nil(t, results[2].Module)
	assert.Empty(t, results[2].Digest)
	assert.Nil(t, results[3].Module)
}

func TestApp_Resolve_NoSpecifiers(t *testing.T) {
	root := t.TempDir()
	a := newApp(t, root)

	_, err := a.Resolve(context.Background(), root, "", nil)
	require.ErrorIs(t, err, domain.ErrNoSpecifiers)
}

func TestApp_Resolve_ConfigError(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	loadErr := errors.New("config unreadable")
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(nil, loadErr)

	a := app.New(
		mockLoader,
		fs.NewProbeCache(fs.NewOSFS()),
		manifest.NewParser(),
		fs.NewHasher(),
		telemetry.NewNoop(),
		mockLogger,
	)

	_, err := a.Resolve(context.Background(), "/nowhere", "", []string{"dep"})
	require.ErrorIs(t, err, loadErr)
}

func TestApp_Resolve_EmptyStubDigest(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	importer := write(t, root, "index.js", "")
	write(t, root, "node_modules/dep/package.json", `{
		"main": "./server.js",
		"browser": {"./server.js": false}
	}`)
	write(t, root, "node_modules/dep/server.js", "")

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	settings, err := domain.NewSettings(domain.Options{RootDir: root, Browser: true})
	require.NoError(t, err)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(settings, nil).AnyTimes()

	a := app.New(
		mockLoader,
		fs.NewProbeCache(fs.NewOSFS()),
		manifest.NewParser(),
		fs.NewHasher(),
		telemetry.NewNoop(),
		mockLogger,
	)

	results, err := a.Resolve(context.Background(), root, importer, []string{"dep"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Module)
	assert.True(t, results[0].Module.IsEmptyStub())
	assert.Empty(t, results[0].Digest)
}

func TestApp_Close(t *testing.T) {
	a := newApp(t, t.TempDir())
	require.NoError(t, a.Close())
}
