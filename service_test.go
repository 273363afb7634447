package assetvault_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetvault/assetvault"
	"github.com/assetvault/assetvault/filesystem"
)

// newTestService builds a registry with one "acme" client and a filesystem
// store over a fresh temp assets root. Returned path is the assets root.
func newTestService(t *testing.T) (*assetvault.AssetService, assetvault.Client, string) {
	t.Helper()

	assetsRoot := t.TempDir()

	registry, err := assetvault.NewRegistry(assetsRoot, []assetvault.ClientCredential{
		{Name: "acme", ID: "abc", Secret: "xyz"},
	})
	require.NoError(t, err)

	root, err := os.OpenRoot(assetsRoot)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	service, err := assetvault.NewAssetService(registry, filesystem.NewStore(root))
	require.NoError(t, err)

	client, ok := registry.Get("abc")
	require.True(t, ok)

	return service, client, assetsRoot
}

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, content, 0o644))
}

func TestAssetService_BuildIndex(t *testing.T) {
	service, client, assetsRoot := newTestService(t)

	writeFile(t, assetsRoot, "acme/logo.png", []byte("png"))
	writeFile(t, assetsRoot, "acme/sub/dir/img.png", []byte("img"))
	writeFile(t, assetsRoot, "acme/docs/readme", []byte("txt"))

	index, err := service.BuildIndex(context.Background(), "http://host", client)
	require.NoError(t, err)

	assert.Equal(t, assetvault.AssetIndex{
		"logo":        "http://host/assets/acme/logo.png",
		"sub/dir/img": "http://host/assets/acme/sub/dir/img.png",
		"docs/readme": "http://host/assets/acme/docs/readme",
	}, index)
}

func TestAssetService_BuildIndex_Idempotent(t *testing.T) {
	service, client, assetsRoot := newTestService(t)

	writeFile(t, assetsRoot, "acme/a.txt", []byte("a"))
	writeFile(t, assetsRoot, "acme/b/c.txt", []byte("c"))

	first, err := service.BuildIndex(context.Background(), "http://host", client)
	require.NoError(t, err)

	second, err := service.BuildIndex(context.Background(), "http://host", client)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssetService_BuildIndex_MissingDir(t *testing.T) {
	service, client, _ := newTestService(t)

	index, err := service.BuildIndex(context.Background(), "http://host", client)
	require.NoError(t, err)

	assert.NotNil(t, index)
	assert.Empty(t, index)
}

func TestAssetService_BuildIndex_EmptyDir(t *testing.T) {
	service, client, assetsRoot := newTestService(t)

	require.NoError(t, os.MkdirAll(filepath.Join(assetsRoot, "acme"), 0o755))

	index, err := service.BuildIndex(context.Background(), "http://host", client)
	require.NoError(t, err)

	assert.Empty(t, index)
}

func TestAssetService_BuildIndex_CancelledContext(t *testing.T) {
	service, client, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.BuildIndex(ctx, "http://host", client)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssetService_Open(t *testing.T) {
	service, client, assetsRoot := newTestService(t)

	writeFile(t, assetsRoot, "acme/sub/logo.png", []byte("the bytes"))

	f, info, err := service.Open(context.Background(), client, "sub/logo.png")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, "logo.png", info.Name())
	assert.EqualValues(t, len("the bytes"), info.Size())

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("the bytes"), content)
}

func TestAssetService_Open_NotFound(t *testing.T) {
	service, client, assetsRoot := newTestService(t)

	writeFile(t, assetsRoot, "acme/logo.png", []byte("png"))
	writeFile(t, assetsRoot, "acme/sub/inner.txt", []byte("x"))

	tt := []struct {
		Name string
		Path string
	}{
		{Name: "missing file", Path: "missing.png"},
		{Name: "directory target", Path: "sub"},
		{Name: "traversal", Path: "../acme/logo.png"},
		{Name: "invalid path", Path: "a//b"},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			_, _, err := service.Open(context.Background(), client, tc.Path)
			assert.ErrorIs(t, err, assetvault.ErrNotFound)
		})
	}
}

func TestAssetService_IsolationBetweenClients(t *testing.T) {
	assetsRoot := t.TempDir()

	registry, err := assetvault.NewRegistry(assetsRoot, []assetvault.ClientCredential{
		{Name: "acme", ID: "abc", Secret: "xyz"},
		{Name: "globex", ID: "def", Secret: "uvw"},
	})
	require.NoError(t, err)

	root, err := os.OpenRoot(assetsRoot)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	service, err := assetvault.NewAssetService(registry, filesystem.NewStore(root))
	require.NoError(t, err)

	writeFile(t, assetsRoot, "acme/secret.txt", []byte("acme only"))

	globex, _ := registry.Get("def")

	index, err := service.BuildIndex(context.Background(), "http://host", globex)
	require.NoError(t, err)
	assert.Empty(t, index)

	_, _, err = service.Open(context.Background(), globex, "secret.txt")
	assert.ErrorIs(t, err, assetvault.ErrNotFound)
}
