package filesystem_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetvault/assetvault"
	"github.com/assetvault/assetvault/filesystem"
)

func newStore(t *testing.T) (*filesystem.Store, string) {
	t.Helper()

	dir := t.TempDir()
	root, err := os.OpenRoot(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	return filesystem.NewStore(root), dir
}

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, content, 0o644))
}

func TestStore_Open(t *testing.T) {
	store, dir := newStore(t)
	writeFile(t, dir, "acme/logo.png", []byte("png bytes"))

	f, info, err := store.Open(context.Background(), "acme/logo.png")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, "logo.png", info.Name())
	assert.EqualValues(t, 9, info.Size())

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), content)
}

func TestStore_Open_NotFound(t *testing.T) {
	store, _ := newStore(t)

	_, _, err := store.Open(context.Background(), "nope.txt")
	assert.ErrorIs(t, err, assetvault.ErrNotFound)
}

func TestStore_DirExists(t *testing.T) {
	store, dir := newStore(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "acme"), 0o755))
	writeFile(t, dir, "file.txt", []byte("x"))

	assert.True(t, store.DirExists(context.Background(), "acme"))
	assert.False(t, store.DirExists(context.Background(), "globex"))
	// A regular file is not a directory
	assert.False(t, store.DirExists(context.Background(), "file.txt"))
}

func TestStore_List(t *testing.T) {
	store, dir := newStore(t)

	writeFile(t, dir, "acme/logo.png", []byte("a"))
	writeFile(t, dir, "acme/sub/dir/img.png", []byte("b"))
	writeFile(t, dir, "acme/.env", []byte("c"))
	// Files of other clients must not leak into the listing
	writeFile(t, dir, "globex/other.txt", []byte("d"))
	// Empty directories are traversed, never listed
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "acme", "empty"), 0o755))

	files, err := store.List(context.Background(), "acme")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"logo.png", "sub/dir/img.png", ".env"}, files)
}

func TestStore_List_EmptyDir(t *testing.T) {
	store, dir := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "acme"), 0o755))

	files, err := store.List(context.Background(), "acme")
	require.NoError(t, err)

	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestStore_List_DeeplyNested(t *testing.T) {
	store, dir := newStore(t)

	// The traversal is iterative, so depth is bounded by memory, not stack
	rel := "acme"
	for i := 0; i < 100; i++ {
		rel = filepath.Join(rel, fmt.Sprintf("d%d", i))
	}
	writeFile(t, dir, filepath.ToSlash(filepath.Join(rel, "leaf.txt")), []byte("x"))

	files, err := store.List(context.Background(), "acme")
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "leaf.txt", filepath.Base(files[0]))
}

func TestStore_List_MissingDir(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.List(context.Background(), "nope")
	assert.Error(t, err)
}

func TestStore_List_CancelledContext(t *testing.T) {
	store, dir := newStore(t)
	writeFile(t, dir, "acme/logo.png", []byte("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.List(ctx, "acme")
	assert.ErrorIs(t, err, context.Canceled)
}
