package kv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGet(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, ok, err := store.Get("notes")
	require.NoError(t, err)
	assert.False(t, ok, "missing key should report absent, not error")

	require.NoError(t, store.Set("notes", []byte(`{"version":1}`)))

	data, ok, err := store.Get("notes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"version":1}`, string(data))

	// Overwrite replaces the previous value wholesale.
	require.NoError(t, store.Set("notes", []byte(`{"version":2}`)))
	data, _, _ = store.Get("notes")
	assert.Equal(t, `{"version":2}`, string(data))
}

func TestFileStore_Delete(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Set("notes", []byte("x")))
	require.NoError(t, store.Delete("notes"))

	_, ok, err := store.Get("notes")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete("notes"))
}

func TestFileStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "vault")
	store := NewFileStore(dir)

	require.NoError(t, store.Set("notes", []byte("x")))

	info, err := os.Stat(filepath.Join(dir, "notes.json"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestFileStore_AtomicWrite_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	for i := 0; i < 10; i++ {
		require.NoError(t, store.Set("notes", []byte(strings.Repeat("x", 1024))))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix),
			"temp file %s left behind", e.Name())
	}
}

func TestFileStore_WriteErrorWrapped(t *testing.T) {
	dir := t.TempDir()
	// A file where the store expects a directory makes every write fail.
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("file"), 0644))

	store := NewFileStore(filepath.Join(blocked, "sub"))
	err := store.Set("notes", []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWriteFailed)
}
