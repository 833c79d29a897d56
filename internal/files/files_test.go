package files

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	assert.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	handle, err := store.Save(context.Background(), "essay.pdf", bytes.NewBufferString("content"))
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(handle, ".pdf"))
	// The handle never leaks the original name.
	assert.NotContains(t, handle, "essay")

	stored, err := os.ReadFile(filepath.Join(dir, handle))
	assert.NoError(t, err)
	assert.Equal(t, "content", string(stored))
}

func TestDiskStore_Save_NoExtension(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	assert.NoError(t, err)

	handle, err := store.Save(context.Background(), "README", bytes.NewBufferString("x"))
	assert.NoError(t, err)
	assert.NotContains(t, handle, ".")
}

func TestDiskStore_UniqueHandles(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	assert.NoError(t, err)

	first, err := store.Save(context.Background(), "a.pdf", bytes.NewBufferString("1"))
	assert.NoError(t, err)
	second, err := store.Save(context.Background(), "a.pdf", bytes.NewBufferString("2"))
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewDiskStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewDiskStore(dir)
	assert.NoError(t, err)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}
