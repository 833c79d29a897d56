package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes uploaded documents to a directory on disk. The handle
// it returns is the stored file name, a uuid plus the original extension;
// callers treat it as opaque.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store
// over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save streams src into a new file and returns its opaque handle.
func (s *DiskStore) Save(ctx context.Context, originalName string, src io.Reader) (string, error) {
	handle := uuid.New().String() + filepath.Ext(originalName)

	dst, err := os.Create(filepath.Join(s.dir, handle))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write blob: %w", err)
	}
	return handle, nil
}
