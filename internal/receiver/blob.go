package receiver

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"
)

// BlobStore keeps received documents.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

// StorageKey returns a fresh key for name: documents/YYYY/MM/DD/<uuid>/name.
func StorageKey(now time.Time, name string) string {
	return fmt.Sprintf("documents/%04d/%02d/%02d/%s/%s",
		now.Year(), now.Month(), now.Day(), uuid.New(), name)
}

// FSBlobStore writes blobs as files below the root of a billy filesystem.
type FSBlobStore struct {
	fs billy.Filesystem
}

func NewFSBlobStore(fsys billy.Filesystem) *FSBlobStore {
	return &FSBlobStore{fs: fsys}
}

// NewDirBlobStore stores blobs below dir on the local disk.
func NewDirBlobStore(dir string) *FSBlobStore {
	return NewFSBlobStore(osfs.New(dir))
}

func (s *FSBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return fmt.Errorf("billy: mkdir %q: %w", path.Dir(key), err)
	}

	f, err := s.fs.Create(key)
	if err != nil {
		return fmt.Errorf("billy: create %q: %w", key, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(key)
		return fmt.Errorf("billy: write %q: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("billy: close %q: %w", key, err)
	}
	return nil
}
