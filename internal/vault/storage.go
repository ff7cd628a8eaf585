package vault

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/dmitrijs2005/docpublish/internal/common"
)

// Storage is the set of storage primitives the pipeline needs from the host.
type Storage interface {
	// Read returns the full content of the file at p.
	Read(p string) ([]byte, error)
	// Stat describes the entry at p.
	Stat(p string) (os.FileInfo, error)
	// CreateFolder creates the directory p. It fails with an error matching
	// fs.ErrExist when p is already present.
	CreateFolder(p string) error
	// Rename moves from to to. It never overwrites: an occupied destination
	// fails with an error matching fs.ErrExist.
	Rename(from, to string) error
	// List returns every regular file of the vault, sorted by path.
	List() ([]*FileReference, error)
}

// BillyStorage implements Storage on top of a go-billy filesystem.
type BillyStorage struct {
	fs billy.Filesystem
}

func NewBillyStorage(fsys billy.Filesystem) *BillyStorage {
	return &BillyStorage{fs: fsys}
}

// NewOSStorage roots the vault at dir on the local disk.
func NewOSStorage(dir string) *BillyStorage {
	return NewBillyStorage(osfs.New(dir))
}

// NewMemoryStorage returns an empty in-memory vault.
func NewMemoryStorage() *BillyStorage {
	return NewBillyStorage(memfs.New())
}

// Raw exposes the underlying filesystem.
func (b *BillyStorage) Raw() billy.Filesystem {
	return b.fs
}

func (b *BillyStorage) Read(p string) ([]byte, error) {
	data, err := util.ReadFile(b.fs, p)
	if err != nil {
		return nil, fmt.Errorf("billy: readfile %q: %w", p, err)
	}
	return data, nil
}

func (b *BillyStorage) Stat(p string) (os.FileInfo, error) {
	info, err := b.fs.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("billy: stat %q: %w", p, err)
	}
	return info, nil
}

func (b *BillyStorage) CreateFolder(p string) error {
	exists, err := b.exists(p)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("billy: mkdir %q: %w", p, iofs.ErrExist)
	}
	if err := b.fs.MkdirAll(p, 0o755); err != nil {
		return fmt.Errorf("billy: mkdir %q: %w", p, err)
	}
	return nil
}

func (b *BillyStorage) Rename(from, to string) error {
	exists, err := b.exists(to)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("billy: rename %q -> %q: %w", from, to, iofs.ErrExist)
	}
	if err := b.fs.Rename(from, to); err != nil {
		return fmt.Errorf("billy: rename %q -> %q: %w", from, to, err)
	}
	return nil
}

func (b *BillyStorage) List() ([]*FileReference, error) {
	var refs []*FileReference
	if err := b.walk(nil, &refs); err != nil {
		return nil, err
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
	return refs, nil
}

func (b *BillyStorage) walk(dir []string, out *[]*FileReference) error {
	entries, err := b.fs.ReadDir(JoinSegments(dir))
	if err != nil {
		if len(dir) == 0 && errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("billy: readdir %q: %w", JoinSegments(dir), err)
	}

	for _, e := range entries {
		segs := append(append([]string{}, dir...), e.Name())
		if e.IsDir() {
			if err := b.walk(segs, out); err != nil {
				return err
			}
			continue
		}
		if !e.Mode().IsRegular() {
			continue
		}
		*out = append(*out, &FileReference{Path: JoinSegments(segs), Name: e.Name()})
	}
	return nil
}

func (b *BillyStorage) exists(p string) (bool, error) {
	_, err := b.fs.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, iofs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("billy: stat %q: %w", p, err)
	}
}

// Resolve looks p up in s and returns a reference to it. Missing entries and
// directories yield common.ErrNotFound.
func Resolve(s Storage, p string) (*FileReference, error) {
	ref, err := NewFileReference(p)
	if err != nil {
		return nil, err
	}
	info, err := s.Stat(ref.Path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, ref.Path)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrIO, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", common.ErrNotFound, ref.Path)
	}
	return ref, nil
}
