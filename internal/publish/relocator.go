package publish

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"

	"github.com/dmitrijs2005/docpublish/internal/common"
	"github.com/dmitrijs2005/docpublish/internal/vault"
)

// Relocator moves published documents into a sibling "published" folder.
type Relocator struct {
	storage vault.Storage
}

func NewRelocator(storage vault.Storage) *Relocator {
	return &Relocator{storage: storage}
}

// Relocate moves file to <parent>/published/<name> and returns the updated
// reference. Files already below a published segment are returned as-is
// without touching storage.
func (r *Relocator) Relocate(ctx context.Context, file *vault.FileReference) (*vault.FileReference, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: no document supplied", common.ErrNotFound)
	}
	if file.IsPublished() {
		return file, nil
	}

	segs := file.Segments()
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: empty path", common.ErrNotFound)
	}
	base := segs[len(segs)-1]
	parents := file.ParentSegments()
	targetDir := append(parents[:len(parents):len(parents)], common.PublishedDirName)
	dirPath := vault.JoinSegments(targetDir)

	if err := r.storage.CreateFolder(dirPath); err != nil && !errors.Is(err, iofs.ErrExist) {
		return nil, fmt.Errorf("%w: create %s: %w", common.ErrIO, dirPath, err)
	}

	newPath := vault.JoinSegments(append(targetDir, base))
	if err := r.storage.Rename(file.Path, newPath); err != nil {
		return nil, fmt.Errorf("%w: move %s: %w", common.ErrIO, file.Path, err)
	}

	return file.WithPath(newPath), nil
}
